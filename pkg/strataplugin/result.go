package strataplugin

// PackResult combines a pointer and a length into a single uint64 result.
func PackResult(ptr, length uint32) uint64 {
	return uint64(ptr)<<32 | uint64(length)
}

// UnpackResult splits a packed uint64 result into pointer and length.
func UnpackResult(combined uint64) (ptr, length uint32) {
	return uint32(combined >> 32), uint32(combined)
}

// WriteResult allocates guest memory for data, writes it and returns the
// packed pointer/length pair the host expects from document exports.
func WriteResult(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	ptr := Alloc(uint32(len(data)))
	WriteBytes(ptr, data)

	return PackResult(ptr, uint32(len(data)))
}
