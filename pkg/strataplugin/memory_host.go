//go:build !wasm

package strataplugin

// Outside a wasm module there is no linear memory to address, so reads and
// writes go through a growable byte slice instead. This keeps the helper
// functions testable on the host.
var linear []byte

func ensure(end uint32) {
	if uint32(len(linear)) < end {
		grown := make([]byte, end)
		copy(grown, linear)
		linear = grown
	}
}

// ReadBytes reads length bytes from the simulated linear memory at ptr.
func ReadBytes(ptr, length uint32) []byte {
	ensure(ptr + length)

	return linear[ptr : ptr+length : ptr+length]
}

// WriteBytes writes data into the simulated linear memory at ptr.
func WriteBytes(ptr uint32, data []byte) {
	ensure(ptr + uint32(len(data)))
	copy(linear[ptr:], data)
}
