// Package strataplugin provides helper functions for strata wasm plugins:
// the guest-side bump allocator, linear memory access, packed result
// encoding and the host import surface.
package strataplugin

var nextPtr uint32

// ResetAllocator resets the allocator to the initial memory offset.
func ResetAllocator() {
	nextPtr = 8
}

// Alloc allocates n bytes with 8-byte alignment and returns the starting
// pointer. The host calls the exported wrapper to pass buffers in.
func Alloc(n uint32) uint32 {
	ptr := nextPtr
	padding := (8 - n%8) % 8
	nextPtr += n + padding

	return ptr
}

// Free releases the memory at ptr.
// Currently a no-op; the bump allocator is reset between invocations.
func Free(ptr uint32) {
	_ = ptr
}
