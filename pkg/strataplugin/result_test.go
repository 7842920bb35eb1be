package strataplugin

import (
	"bytes"
	"testing"
)

// TestPackResult verifies that PackResult combines pointer and length into a uint64 value.
func TestPackResult(t *testing.T) {
	highIn := uint32(0xDEADBEEF)
	lowIn := uint32(0xFEEDFACE)
	combined := PackResult(highIn, lowIn)

	high, low := UnpackResult(combined)
	if high != highIn || low != lowIn {
		t.Errorf("expected high=0x%X low=0x%X, got high=0x%X low=0x%X", highIn, lowIn, high, low)
	}
}

// TestWriteResult verifies that WriteResult stores the data and packs its location.
func TestWriteResult(t *testing.T) {
	ResetAllocator()

	data := []byte("layer document")
	res := WriteResult(data)

	ptr, length := UnpackResult(res)
	if length != uint32(len(data)) {
		t.Errorf("expected length %d, got %d", len(data), length)
	}
	if !bytes.Equal(ReadBytes(ptr, length), data) {
		t.Errorf("stored bytes do not round trip")
	}
}

// TestWriteResultEmpty verifies that empty data packs to zero.
func TestWriteResultEmpty(t *testing.T) {
	if res := WriteResult(nil); res != 0 {
		t.Errorf("expected 0, got %d", res)
	}
}
