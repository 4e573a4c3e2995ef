package buf

import (
	"fmt"
	"unsafe"
)

// AlignUp rounds v up to a multiple of align, align must be a power of two
func AlignUp(v, align int) int {
	return (v + align - 1) &^ (align - 1)
}

// Align returns the size bytes of data that start at the first align-aligned
// address. data must hold at least size+align-1 bytes.
func Align(data []byte, size, align int) []byte {
	if align <= 1 {
		return data[:size:size]
	}
	if len(data) < size+align-1 {
		panic(fmt.Sprintf("align %d bytes to %d needs %d bytes, got %d",
			size, align, size+align-1, len(data)))
	}

	addr := uintptr(unsafe.Pointer(&data[0]))
	shift := int((addr+uintptr(align-1))&^uintptr(align-1) - addr)
	return data[shift : shift+size : shift+size]
}

// IsAligned returns true if the first byte of data sits on an align boundary
func IsAligned(data []byte, align int) bool {
	if len(data) == 0 {
		return false
	}
	return uintptr(unsafe.Pointer(&data[0]))&uintptr(align-1) == 0
}
