//go:build !linux

package buf

// NewMmapAllocator falls back to the heap allocator on platforms without the
// anonymous mapping support used on linux.
func NewMmapAllocator() Allocator {
	return NewHeapAllocator()
}
