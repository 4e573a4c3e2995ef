package buf

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type mmapAllocator struct {
}

// NewMmapAllocator returns an allocator that maps anonymous private memory for every
// block, outside of the Go heap. Blocks are page aligned.
func NewMmapAllocator() Allocator {
	return &mmapAllocator{}
}

func (ma *mmapAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrNoMemory
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %v", ErrNoMemory, size, err)
	}
	return data, nil
}

func (ma *mmapAllocator) Free(data []byte) error {
	return unix.Munmap(data)
}
