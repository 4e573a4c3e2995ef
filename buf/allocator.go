// Package buf provides the allocators that back pool chunks.
package buf

import (
	"errors"
)

var (
	// ErrNoMemory the allocator can not hand out a block of the requested size
	ErrNoMemory = errors.New("buf: no memory")
)

// Allocator obtains the contiguous byte blocks that back pool chunks.
type Allocator interface {
	// Alloc returns a []byte with len(data) == size. The returned []byte must not be
	// expanded in use.
	Alloc(size int) ([]byte, error)
	// Free gives a block returned by Alloc back to the allocator.
	Free([]byte) error
}

type heapAllocator struct {
}

// NewHeapAllocator returns an allocator backed by the Go heap
func NewHeapAllocator() Allocator {
	return &heapAllocator{}
}

func (ma *heapAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrNoMemory
	}
	return make([]byte, size), nil
}

func (ma *heapAllocator) Free([]byte) error {
	return nil
}
