package buf

import (
	"fmt"
	"sync"
)

// LimitAllocator wraps an Allocator with a byte budget and keeps account of the
// bytes handed out, so callers can check that every block came back.
type LimitAllocator struct {
	mu sync.Mutex

	inner  Allocator
	limit  int
	inUse  int
	allocs int
	frees  int
}

// NewLimitAllocator create a LimitAllocator which refuses blocks once limit bytes are
// outstanding. A limit <= 0 means no limit.
func NewLimitAllocator(inner Allocator, limit int) *LimitAllocator {
	if inner == nil {
		inner = NewHeapAllocator()
	}
	return &LimitAllocator{inner: inner, limit: limit}
}

// Alloc implements Allocator
func (la *LimitAllocator) Alloc(size int) ([]byte, error) {
	la.mu.Lock()
	defer la.mu.Unlock()

	if la.limit > 0 && la.inUse+size > la.limit {
		return nil, fmt.Errorf("%w: %d bytes in use, %d requested, limit %d",
			ErrNoMemory, la.inUse, size, la.limit)
	}
	data, err := la.inner.Alloc(size)
	if err != nil {
		return nil, err
	}
	la.inUse += len(data)
	la.allocs++
	return data, nil
}

// Free implements Allocator
func (la *LimitAllocator) Free(data []byte) error {
	la.mu.Lock()
	defer la.mu.Unlock()

	if err := la.inner.Free(data); err != nil {
		return err
	}
	la.inUse -= len(data)
	la.frees++
	return nil
}

// InUse returns the bytes currently allocated and not freed
func (la *LimitAllocator) InUse() int {
	la.mu.Lock()
	defer la.mu.Unlock()
	return la.inUse
}

// Allocs returns the number of successful Alloc calls
func (la *LimitAllocator) Allocs() int {
	la.mu.Lock()
	defer la.mu.Unlock()
	return la.allocs
}

// Frees returns the number of successful Free calls
func (la *LimitAllocator) Frees() int {
	la.mu.Lock()
	defer la.mu.Unlock()
	return la.frees
}
