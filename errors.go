package mpool

import (
	"errors"
)

var (
	// ErrInvalidObjectSize the object size is not positive
	ErrInvalidObjectSize = errors.New("mpool: object size must be positive")
	// ErrNotPowerOfTwo objects per chunk or max total objects is not a power of two
	ErrNotPowerOfTwo = errors.New("mpool: object counts must be powers of two")
	// ErrMaxTotalTooSmall max total objects is less than objects per chunk
	ErrMaxTotalTooSmall = errors.New("mpool: max total objects less than objects per chunk")
	// ErrChunkTooLarge the bytes of one chunk do not fit in an int
	ErrChunkTooLarge = errors.New("mpool: chunk too large")
	// ErrPoolExhausted the pool already holds max total objects and can not grow
	ErrPoolExhausted = errors.New("mpool: pool exhausted")
	// ErrNoMemory the chunk allocator failed
	ErrNoMemory = errors.New("mpool: no memory")
	// ErrPoolDestroyed the pool was destroyed
	ErrPoolDestroyed = errors.New("mpool: pool destroyed")
)
