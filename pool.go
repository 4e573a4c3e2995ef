// Package mpool is a fixed size object pool. Objects are carved out of chunks of
// objects-per-chunk slots, the pool grows one chunk at a time up to max total
// objects and never shrinks.
//
// Every slot has a flat index that never changes and a generation that is bumped
// each time the slot is put back, so an object can be referenced by a compact
// Handle and validated later with Lookup.
//
// A pool is not safe for concurrent use. All calls on a pool, and Put calls for its
// objects, must be serialized by the caller.
package mpool

import (
	"fmt"
	"math/bits"

	"go.uber.org/zap"
)

type chunk struct {
	// raw is the block returned by the allocator, block its aligned view
	raw     []byte
	block   []byte
	objects []Object
}

// Pool hands out fixed size objects
type Pool struct {
	options options
	logger  *zap.Logger
	guard   ownerGuard
	layout  layout

	perChunk uint32
	maxTotal uint32
	shift    uint32

	total uint32
	inUse uint32
	head  *Object

	// chunks has maxTotal/perChunk entries, entries from next on are nil
	chunks    []*chunk
	next      int
	destroyed bool

	stats struct {
		gets         uint64
		puts         uint64
		grows        uint64
		growFailures uint64
		exhausted    uint64
		notifies     uint64
	}
}

// New create a pool of objects of objectSize bytes. The pool allocates perChunk
// objects at a time and at most maxTotal objects, both must be powers of two and
// maxTotal >= perChunk. The first chunk is allocated before New returns.
func New(objectSize int, perChunk, maxTotal uint32, opts ...Option) (*Pool, error) {
	if objectSize <= 0 {
		return nil, ErrInvalidObjectSize
	}
	if !isPowerOfTwo(perChunk) || !isPowerOfTwo(maxTotal) {
		return nil, fmt.Errorf("%w: per chunk %d, max total %d",
			ErrNotPowerOfTwo, perChunk, maxTotal)
	}
	if maxTotal < perChunk {
		return nil, fmt.Errorf("%w: per chunk %d, max total %d",
			ErrMaxTotalTooSmall, perChunk, maxTotal)
	}

	p := &Pool{
		perChunk: perChunk,
		maxTotal: maxTotal,
		shift:    uint32(bits.TrailingZeros32(perChunk)),
		chunks:   make([]*chunk, maxTotal/perChunk),
	}
	for _, opt := range opts {
		opt(&p.options)
	}
	p.options.adjust()
	p.logger = p.options.logger
	p.guard.enabled = p.options.debug
	if objectSize > maxObjectSize {
		return nil, fmt.Errorf("%w: object size %d", ErrChunkTooLarge, objectSize)
	}
	p.layout = newLayout(objectSize, p.options.aligned)
	if !p.layout.fits(perChunk) {
		return nil, fmt.Errorf("%w: %d objects of %d bytes per chunk",
			ErrChunkTooLarge, perChunk, p.layout.elementSize)
	}

	if err := p.grow(); err != nil {
		p.freeChunks()
		return nil, err
	}

	p.options.tracker.Created(p)
	p.logger.Debug("pool created",
		zap.Int("object-size", p.layout.objectSize),
		zap.Int("element-size", p.layout.elementSize),
		zap.Uint32("per-chunk", perChunk),
		zap.Uint32("max-total", maxTotal),
		zap.Stringer("mem-type", p.options.memType))
	return p, nil
}

// Get returns a free object, growing the pool by one chunk if no object is free.
// Get returns nil if the pool already holds max total objects or the chunk
// allocation failed.
func (p *Pool) Get() *Object {
	p.guard.enter("get")
	defer p.guard.exit()

	if p.options.debug && p.destroyed {
		panic("mpool: get from destroyed pool")
	}

	if p.head == nil {
		if err := p.grow(); err != nil {
			p.stats.exhausted++
			return nil
		}
	}

	obj := p.head
	p.head = obj.next
	obj.next = nil

	if p.options.debug {
		if obj.used() {
			panic(fmt.Sprintf("mpool: object %d on the free list is in use", obj.Index()))
		}
		obj.setUsed(true)
	}

	obj.pool = p
	p.inUse++
	if p.options.debug && p.inUse > p.total {
		panic(fmt.Sprintf("mpool: %d objects in use, %d allocated", p.inUse, p.total))
	}
	p.stats.gets++

	p.options.tracker.Acquired(p, obj)
	return obj
}

// Put gives obj back to its pool and bumps the slot generation. obj must have been
// returned by Get and not put back since. If the pool had all of its max total
// objects in use, the non-empty callback is called once obj is free.
func Put(obj *Object) {
	p := obj.pool
	if p == nil {
		panic(fmt.Sprintf("mpool: put of object %d not in use", obj.Index()))
	}
	obj.setGeneration(obj.Generation() + 1)

	if p.put(obj) && p.options.onNonEmpty != nil {
		p.stats.notifies++
		p.options.onNonEmpty(p.options.context)
	}
}

// put links obj at the head of the free list and returns true if all max total
// objects were in use before
func (p *Pool) put(obj *Object) bool {
	p.guard.enter("put")
	defer p.guard.exit()

	if p.options.debug {
		if !obj.used() {
			panic(fmt.Sprintf("mpool: put of object %d not in use", obj.Index()))
		}
		if p.FindByIndex(obj.Index()) != obj {
			panic(fmt.Sprintf("mpool: put of object %d not owned by pool", obj.Index()))
		}
		obj.setUsed(false)
	}

	wasFull := p.inUse == p.maxTotal
	obj.pool = nil
	obj.next = p.head
	p.head = obj
	p.inUse--
	p.stats.puts++
	p.options.tracker.Released(p, obj)
	return wasFull
}

// FindByIndex returns the object of the slot with the flat index, or nil if index
// is not allocated. The object may be free, compare its generation with the one
// taken at Get time, or use Lookup.
func (p *Pool) FindByIndex(index uint32) *Object {
	if index >= p.total {
		return nil
	}

	obj := &p.chunks[index>>p.shift].objects[index&(p.perChunk-1)]
	if p.options.debug && p.options.noGeneration && obj.pool == nil {
		panic(fmt.Sprintf("mpool: find of free object %d in pool without generations", index))
	}
	return obj
}

// Lookup returns the object of h if the lease h was taken from is still current
func (p *Pool) Lookup(h Handle) (*Object, bool) {
	obj := p.FindByIndex(h.Index)
	if obj == nil || obj.Generation() != h.Generation {
		return nil, false
	}
	return obj, true
}

// Info returns objects per chunk and max total objects
func (p *Pool) Info() (perChunk uint32, maxTotal uint32) {
	return p.perChunk, p.maxTotal
}

// ObjectSize returns the padded object size
func (p *Pool) ObjectSize() int {
	return p.layout.objectSize
}

// ElementSize returns the distance in bytes between two slots of a chunk
func (p *Pool) ElementSize() int {
	return p.layout.elementSize
}

// Allocated returns the number of objects backed by chunks
func (p *Pool) Allocated() uint32 {
	return p.total
}

// InUse returns the number of objects handed out and not put back
func (p *Pool) InUse() uint32 {
	return p.inUse
}

// Available returns the number of objects Get can still return, including the
// ones of chunks not allocated yet
func (p *Pool) Available() uint32 {
	return p.maxTotal - p.inUse
}

// Name returns the pool name
func (p *Pool) Name() string {
	return p.options.name
}

// MemType returns the allocation class of the pool
func (p *Pool) MemType() MemType {
	return p.options.memType
}

// Destroy frees all chunks. All objects must have been put back before, using the
// pool or its objects afterwards is undefined.
func (p *Pool) Destroy() {
	p.guard.enter("destroy")
	defer p.guard.exit()

	if p.destroyed {
		return
	}
	if p.options.debug && p.inUse != 0 {
		panic(fmt.Sprintf("mpool: destroy with %d objects in use", p.inUse))
	}

	p.freeChunks()
	p.options.tracker.Destroyed(p)
	p.logger.Debug("pool destroyed",
		zap.Uint32("allocated", p.total),
		zap.Int("chunks", p.next))
}

// grow adds one chunk of perChunk objects to the free list. The pool is not
// changed if grow fails.
func (p *Pool) grow() error {
	if p.destroyed {
		return ErrPoolDestroyed
	}
	if uint64(p.total)+uint64(p.perChunk) > uint64(p.maxTotal) {
		return ErrPoolExhausted
	}
	if p.next >= len(p.chunks) {
		panic(fmt.Sprintf("mpool: chunk table full, %d chunks", p.next))
	}

	raw, err := p.options.allocator.Alloc(p.layout.requestBytes(p.perChunk))
	if err != nil {
		p.stats.growFailures++
		p.logger.Warn("failed to allocate pool chunk",
			zap.Int("chunk", p.next),
			zap.Int("bytes", p.layout.requestBytes(p.perChunk)),
			zap.Stringer("mem-type", p.options.memType),
			zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNoMemory, err)
	}

	c := &chunk{
		raw:     raw,
		block:   p.layout.block(raw, p.perChunk),
		objects: make([]Object, p.perChunk),
	}
	for i := uint32(0); i < p.perChunk; i++ {
		obj := &c.objects[i]
		obj.hdr, obj.data = p.layout.slot(c.block, i)
		obj.setGeneration(0)
		obj.setIndex(p.total + i)
		obj.setUsed(false)
		obj.next = p.head
		p.head = obj
	}

	p.chunks[p.next] = c
	p.next++
	p.total += p.perChunk
	p.stats.grows++

	p.logger.Debug("pool chunk allocated",
		zap.Int("chunk", p.next-1),
		zap.Uint32("allocated", p.total))
	return nil
}

func (p *Pool) freeChunks() {
	for i, c := range p.chunks {
		if c == nil {
			continue
		}
		if err := p.options.allocator.Free(c.raw); err != nil {
			p.logger.Warn("failed to free pool chunk",
				zap.Int("chunk", i),
				zap.Error(err))
		}
		p.chunks[i] = nil
	}
	p.head = nil
	p.destroyed = true
}

func isPowerOfTwo(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}
