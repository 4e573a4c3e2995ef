// Package backlog queues work that needs a pool object while the pool is exhausted
// and runs it once the pool hands objects out again.
package backlog

import (
	"github.com/eapache/queue"
	"github.com/fagongzi/mpool"
	"go.uber.org/zap"
)

// Func is work that needs one object of the pool. It owns obj and must put it back
// when done.
type Func func(obj *mpool.Object)

// Backlog runs Funcs in submission order, each with its own object. Like the pool it
// is not safe for concurrent use.
type Backlog struct {
	pool    *mpool.Pool
	pending *queue.Queue
	logger  *zap.Logger
	resumed uint64
}

// New create a backlog without a pool, use Attach or set the pool with Bind
func New(logger *zap.Logger) *Backlog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backlog{
		pending: queue.New(),
		logger:  logger,
	}
}

// Attach create a pool whose non-empty callback resumes a new backlog
func Attach(objectSize int, perChunk, maxTotal uint32, logger *zap.Logger,
	opts ...mpool.Option) (*Backlog, error) {
	b := New(logger)
	opts = append(opts, mpool.WithNonEmptyCallback(b.Resume, nil))
	p, err := mpool.New(objectSize, perChunk, maxTotal, opts...)
	if err != nil {
		return nil, err
	}
	b.Bind(p)
	return b, nil
}

// Bind set the pool the backlog gets objects from. The pool must call Resume from
// its non-empty callback.
func (b *Backlog) Bind(p *mpool.Pool) {
	b.pool = p
}

// Pool returns the pool
func (b *Backlog) Pool() *mpool.Pool {
	return b.pool
}

// Submit runs fn at once if an object is available and nothing is queued before it,
// and returns true. Otherwise fn is queued and Submit returns false. Queued work is
// resumed first, the pool only calls Resume when it was full, not when a chunk
// allocation failed below max total.
func (b *Backlog) Submit(fn Func) bool {
	if b.pending.Length() > 0 {
		b.Resume(nil)
	}
	if b.pending.Length() == 0 {
		if obj := b.pool.Get(); obj != nil {
			fn(obj)
			return true
		}
	}

	b.pending.Add(fn)
	b.logger.Debug("work queued, pool exhausted",
		zap.String("pool", b.pool.Name()),
		zap.Int("pending", b.pending.Length()))
	return false
}

// Resume runs queued work while the pool has objects. It matches mpool.NonEmptyFunc.
func (b *Backlog) Resume(any) {
	for b.pending.Length() > 0 {
		obj := b.pool.Get()
		if obj == nil {
			return
		}
		fn := b.pending.Remove().(Func)
		b.resumed++
		fn(obj)
	}
}

// Pending returns the number of queued Funcs
func (b *Backlog) Pending() int {
	return b.pending.Length()
}

// Resumed returns the number of queued Funcs that ran
func (b *Backlog) Resumed() uint64 {
	return b.resumed
}
