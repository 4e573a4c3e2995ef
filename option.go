package mpool

import (
	"github.com/fagongzi/mpool/buf"
	"go.uber.org/zap"
)

const (
	// defaultName name used in logs when WithName is not set
	defaultName = "mpool"
)

// NonEmptyFunc is called when a pool that had handed out all of its max total
// objects gets one of them back. context is the value given to WithNonEmptyCallback.
type NonEmptyFunc func(context any)

// Option pool option
type Option func(*options)

type options struct {
	name         string
	aligned      bool
	noGeneration bool
	debug        bool
	memType      MemType
	allocator    buf.Allocator
	tracker      Tracker
	logger       *zap.Logger
	onNonEmpty   NonEmptyFunc
	context      any
}

func (opts *options) adjust() {
	if opts.name == "" {
		opts.name = defaultName
	}
	if opts.allocator == nil {
		opts.allocator = buf.NewHeapAllocator()
	}
	if opts.tracker == nil {
		opts.tracker = nopTracker{}
	}
	if opts.logger == nil {
		opts.logger = logger
	}
	opts.logger = opts.logger.Named(opts.name)
}

// WithName set the pool name used in logs and metrics
func WithName(name string) Option {
	return func(opts *options) {
		opts.name = name
	}
}

// WithAlignment place every object on a 64 byte boundary and pad its size to a
// multiple of 64 bytes.
func WithAlignment() Option {
	return func(opts *options) {
		opts.aligned = true
	}
}

// WithNoGeneration declare that callers never look up released objects by index.
// With debug enabled, FindByIndex asserts the object found is in use.
func WithNoGeneration() Option {
	return func(opts *options) {
		opts.noGeneration = true
	}
}

// WithDebug enable contract assertions: double get, double put, foreign objects,
// destroy with objects in use and concurrent use of the pool all panic.
func WithDebug(value bool) Option {
	return func(opts *options) {
		opts.debug = value
	}
}

// WithMemType set the allocation class reported to the tracker and in logs
func WithMemType(value MemType) Option {
	return func(opts *options) {
		opts.memType = value
	}
}

// WithAllocator set the allocator the chunks are obtained from
func WithAllocator(value buf.Allocator) Option {
	return func(opts *options) {
		opts.allocator = value
	}
}

// WithTracker set the memory diagnostics tracker
func WithTracker(value Tracker) Option {
	return func(opts *options) {
		opts.tracker = value
	}
}

// WithLogger set logger for the pool
func WithLogger(value *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = value
	}
}

// WithNonEmptyCallback set the func called with context when the pool goes from
// all objects in use to one object free.
func WithNonEmptyCallback(fn NonEmptyFunc, context any) Option {
	return func(opts *options) {
		opts.onNonEmpty = fn
		opts.context = context
	}
}
