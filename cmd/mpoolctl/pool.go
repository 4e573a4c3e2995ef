package main

import (
	"fmt"

	"github.com/fagongzi/mpool"
	"github.com/fagongzi/mpool/buf"
)

type poolConfig struct {
	objectSize int
	perChunk   uint32
	maxTotal   uint32
	aligned    bool
	allocator  string
	debug      bool
}

func flagsConfig() poolConfig {
	return poolConfig{
		objectSize: objectSize,
		perChunk:   perChunk,
		maxTotal:   maxTotal,
		aligned:    aligned,
		allocator:  allocator,
	}
}

func (cfg poolConfig) newPool(opts ...mpool.Option) (*mpool.Pool, error) {
	switch cfg.allocator {
	case "", "heap":
		opts = append(opts, mpool.WithAllocator(buf.NewHeapAllocator()))
	case "mmap":
		opts = append(opts, mpool.WithAllocator(buf.NewMmapAllocator()))
	default:
		return nil, fmt.Errorf("unknown allocator %q", cfg.allocator)
	}
	if cfg.aligned {
		opts = append(opts, mpool.WithAlignment())
	}
	opts = append(opts, mpool.WithDebug(cfg.debug))
	return mpool.New(cfg.objectSize, cfg.perChunk, cfg.maxTotal, opts...)
}
