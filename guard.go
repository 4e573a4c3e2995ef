package mpool

import (
	"fmt"
	"sync/atomic"
)

// ownerGuard detects two goroutines inside the same pool at once. Pools are not safe
// for concurrent use, the guard only makes the misuse loud when debug is enabled.
type ownerGuard struct {
	enabled bool
	busy    atomic.Int32
}

func (g *ownerGuard) enter(op string) {
	if g.enabled && !g.busy.CompareAndSwap(0, 1) {
		panic(fmt.Sprintf("mpool: concurrent use of pool in %s", op))
	}
}

func (g *ownerGuard) exit() {
	if g.enabled {
		g.busy.Store(0)
	}
}
