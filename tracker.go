package mpool

// Tracker receives the pool memory events, for memory checkers and accounting in
// test harnesses. It has no effect on how the pool works.
type Tracker interface {
	// Created is called once the pool and its first chunk are ready
	Created(p *Pool)
	// Acquired is called when obj is handed out by Get
	Acquired(p *Pool, obj *Object)
	// Released is called when obj is given back by Put
	Released(p *Pool, obj *Object)
	// Destroyed is called after the pool freed its chunks
	Destroyed(p *Pool)
}

type nopTracker struct{}

func (nopTracker) Created(*Pool)           {}
func (nopTracker) Acquired(*Pool, *Object) {}
func (nopTracker) Released(*Pool, *Object) {}
func (nopTracker) Destroyed(*Pool)         {}
