package mpool

import (
	"github.com/fagongzi/mpool/buf"
)

// Handle identifies one lease of a slot. A handle taken from an object stays valid
// until the object is put back, after that the slot generation no longer matches.
type Handle struct {
	Index      uint32
	Generation uint32
}

// Object is one slot of a pool: a header holding the slot index and generation,
// followed by the object bytes. Objects are owned by the pool and lent to callers
// by Get until they are given back with Put.
type Object struct {
	// next is the free list link, only valid while the object is free
	next *Object
	// pool is the owner, only valid while the object is in use
	pool *Pool
	hdr  []byte
	data []byte
}

// Bytes returns the object memory. Its len is the padded object size of the pool.
func (o *Object) Bytes() []byte {
	return o.data
}

// Index returns the flat index of the slot, it never changes
func (o *Object) Index() uint32 {
	return buf.Byte2Uint32(o.hdr[indexOffset:])
}

// Generation returns the number of times the slot was put back
func (o *Object) Generation() uint32 {
	return buf.Byte2Uint32(o.hdr[genOffset:])
}

// Handle returns the index and generation of the current lease
func (o *Object) Handle() Handle {
	return Handle{Index: o.Index(), Generation: o.Generation()}
}

// Release put the object back to its pool, see Put
func (o *Object) Release() {
	Put(o)
}

func (o *Object) setGeneration(gen uint32) {
	buf.Uint32ToBytesTo(gen, o.hdr[genOffset:])
}

func (o *Object) setIndex(index uint32) {
	buf.Uint32ToBytesTo(index, o.hdr[indexOffset:])
}

func (o *Object) used() bool {
	return buf.Byte2Uint32(o.hdr[usedOffset:]) != 0
}

func (o *Object) setUsed(used bool) {
	v := uint32(0)
	if used {
		v = 1
	}
	buf.Uint32ToBytesTo(v, o.hdr[usedOffset:])
}

// IndexOf returns the flat index of obj
func IndexOf(obj *Object) uint32 {
	return obj.Index()
}

// GenerationOf returns the generation of obj
func GenerationOf(obj *Object) uint32 {
	return obj.Generation()
}

// IndexAndGeneration returns the flat index and the generation of obj
func IndexAndGeneration(obj *Object) (index uint32, generation uint32) {
	return obj.Index(), obj.Generation()
}
