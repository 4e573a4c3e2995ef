package mpool

import (
	"github.com/fagongzi/mpool/buf"
)

const (
	// headerSize bytes of the slot header stored in the chunk right before the object:
	//
	// | generation (4) | index (4) | used (4) | pad (4) |
	headerSize = 16
	// sizeClass objects are padded to a multiple of sizeClass bytes
	sizeClass = 8
	// alignment boundary of objects in pools created WithAlignment
	alignment = 64

	maxInt = int(^uint(0) >> 1)

	genOffset   = 0
	indexOffset = 4
	usedOffset  = 8
)

// layout is the placement of one slot inside a chunk
//
// | pad (headerOffset) | header (headerSize) | object (objectSize) |
// |<------------------- elementSize -------------------------->|
type layout struct {
	objectSize   int
	elementSize  int
	headerOffset int
	blockAlign   int
}

func newLayout(objectSize int, aligned bool) layout {
	if aligned {
		hdr := buf.AlignUp(headerSize, alignment)
		obj := buf.AlignUp(objectSize, alignment)
		return layout{
			objectSize:   obj,
			elementSize:  hdr + obj,
			headerOffset: hdr - headerSize,
			blockAlign:   alignment,
		}
	}

	obj := buf.AlignUp(objectSize, sizeClass)
	return layout{
		objectSize:   obj,
		elementSize:  headerSize + obj,
		headerOffset: 0,
		blockAlign:   1,
	}
}

// maxObjectSize is the largest object size newLayout can pad without overflow
const maxObjectSize = maxInt - 2*alignment

// fits returns true if requestBytes(n) does not overflow an int
func (l layout) fits(n uint32) bool {
	return uint64(n) <= uint64(maxInt-l.blockAlign+1)/uint64(l.elementSize)
}

// chunkBytes returns the bytes needed for n slots
func (l layout) chunkBytes(n uint32) int {
	return int(n) * l.elementSize
}

// requestBytes returns the bytes to request from the allocator for n slots, including
// the slack needed to align the block
func (l layout) requestBytes(n uint32) int {
	return l.chunkBytes(n) + l.blockAlign - 1
}

// slot returns the header and object bytes of the i-th slot in block
func (l layout) slot(block []byte, i uint32) (hdr []byte, obj []byte) {
	start := int(i)*l.elementSize + l.headerOffset
	hdr = block[start : start+headerSize : start+headerSize]
	start += headerSize
	obj = block[start : start+l.objectSize : start+l.objectSize]
	return
}

// block returns the aligned view of n slots in raw, raw must hold requestBytes(n)
func (l layout) block(raw []byte, n uint32) []byte {
	return buf.Align(raw, l.chunkBytes(n), l.blockAlign)
}
