package buf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate(t *testing.T) {
	allocator := NewHeapAllocator()
	data, err := allocator.Alloc(10)
	assert.NoError(t, err)
	assert.Equal(t, 10, len(data))
	assert.NoError(t, allocator.Free(data))
}

func TestAllocateInvalidSize(t *testing.T) {
	_, err := NewHeapAllocator().Alloc(0)
	assert.True(t, errors.Is(err, ErrNoMemory))
}

func TestMmapAllocate(t *testing.T) {
	allocator := NewMmapAllocator()
	data, err := allocator.Alloc(4096 * 3)
	require.NoError(t, err)
	assert.Equal(t, 4096*3, len(data))

	data[0] = 1
	data[len(data)-1] = 2
	assert.Equal(t, byte(1), data[0])
	assert.True(t, IsAligned(data, 64))
	assert.NoError(t, allocator.Free(data))
}

func TestLimitAllocator(t *testing.T) {
	allocator := NewLimitAllocator(nil, 100)

	a, err := allocator.Alloc(60)
	require.NoError(t, err)
	assert.Equal(t, 60, allocator.InUse())

	_, err = allocator.Alloc(41)
	assert.True(t, errors.Is(err, ErrNoMemory))
	assert.Equal(t, 60, allocator.InUse())
	assert.Equal(t, 1, allocator.Allocs())

	b, err := allocator.Alloc(40)
	require.NoError(t, err)
	assert.Equal(t, 100, allocator.InUse())

	assert.NoError(t, allocator.Free(a))
	assert.NoError(t, allocator.Free(b))
	assert.Equal(t, 0, allocator.InUse())
	assert.Equal(t, 2, allocator.Allocs())
	assert.Equal(t, 2, allocator.Frees())
}

func TestLimitAllocatorUnlimited(t *testing.T) {
	allocator := NewLimitAllocator(NewHeapAllocator(), 0)
	data, err := allocator.Alloc(1 << 20)
	assert.NoError(t, err)
	assert.Equal(t, 1<<20, allocator.InUse())
	assert.NoError(t, allocator.Free(data))
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, 8, AlignUp(1, 8))
	assert.Equal(t, 8, AlignUp(8, 8))
	assert.Equal(t, 16, AlignUp(10, 8))
	assert.Equal(t, 64, AlignUp(10, 64))
	assert.Equal(t, 128, AlignUp(65, 64))
	assert.Equal(t, 0, AlignUp(0, 64))
}

func TestAlign(t *testing.T) {
	for shift := 0; shift < 64; shift++ {
		data := make([]byte, 256+63+64)
		aligned := Align(data[shift:], 256, 64)
		assert.Equal(t, 256, len(aligned))
		assert.Equal(t, 256, cap(aligned))
		assert.True(t, IsAligned(aligned, 64))
	}
}

func TestAlignTooSmall(t *testing.T) {
	assert.Panics(t, func() { Align(make([]byte, 64), 64, 64) })
}

func TestAlignNoop(t *testing.T) {
	data := make([]byte, 16)
	assert.Equal(t, 8, len(Align(data, 8, 1)))
}
