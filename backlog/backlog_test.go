package backlog

import (
	"testing"

	"github.com/fagongzi/mpool"
	"github.com/fagongzi/mpool/buf"
	"github.com/lni/goutils/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRunsAtOnce(t *testing.T) {
	defer leaktest.AfterTest(t)()

	b, err := Attach(32, 2, 4, nil)
	require.NoError(t, err)

	var got *mpool.Object
	assert.True(t, b.Submit(func(obj *mpool.Object) { got = obj }))
	require.NotNil(t, got)
	assert.Equal(t, uint32(1), b.Pool().InUse())
	assert.Equal(t, 0, b.Pending())

	mpool.Put(got)
}

func TestSubmitQueuesWhenExhausted(t *testing.T) {
	defer leaktest.AfterTest(t)()

	b, err := Attach(32, 2, 4, nil, mpool.WithDebug(true))
	require.NoError(t, err)

	var held []*mpool.Object
	keep := func(obj *mpool.Object) { held = append(held, obj) }
	for i := 0; i < 4; i++ {
		assert.True(t, b.Submit(keep))
	}

	var order []int
	for i := 0; i < 3; i++ {
		n := i
		assert.False(t, b.Submit(func(obj *mpool.Object) {
			order = append(order, n)
			held = append(held, obj)
		}))
	}
	assert.Equal(t, 3, b.Pending())

	mpool.Put(held[0])
	assert.Equal(t, []int{0}, order)
	assert.Equal(t, 2, b.Pending())
	assert.Equal(t, uint32(4), b.Pool().InUse())

	mpool.Put(held[1])
	mpool.Put(held[2])
	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, 0, b.Pending())
	assert.Equal(t, uint64(3), b.Resumed())
}

func TestSubmitKeepsOrderBehindQueuedWork(t *testing.T) {
	p, err := mpool.New(32, 2, 2)
	require.NoError(t, err)
	b := New(nil)
	b.Bind(p)

	var held []*mpool.Object
	keep := func(obj *mpool.Object) { held = append(held, obj) }
	assert.True(t, b.Submit(keep))
	assert.True(t, b.Submit(keep))
	assert.False(t, b.Submit(keep))

	// the pool has no callback, the next Submit resumes the queued work first
	mpool.Put(held[0])
	assert.False(t, b.Submit(keep))
	assert.Equal(t, 1, b.Pending())
	assert.Equal(t, uint64(1), b.Resumed())
	assert.Equal(t, 3, len(held))
}

func TestSubmitResumesAfterGrowFailure(t *testing.T) {
	defer leaktest.AfterTest(t)()

	// budget for one chunk of 4 objects of 48 bytes
	alloc := buf.NewLimitAllocator(nil, 4*48)
	b, err := Attach(32, 4, 8, nil, mpool.WithAllocator(alloc))
	require.NoError(t, err)

	var held []*mpool.Object
	keep := func(obj *mpool.Object) { held = append(held, obj) }
	for i := 0; i < 4; i++ {
		assert.True(t, b.Submit(keep))
	}
	queued := false
	assert.False(t, b.Submit(func(obj *mpool.Object) {
		queued = true
		mpool.Put(obj)
	}))
	assert.Equal(t, 1, b.Pending())

	// below max total, putting objects back does not call Resume
	for _, obj := range held {
		mpool.Put(obj)
	}
	assert.Equal(t, uint32(0), b.Pool().InUse())
	assert.Equal(t, 1, b.Pending())
	assert.False(t, queued)

	assert.True(t, b.Submit(keep))
	assert.True(t, queued)
	assert.Equal(t, 0, b.Pending())
	assert.Equal(t, uint64(1), b.Resumed())
	assert.Equal(t, 1, alloc.Allocs())
}

func TestResumeStopsWhenExhausted(t *testing.T) {
	b, err := Attach(32, 2, 2, nil)
	require.NoError(t, err)

	var held []*mpool.Object
	keep := func(obj *mpool.Object) { held = append(held, obj) }
	for i := 0; i < 5; i++ {
		b.Submit(keep)
	}
	assert.Equal(t, 3, b.Pending())

	b.Resume(nil)
	assert.Equal(t, 3, b.Pending())

	mpool.Put(held[0])
	assert.Equal(t, 2, b.Pending())
	assert.Equal(t, 3, len(held))
}

func TestAttachWithInvalidConfig(t *testing.T) {
	b, err := Attach(32, 3, 4, nil)
	assert.Error(t, err)
	assert.Nil(t, b)
}
