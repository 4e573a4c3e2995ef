package metrics

import (
	"strings"
	"testing"

	"github.com/fagongzi/mpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	p, err := mpool.New(10, 4, 8, mpool.WithName("descriptors"),
		mpool.WithMemType(mpool.MemTypeDescriptors))
	require.NoError(t, err)

	var held []*mpool.Object
	for i := 0; i < 5; i++ {
		held = append(held, p.Get())
	}
	mpool.Put(held[0])

	c := NewCollector(p.Stats)
	assert.Equal(t, 10, testutil.CollectAndCount(c))

	expected := `
# HELP mpool_objects_allocated Objects backed by allocated chunks.
# TYPE mpool_objects_allocated gauge
mpool_objects_allocated{mem_type="descriptors",pool="descriptors"} 8
# HELP mpool_objects_in_use Objects handed out and not put back.
# TYPE mpool_objects_in_use gauge
mpool_objects_in_use{mem_type="descriptors",pool="descriptors"} 4
# HELP mpool_grows_total Chunks allocated.
# TYPE mpool_grows_total counter
mpool_grows_total{mem_type="descriptors",pool="descriptors"} 2
`
	assert.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"mpool_objects_allocated", "mpool_objects_in_use", "mpool_grows_total"))
}

func TestCollectorRegister(t *testing.T) {
	p, err := mpool.New(10, 4, 8)
	require.NoError(t, err)

	registry := prometheus.NewPedanticRegistry()
	assert.NoError(t, registry.Register(NewCollector(p.Stats)))

	families, err := registry.Gather()
	assert.NoError(t, err)
	assert.Equal(t, 10, len(families))
}
