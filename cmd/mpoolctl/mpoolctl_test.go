package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunChurn(t *testing.T) {
	for _, cfg := range []poolConfig{
		{objectSize: 24, perChunk: 4, maxTotal: 16},
		{objectSize: 10, perChunk: 8, maxTotal: 8, aligned: true, debug: true},
		{objectSize: 100, perChunk: 2, maxTotal: 64, allocator: "mmap"},
	} {
		result, err := runChurn(cfg, 2000, 7)
		require.NoError(t, err)
		assert.Equal(t, result.stats.Gets, result.stats.Puts)
		assert.Equal(t, uint64(result.notifies), result.stats.Notifies)
		assert.True(t, result.staleFound > 0)
		assert.True(t, result.stats.Allocated <= cfg.maxTotal)
	}
}

func TestRunChurnInvalidConfig(t *testing.T) {
	_, err := runChurn(poolConfig{objectSize: 10, perChunk: 3, maxTotal: 8}, 10, 1)
	assert.Error(t, err)

	_, err = runChurn(poolConfig{objectSize: 10, perChunk: 4, maxTotal: 8, allocator: "x"}, 10, 1)
	assert.Error(t, err)
}

func TestRunLayout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runLayout(&out, poolConfig{objectSize: 10, perChunk: 4, maxTotal: 8, aligned: true}))
	assert.Contains(t, out.String(), "object size:   64 (requested 10)")
	assert.Contains(t, out.String(), "element size:  128")
	assert.Contains(t, out.String(), "max chunks:    2")
}
