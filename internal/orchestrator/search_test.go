package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderag/internal/store"
)

func TestSearchKeywordSkipsStoreWhenQueryHasNoKeywords(t *testing.T) {
	o, _, _ := newTestOrchestrator()
	results, err := o.Search("the a an", SearchOptions{Mode: "keyword"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFilterByThresholdDropsLowScores(t *testing.T) {
	in := []store.SearchResult{{ChunkKey: "a", Score: 0.9}, {ChunkKey: "b", Score: 0.1}}
	out := filterByThreshold(in, 0.5)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ChunkKey)
}

func TestFilterByThresholdPassesThroughWhenZero(t *testing.T) {
	in := []store.SearchResult{{ChunkKey: "a", Score: 0}}
	assert.Equal(t, in, filterByThreshold(in, 0))
}
