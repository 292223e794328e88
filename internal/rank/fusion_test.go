package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderag/internal/store"
)

func TestFuseHybridOrderingFavorsAgreementAcrossRanks(t *testing.T) {
	// C1: text rank 1, vector rank 3. C2: text rank 3, vector rank 1.
	c1 := store.SearchResult{ChunkKey: "c1"}
	c2 := store.SearchResult{ChunkKey: "c2"}
	onlyText := store.SearchResult{ChunkKey: "only-text"}
	onlyVector := store.SearchResult{ChunkKey: "only-vector"}

	text := []store.SearchResult{c1, onlyText, c2}
	vector := []store.SearchResult{c2, onlyVector, c1}

	fused := Fuse(text, vector, DefaultWeights, 10)
	require.Len(t, fused, 4)

	assert.Equal(t, "c2", fused[0].ChunkKey)
	assert.Equal(t, "c1", fused[1].ChunkKey)
	// Both C1 and C2 appear in both lists; "only-vector" and "only-text" each
	// appear in only one and must rank below both.
	assert.Equal(t, "only-vector", fused[2].ChunkKey)
	assert.Equal(t, "only-text", fused[3].ChunkKey)
}

func TestFusePrefersTextRowPayloadOnConflict(t *testing.T) {
	text := []store.SearchResult{{ChunkKey: "k", Score: 9.5, Snippet: "from-text"}}
	vector := []store.SearchResult{{ChunkKey: "k", Score: 0.8, Snippet: "from-vector"}}

	fused := Fuse(text, vector, DefaultWeights, 10)
	require.Len(t, fused, 1)
	assert.Equal(t, "from-text", fused[0].Snippet)
	assert.NotEqual(t, float64(9.5), fused[0].Score)
}

func TestFuseTruncatesToLimit(t *testing.T) {
	var text []store.SearchResult
	for i := 0; i < 5; i++ {
		text = append(text, store.SearchResult{ChunkKey: string(rune('a' + i))})
	}
	fused := Fuse(text, nil, DefaultWeights, 2)
	assert.Len(t, fused, 2)
}
