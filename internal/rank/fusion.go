// Package rank combines two ranked result streams via reciprocal-rank
// fusion.
package rank

import (
	"sort"

	"coderag/internal/store"
)

// K is the reciprocal-rank-fusion constant.
const K = 60

// Weights are the default per-list weights.
type Weights struct {
	Text   float64
	Vector float64
}

// DefaultWeights are the fusion weights used when the caller doesn't
// override them.
var DefaultWeights = Weights{Text: 0.4, Vector: 0.6}

// Fuse merges textResults and vectorResults by reciprocal rank, preferring
// the text-side row payload when a chunk key appears in both lists (so its
// BM25 score remains available for inspection even though .Score is
// overwritten with the fused score), sorts descending, and truncates to
// limit.
func Fuse(textResults, vectorResults []store.SearchResult, w Weights, limit int) []store.SearchResult {
	scores := make(map[string]float64)
	rows := make(map[string]store.SearchResult)

	for i, r := range textResults {
		scores[r.ChunkKey] += w.Text / float64(K+i+1)
		rows[r.ChunkKey] = r
	}
	for i, r := range vectorResults {
		scores[r.ChunkKey] += w.Vector / float64(K+i+1)
		if _, exists := rows[r.ChunkKey]; !exists {
			rows[r.ChunkKey] = r
		}
	}

	out := make([]store.SearchResult, 0, len(rows))
	for key, row := range rows {
		row.Score = scores[key]
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
