package orchestrator

import (
	"fmt"

	"coderag/internal/query"
	"coderag/internal/rank"
	"coderag/internal/store"
)

// Search dispatches to the semantic, keyword, or hybrid path and applies the
// threshold filter last.
func (o *Orchestrator) Search(q string, opts SearchOptions) ([]store.SearchResult, error) {
	if err := o.checkSearchable(); err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}

	var results []store.SearchResult
	var err error

	switch opts.Mode {
	case "keyword":
		results, err = o.searchKeyword(q, limit, opts.IncludeSnippet)
	case "hybrid":
		results, err = o.searchHybrid(q, limit, opts.IncludeSnippet)
	default:
		results, err = o.searchSemantic(q, limit, opts.IncludeSnippet)
	}
	if err != nil {
		return nil, err
	}

	return filterByThreshold(results, opts.Threshold), nil
}

func (o *Orchestrator) searchSemantic(q string, limit int, includeSnippet bool) ([]store.SearchResult, error) {
	vectors, err := o.Embedder.Embed([]string{q})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for 1 query", len(vectors))
	}
	return o.Store.VectorSearch(vectors[0], limit, includeSnippet)
}

func (o *Orchestrator) searchKeyword(q string, limit int, includeSnippet bool) ([]store.SearchResult, error) {
	normalized := query.Preprocess(q, query.Keywords)
	if normalized == "" {
		return nil, nil
	}
	return o.Store.FTSSearch(normalized, limit, includeSnippet)
}

func (o *Orchestrator) searchHybrid(q string, limit int, includeSnippet bool) ([]store.SearchResult, error) {
	textResults, err := o.searchKeyword(q, limit, includeSnippet)
	if err != nil {
		return nil, err
	}
	vectorResults, err := o.searchSemantic(q, limit, includeSnippet)
	if err != nil {
		return nil, err
	}
	return rank.Fuse(textResults, vectorResults, rank.DefaultWeights, limit), nil
}

func filterByThreshold(results []store.SearchResult, threshold float64) []store.SearchResult {
	if threshold <= 0 {
		return results
	}
	out := make([]store.SearchResult, 0, len(results))
	for _, r := range results {
		if r.Score >= threshold {
			out = append(out, r)
		}
	}
	return out
}
