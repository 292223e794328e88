// Package orchestrator owns the two public entry points, index(dir) and
// search(query), and the pipelining, batching, and health check that sit
// between the scanner/chunker/store/rank/query packages.
package orchestrator

import (
	"sync"

	"coderag/internal/embedder"
	"coderag/internal/lang"
	"coderag/internal/store"
)

// fileBatchSize and embedBatchSize are the streaming pipeline's batch
// boundaries.
const (
	fileBatchSize  = 200
	embedBatchSize = 64
)

// Orchestrator wires the store, embedder, and language registry together.
// One Orchestrator is expected per process; its health check runs at most
// once across its lifetime.
type Orchestrator struct {
	Store    store.Store
	Embedder embedder.Embedder
	Langs    *lang.Registry

	healthOnce sync.Once
	healthErr  error
}

// New builds an Orchestrator over the given collaborators.
func New(s store.Store, e embedder.Embedder, langs *lang.Registry) *Orchestrator {
	return &Orchestrator{Store: s, Embedder: e, Langs: langs}
}

// ProgressFunc reports pipeline progress during Index: stage names the
// current step ("scan", "chunk", "embed", "finalize"); done/total are
// item counts within that stage (0/0 when the stage has no meaningful
// total, e.g. "scan").
type ProgressFunc func(stage string, done, total int)

// IndexOptions configures a single Index call.
type IndexOptions struct {
	// Languages, if non-empty, restricts indexing to these language names.
	Languages []string
	Verbose   bool
	// Progress, if set, is called as Index moves through its pipeline
	// stages. Safe to leave nil.
	Progress ProgressFunc
}

// IndexResult reports what an Index call did.
type IndexResult struct {
	Files      int
	Chunks     int
	Embedded   int
	Skipped    int
	Removed    int
	Errors     []string
	DurationMS int64
}

// SearchOptions configures a single Search call.
type SearchOptions struct {
	Limit          int
	Threshold      float64
	IncludeSnippet bool
	Mode           string
}

// DefaultSearchOptions returns the CLI's baseline search configuration.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Limit: 5, Threshold: 0, IncludeSnippet: false, Mode: "semantic"}
}
