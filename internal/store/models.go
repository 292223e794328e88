package store

import (
	"strconv"
	"time"
)

// Codebase is a registered root directory.
type Codebase struct {
	ID        int64
	RootPath  string
	Name      string
	IndexedAt time.Time
}

// IndexedFile is one row per source file within a codebase.
type IndexedFile struct {
	ID         int64
	CodebaseID int64
	FilePath   string
	FileHash   string
	ChunkCount int
	IndexedAt  time.Time
}

// Chunk is the unit of retrieval.
type Chunk struct {
	ID             int64
	CodebaseID     int64
	FilePath       string
	ChunkKey       string
	Language       string
	Kind           string
	Name           string
	Signature      string
	Snippet        string
	StartLine      int
	EndLine        int
	FileHash       string
	EmbeddingModel string
	HasEmbedding   bool
}

// FileChunks is the input to BatchUpsertAllFileChunks: a file and the full
// set of chunks just extracted from its current content.
type FileChunks struct {
	FilePath string
	FileHash string
	Language string
	Chunks   []ChunkInput
}

// ChunkInput is a chunk as produced by the chunker, prior to storage.
type ChunkInput struct {
	Kind      string
	Name      string
	Signature string
	Snippet   string
	StartLine int
	EndLine   int
}

// StaleEmbedding is a chunk whose embedding is missing or was produced by a
// different model than the one currently requested.
type StaleEmbedding struct {
	ChunkKey  string
	Name      string
	Signature string
	FilePath  string
	Kind      string
	Snippet   string
}

// EmbeddingUpsert is one chunk's freshly computed embedding, keyed by its
// stable chunk key rather than its row id (the row id may not be known to
// the caller, which only ever sees chunk keys).
type EmbeddingUpsert struct {
	ChunkKey string
	Vector   []float32
	Model    string
}

// SearchResult is a chunk with its relevance score, as returned by any of
// the three search paths.
type SearchResult struct {
	ChunkKey  string
	FilePath  string
	Name      string
	Kind      string
	Signature string
	Snippet   string
	StartLine int
	EndLine   int
	Score     float64
}

// FileSummary is a lightweight file listing row.
type FileSummary struct {
	CodebaseID int64
	FilePath   string
	Language   string
	ChunkCount int
	IndexedAt  time.Time
}

// ChunkKey builds the stable, globally unique chunk identifier from a file
// path and inclusive 1-based line range.
func ChunkKey(filePath string, startLine, endLine int) string {
	return filePath + ":" + strconv.Itoa(startLine) + ":" + strconv.Itoa(endLine)
}
