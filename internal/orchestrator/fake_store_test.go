package orchestrator

import (
	"fmt"
	"sort"
	"time"

	"coderag/internal/store"
)

// fakeStore is an in-memory store.Store used to exercise the orchestrator's
// pipelining logic without a real SQLite database.
type fakeStore struct {
	codebases map[int64]store.Codebase
	nextID    int64

	// chunks are keyed by (codebaseID, filePath).
	files map[int64]map[string]store.FileChunks
	// embeddings are keyed by chunk key.
	embeddings map[string]store.EmbeddingUpsert

	ftsRebuilds int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		codebases:  make(map[int64]store.Codebase),
		files:      make(map[int64]map[string]store.FileChunks),
		embeddings: make(map[string]store.EmbeddingUpsert),
	}
}

func (f *fakeStore) GetOrCreateCodebase(rootPath string) (int64, error) {
	for id, c := range f.codebases {
		if c.RootPath == rootPath {
			return id, nil
		}
	}
	f.nextID++
	f.codebases[f.nextID] = store.Codebase{ID: f.nextID, RootPath: rootPath, Name: rootPath}
	f.files[f.nextID] = make(map[string]store.FileChunks)
	return f.nextID, nil
}

func (f *fakeStore) TouchCodebase(id int64) error {
	c := f.codebases[id]
	c.IndexedAt = time.Now()
	f.codebases[id] = c
	return nil
}

func (f *fakeStore) ListCodebases() ([]store.Codebase, error) {
	var out []store.Codebase
	for _, c := range f.codebases {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetFileHash(codebaseID int64, filePath string) (string, error) {
	fc, ok := f.files[codebaseID][filePath]
	if !ok {
		return "", nil
	}
	return fc.FileHash, nil
}

func (f *fakeStore) ListFiles(codebaseID int64) ([]store.FileSummary, error) {
	var out []store.FileSummary
	for id, byPath := range f.files {
		if codebaseID > 0 && id != codebaseID {
			continue
		}
		for path, fc := range byPath {
			out = append(out, store.FileSummary{
				CodebaseID: id, FilePath: path, Language: fc.Language, ChunkCount: len(fc.Chunks),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FilePath < out[j].FilePath })
	return out, nil
}

func (f *fakeStore) BatchUpsertAllFileChunks(codebaseID int64, files []store.FileChunks) error {
	for _, fc := range files {
		f.files[codebaseID][fc.FilePath] = fc
		for _, c := range fc.Chunks {
			delete(f.embeddings, store.ChunkKey(fc.FilePath, c.StartLine, c.EndLine))
		}
	}
	return nil
}

func (f *fakeStore) RemoveStaleFiles(codebaseID int64, activeFiles map[string]bool) (int, error) {
	removed := 0
	for path := range f.files[codebaseID] {
		if !activeFiles[path] {
			delete(f.files[codebaseID], path)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeStore) GetStaleEmbeddings(codebaseID int64, model string, limit int) ([]store.StaleEmbedding, error) {
	var out []store.StaleEmbedding
	for path, fc := range f.files[codebaseID] {
		for _, c := range fc.Chunks {
			key := store.ChunkKey(path, c.StartLine, c.EndLine)
			e, ok := f.embeddings[key]
			if ok && e.Model == model {
				continue
			}
			out = append(out, store.StaleEmbedding{
				ChunkKey: key, Name: c.Name, Signature: c.Signature, FilePath: path, Kind: c.Kind, Snippet: c.Snippet,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChunkKey < out[j].ChunkKey })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) BatchUpsertEmbeddings(entries []store.EmbeddingUpsert) error {
	for _, e := range entries {
		f.embeddings[e.ChunkKey] = e
	}
	return nil
}

func (f *fakeStore) CountEmbeddedChunks() (int, error) {
	return len(f.embeddings), nil
}

func (f *fakeStore) RebuildFTSTable(codebaseID int64) error {
	f.ftsRebuilds++
	return nil
}

func (f *fakeStore) VectorSearch(queryVector []float32, limit int, includeSnippet bool) ([]store.SearchResult, error) {
	return nil, nil
}

func (f *fakeStore) FTSSearch(query string, limit int, includeSnippet bool) ([]store.SearchResult, error) {
	return nil, nil
}

func (f *fakeStore) DBPath() string { return ":fake:" }

func (f *fakeStore) DBSize() (int64, error) { return 0, fmt.Errorf("fake store has no file") }

func (f *fakeStore) Close() error { return nil }

var _ store.Store = (*fakeStore)(nil)
