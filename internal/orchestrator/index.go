package orchestrator

import (
	"fmt"
	"path/filepath"
	"time"

	"coderag/internal/chunker"
	"coderag/internal/scanner"
	"coderag/internal/store"
)

// Index runs the full scan → chunk → persist → embed → rebuild pipeline for
// dir.
func (o *Orchestrator) Index(dir string, opts IndexOptions) (*IndexResult, error) {
	start := time.Now()

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	codebaseID, err := o.Store.GetOrCreateCodebase(absDir)
	if err != nil {
		return nil, fmt.Errorf("get or create codebase: %w", err)
	}

	progress := opts.Progress
	if progress == nil {
		progress = func(string, int, int) {}
	}

	progress("scan", 0, 0)
	allowed := languageFilter(opts.Languages)
	scanResult, err := scanner.Scan(absDir, o.languageLookup(allowed))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", absDir, err)
	}

	result := &IndexResult{Errors: append([]string{}, scanResult.Errors...)}

	activeFiles := make(map[string]bool, len(scanResult.Files))
	for _, f := range scanResult.Files {
		activeFiles[f.AbsPath] = true
	}

	var toProcess []scanner.File
	for _, f := range scanResult.Files {
		storedHash, err := o.Store.GetFileHash(codebaseID, f.AbsPath)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", f.AbsPath, err))
			continue
		}
		if storedHash == f.Hash {
			result.Skipped++
			continue
		}
		toProcess = append(toProcess, f)
	}

	for batchStart := 0; batchStart < len(toProcess); batchStart += fileBatchSize {
		end := batchStart + fileBatchSize
		if end > len(toProcess) {
			end = len(toProcess)
		}
		batch := toProcess[batchStart:end]

		progress("chunk", batchStart, len(toProcess))
		fileChunks, chunkCount, batchErrs := o.chunkBatch(batch)
		result.Errors = append(result.Errors, batchErrs...)

		if len(fileChunks) > 0 {
			if err := o.Store.BatchUpsertAllFileChunks(codebaseID, fileChunks); err != nil {
				return nil, fmt.Errorf("persist chunks: %w", err)
			}
		}
		result.Files += len(batch)
		result.Chunks += chunkCount

		progress("embed", batchStart, len(toProcess))
		embedded, err := o.embedStale(codebaseID)
		if err != nil {
			return nil, fmt.Errorf("embed stale chunks: %w", err)
		}
		result.Embedded += embedded
	}
	progress("chunk", len(toProcess), len(toProcess))

	// Catches chunks left stale by a model switch even when no file's content
	// changed, since the batch loop above only runs over toProcess.
	embedded, err := o.embedStale(codebaseID)
	if err != nil {
		return nil, fmt.Errorf("embed stale chunks: %w", err)
	}
	result.Embedded += embedded

	progress("finalize", 0, 0)
	removed, err := o.Store.RemoveStaleFiles(codebaseID, activeFiles)
	if err != nil {
		return nil, fmt.Errorf("remove stale files: %w", err)
	}
	result.Removed = removed

	if err := o.Store.RebuildFTSTable(codebaseID); err != nil {
		return nil, fmt.Errorf("rebuild text index: %w", err)
	}

	if err := o.Store.TouchCodebase(codebaseID); err != nil {
		return nil, fmt.Errorf("touch codebase: %w", err)
	}

	result.DurationMS = time.Since(start).Milliseconds()
	return result, nil
}

// chunkBatch parses every file in batch and returns the store.FileChunks
// ready for persistence, the total chunk count, and any per-file parse
// errors, which are collected rather than treated as fatal.
func (o *Orchestrator) chunkBatch(batch []scanner.File) ([]store.FileChunks, int, []string) {
	var out []store.FileChunks
	var errs []string
	total := 0

	for _, f := range batch {
		desc := o.Langs.Lookup(extOf(f.AbsPath))
		chunks, err := chunker.Parse(desc, f.Content)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", f.AbsPath, err))
			continue
		}

		inputs := make([]store.ChunkInput, len(chunks))
		for i, c := range chunks {
			inputs[i] = store.ChunkInput{
				Kind:      c.Kind,
				Name:      c.Name,
				Signature: c.Signature,
				Snippet:   c.Snippet,
				StartLine: c.StartLine,
				EndLine:   c.EndLine,
			}
		}
		total += len(inputs)

		out = append(out, store.FileChunks{
			FilePath: f.AbsPath,
			FileHash: f.Hash,
			Language: f.Language,
			Chunks:   inputs,
		})
	}

	return out, total, errs
}

// embedStale fetches the codebase's stale embeddings and embeds them in
// sub-batches of embedBatchSize, upserting after each sub-batch. An embedder
// error is propagated: the current sub-batch is abandoned and the already
// persisted, already embedded batches remain committed.
func (o *Orchestrator) embedStale(codebaseID int64) (int, error) {
	stale, err := o.Store.GetStaleEmbeddings(codebaseID, o.Embedder.Model(), 0)
	if err != nil {
		return 0, err
	}

	embedded := 0
	for start := 0; start < len(stale); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(stale) {
			end = len(stale)
		}
		sub := stale[start:end]

		texts := make([]string, len(sub))
		for i, c := range sub {
			texts[i] = buildEmbeddingInput(c)
		}

		vectors, err := o.Embedder.Embed(texts)
		if err != nil {
			return embedded, fmt.Errorf("embedder: %w", err)
		}
		if len(vectors) != len(sub) {
			return embedded, fmt.Errorf("embedder returned %d vectors for %d inputs", len(vectors), len(sub))
		}

		entries := make([]store.EmbeddingUpsert, len(sub))
		for i, c := range sub {
			entries[i] = store.EmbeddingUpsert{
				ChunkKey: c.ChunkKey,
				Vector:   vectors[i],
				Model:    o.Embedder.Model(),
			}
		}
		if err := o.Store.BatchUpsertEmbeddings(entries); err != nil {
			return embedded, err
		}
		embedded += len(sub)
	}

	return embedded, nil
}

// buildEmbeddingInput builds the plain-text embedding input for a chunk,
// omitting empty fields.
func buildEmbeddingInput(c store.StaleEmbedding) string {
	header := c.FilePath
	if c.Kind != "" || c.Name != "" {
		header += ":"
		if c.Kind != "" {
			header += " " + c.Kind
		}
		if c.Name != "" {
			header += " " + c.Name
		}
	}

	snippet := c.Snippet
	if len(snippet) > 500 {
		snippet = snippet[:500]
	}

	text := header
	if c.Signature != "" {
		text += "\n" + c.Signature
	}
	if snippet != "" {
		text += "\n" + snippet
	}
	return text
}

func languageFilter(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func (o *Orchestrator) languageLookup(allowed map[string]bool) scanner.LanguageLookup {
	return func(ext string) string {
		desc := o.Langs.Lookup(ext)
		if desc == nil {
			return ""
		}
		if allowed != nil && !allowed[desc.Name] {
			return ""
		}
		return desc.Name
	}
}

func extOf(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 {
		ext = ext[1:]
	}
	return ext
}
