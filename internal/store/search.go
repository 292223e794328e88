package store

import (
	"fmt"
	"sort"
	"strings"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
)

// ftsNameWeight and ftsSignatureWeight are the BM25 column weights passed to
// bm25() when querying each fts_{id} virtual table.
const (
	ftsNameWeight      = 5.0
	ftsSignatureWeight = 3.0
)

// RebuildFTSTable drops and recreates the codebase's text table, bulk-loads
// it from the chunks currently stored for that codebase, and requests index
// optimization. It is rebuilt wholesale, never incrementally patched.
func (s *SQLiteStore) RebuildFTSTable(codebaseID int64) error {
	table := ftsTableName(codebaseID)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		return fmt.Errorf("drop fts table: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf(
		"CREATE VIRTUAL TABLE %s USING fts5(name, signature, tokenize = 'unicode61')", table,
	)); err != nil {
		return fmt.Errorf("create fts table: %w", err)
	}

	rows, err := tx.Query("SELECT id, name, signature FROM chunks WHERE codebase_id = ?", codebaseID)
	if err != nil {
		return fmt.Errorf("read chunks: %w", err)
	}

	insStmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (rowid, name, signature) VALUES (?, ?, ?)", table))
	if err != nil {
		rows.Close()
		return err
	}

	for rows.Next() {
		var id int64
		var name, sig string
		if err := rows.Scan(&id, &name, &sig); err != nil {
			rows.Close()
			insStmt.Close()
			return err
		}
		if _, err := insStmt.Exec(id, name, sig); err != nil {
			rows.Close()
			insStmt.Close()
			return fmt.Errorf("insert fts row %d: %w", id, err)
		}
	}
	rowErr := rows.Err()
	rows.Close()
	insStmt.Close()
	if rowErr != nil {
		return rowErr
	}

	if _, err := tx.Exec(fmt.Sprintf("INSERT INTO %s(%s) VALUES ('optimize')", table, table)); err != nil {
		return fmt.Errorf("optimize fts table: %w", err)
	}

	return tx.Commit()
}

// VectorSearch runs a global (all-codebases) nearest-neighbor search,
// ordering by ascending cosine distance and reporting score = 1 - distance.
// Chunks without an embedding are never returned, since they have no row in
// vec_chunks.
func (s *SQLiteStore) VectorSearch(queryVector []float32, limit int, includeSnippet bool) ([]SearchResult, error) {
	blob, err := sqlite_vec.SerializeFloat32(queryVector)
	if err != nil {
		return nil, fmt.Errorf("serialize query embedding: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT c.chunk_key, c.file_path, c.name, c.kind, c.signature, c.snippet,
		       c.start_line, c.end_line, v.distance
		FROM vec_chunks v
		JOIN chunks c ON c.id = v.chunk_id
		WHERE v.embedding MATCH ? AND k = ?
		ORDER BY v.distance
	`, blob, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var distance float64
		var snippet string
		if err := rows.Scan(&r.ChunkKey, &r.FilePath, &r.Name, &r.Kind, &r.Signature, &snippet, &r.StartLine, &r.EndLine, &distance); err != nil {
			return nil, err
		}
		r.Score = 1 - distance
		if includeSnippet {
			r.Snippet = snippet
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FTSSearch runs the query against every codebase's text table and merges
// the results by score. A codebase whose text table or index doesn't exist
// yet (transient storage state, e.g. cancellation before a rebuild) is
// silently skipped.
func (s *SQLiteStore) FTSSearch(query string, limit int, includeSnippet bool) ([]SearchResult, error) {
	codebases, err := s.ListCodebases()
	if err != nil {
		return nil, err
	}

	var merged []SearchResult
	for _, cb := range codebases {
		results, err := s.ftsSearchOne(cb.ID, query, limit, includeSnippet)
		if err != nil {
			if isMissingTableErr(err) {
				continue
			}
			return nil, err
		}
		merged = append(merged, results...)
	}

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score > merged[j].Score })
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

func (s *SQLiteStore) ftsSearchOne(codebaseID int64, query string, limit int, includeSnippet bool) ([]SearchResult, error) {
	table := ftsTableName(codebaseID)

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT c.chunk_key, c.file_path, c.name, c.kind, c.signature, c.snippet,
		       c.start_line, c.end_line, bm25(%s, %f, %f) AS rank
		FROM %s
		JOIN chunks c ON c.id = %s.rowid
		WHERE %s MATCH ?
		ORDER BY rank
		LIMIT ?
	`, table, ftsNameWeight, ftsSignatureWeight, table, table, table), query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var rank float64
		var snippet string
		if err := rows.Scan(&r.ChunkKey, &r.FilePath, &r.Name, &r.Kind, &r.Signature, &snippet, &r.StartLine, &r.EndLine, &rank); err != nil {
			return nil, err
		}
		// sqlite's bm25() is more negative for better matches; negate so a
		// higher score means a better match, consistent with vector search.
		r.Score = -rank
		if includeSnippet {
			r.Snippet = snippet
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// isMissingTableErr reports whether err is sqlite's "no such table" or "no
// such index" error, the two transient conditions the text-search reader
// tolerates as empty results.
func isMissingTableErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such table") || strings.Contains(msg, "no such index")
}
