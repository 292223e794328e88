// Package store owns all persistent state: codebases, files, chunks, and
// embeddings, the per-codebase text indices, and the vector/text/hybrid
// search reads.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	sqlite_vec.Auto()
}

// Store is the persistence contract the orchestrator depends on.
type Store interface {
	GetOrCreateCodebase(rootPath string) (int64, error)
	TouchCodebase(codebaseID int64) error
	ListCodebases() ([]Codebase, error)

	GetFileHash(codebaseID int64, filePath string) (string, error)
	ListFiles(codebaseID int64) ([]FileSummary, error)

	BatchUpsertAllFileChunks(codebaseID int64, files []FileChunks) error
	RemoveStaleFiles(codebaseID int64, activeFiles map[string]bool) (int, error)

	GetStaleEmbeddings(codebaseID int64, model string, limit int) ([]StaleEmbedding, error)
	BatchUpsertEmbeddings(entries []EmbeddingUpsert) error
	CountEmbeddedChunks() (int, error)

	RebuildFTSTable(codebaseID int64) error

	VectorSearch(queryVector []float32, limit int, includeSnippet bool) ([]SearchResult, error)
	FTSSearch(query string, limit int, includeSnippet bool) ([]SearchResult, error)

	DBPath() string
	DBSize() (int64, error)

	Close() error
}

// SQLiteStore implements Store backed by SQLite + sqlite-vec.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path and initializes
// the schema.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Init(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, path: dbPath}, nil
}

func (s *SQLiteStore) DBPath() string { return s.path }

func (s *SQLiteStore) DBSize() (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetOrCreateCodebase is idempotent: repeated calls with the same root_path
// return the same id.
func (s *SQLiteStore) GetOrCreateCodebase(rootPath string) (int64, error) {
	var id int64
	err := s.db.QueryRow("SELECT id FROM codebases WHERE root_path = ?", rootPath).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("lookup codebase: %w", err)
	}

	name := filepath.Base(rootPath)
	res, err := s.db.Exec("INSERT INTO codebases (root_path, name) VALUES (?, ?)", rootPath, name)
	if err != nil {
		return 0, fmt.Errorf("create codebase: %w", err)
	}
	return res.LastInsertId()
}

// TouchCodebase updates a codebase's indexed_at timestamp to now.
func (s *SQLiteStore) TouchCodebase(codebaseID int64) error {
	_, err := s.db.Exec("UPDATE codebases SET indexed_at = ? WHERE id = ?", time.Now().UTC(), codebaseID)
	if err != nil {
		return fmt.Errorf("touch codebase: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListCodebases() ([]Codebase, error) {
	rows, err := s.db.Query("SELECT id, root_path, name, indexed_at FROM codebases ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list codebases: %w", err)
	}
	defer rows.Close()

	var out []Codebase
	for rows.Next() {
		var c Codebase
		var indexedAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.RootPath, &c.Name, &indexedAt); err != nil {
			return nil, err
		}
		if indexedAt.Valid {
			c.IndexedAt = indexedAt.Time
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetFileHash(codebaseID int64, filePath string) (string, error) {
	var hash string
	err := s.db.QueryRow(
		"SELECT file_hash FROM indexed_files WHERE codebase_id = ? AND file_path = ?",
		codebaseID, filePath,
	).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get file hash: %w", err)
	}
	return hash, nil
}

func (s *SQLiteStore) ListFiles(codebaseID int64) ([]FileSummary, error) {
	query := "SELECT codebase_id, file_path, file_hash, chunk_count, indexed_at FROM indexed_files"
	args := []any{}
	if codebaseID > 0 {
		query += " WHERE codebase_id = ?"
		args = append(args, codebaseID)
	}
	query += " ORDER BY file_path"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var out []FileSummary
	for rows.Next() {
		var f FileSummary
		var hash string
		if err := rows.Scan(&f.CodebaseID, &f.FilePath, &hash, &f.ChunkCount, &f.IndexedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// BatchUpsertAllFileChunks persists, in one transaction, the complete set of
// chunks for each given file: existing chunks for that (codebase, path) are
// deleted, the new chunks are inserted as new rows with no embedding (which
// drops any prior embedding tied to the old rows; a chunk_key conflict also
// clears embedding and embedding_model), and the indexed_files row is
// upserted with the new hash, chunk count, and timestamp.
func (s *SQLiteStore) BatchUpsertAllFileChunks(codebaseID int64, files []FileChunks) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	delStmt, err := tx.Prepare("DELETE FROM chunks WHERE codebase_id = ? AND file_path = ?")
	if err != nil {
		return err
	}
	defer delStmt.Close()

	insStmt, err := tx.Prepare(`
		INSERT INTO chunks (
			codebase_id, file_path, chunk_key, language, kind, name, signature,
			snippet, start_line, end_line, file_hash, indexed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chunk_key) DO UPDATE SET
			language = excluded.language,
			kind = excluded.kind,
			name = excluded.name,
			signature = excluded.signature,
			snippet = excluded.snippet,
			file_hash = excluded.file_hash,
			indexed_at = excluded.indexed_at,
			embedding = NULL,
			embedding_model = ''
	`)
	if err != nil {
		return err
	}
	defer insStmt.Close()

	upsertFileStmt, err := tx.Prepare(`
		INSERT INTO indexed_files (codebase_id, file_path, file_hash, chunk_count, indexed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(codebase_id, file_path) DO UPDATE SET
			file_hash = excluded.file_hash,
			chunk_count = excluded.chunk_count,
			indexed_at = excluded.indexed_at
	`)
	if err != nil {
		return err
	}
	defer upsertFileStmt.Close()

	now := time.Now().UTC()
	for _, f := range files {
		if _, err := delStmt.Exec(codebaseID, f.FilePath); err != nil {
			return fmt.Errorf("delete chunks for %s: %w", f.FilePath, err)
		}

		for _, c := range f.Chunks {
			key := ChunkKey(f.FilePath, c.StartLine, c.EndLine)
			if _, err := insStmt.Exec(
				codebaseID, f.FilePath, key, f.Language, c.Kind, c.Name, c.Signature,
				c.Snippet, c.StartLine, c.EndLine, f.FileHash, now,
			); err != nil {
				return fmt.Errorf("insert chunk %s: %w", key, err)
			}
		}

		if _, err := upsertFileStmt.Exec(codebaseID, f.FilePath, f.FileHash, len(f.Chunks), now); err != nil {
			return fmt.Errorf("upsert indexed_files for %s: %w", f.FilePath, err)
		}
	}

	return tx.Commit()
}

// RemoveStaleFiles deletes, in one transaction, every stored file (and its
// chunks, via ON DELETE CASCADE semantics applied manually since chunks
// reference codebase_id/file_path rather than a file row id) not present in
// activeFiles. Returns the number of files removed.
func (s *SQLiteStore) RemoveStaleFiles(codebaseID int64, activeFiles map[string]bool) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query("SELECT file_path FROM indexed_files WHERE codebase_id = ?", codebaseID)
	if err != nil {
		return 0, fmt.Errorf("list stored files: %w", err)
	}
	var stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return 0, err
		}
		if !activeFiles[p] {
			stale = append(stale, p)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	delChunks, err := tx.Prepare("DELETE FROM chunks WHERE codebase_id = ? AND file_path = ?")
	if err != nil {
		return 0, err
	}
	defer delChunks.Close()

	delFile, err := tx.Prepare("DELETE FROM indexed_files WHERE codebase_id = ? AND file_path = ?")
	if err != nil {
		return 0, err
	}
	defer delFile.Close()

	for _, p := range stale {
		if _, err := delChunks.Exec(codebaseID, p); err != nil {
			return 0, fmt.Errorf("delete chunks for %s: %w", p, err)
		}
		if _, err := delFile.Exec(codebaseID, p); err != nil {
			return 0, fmt.Errorf("delete indexed_files for %s: %w", p, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(stale), nil
}

// GetStaleEmbeddings returns chunks in the codebase whose embedding is
// absent or was produced by a model other than model.
func (s *SQLiteStore) GetStaleEmbeddings(codebaseID int64, model string, limit int) ([]StaleEmbedding, error) {
	query := `
		SELECT chunk_key, name, signature, file_path, kind, snippet
		FROM chunks
		WHERE codebase_id = ? AND (embedding IS NULL OR embedding_model != ?)
	`
	args := []any{codebaseID, model}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("get stale embeddings: %w", err)
	}
	defer rows.Close()

	var out []StaleEmbedding
	for rows.Next() {
		var e StaleEmbedding
		if err := rows.Scan(&e.ChunkKey, &e.Name, &e.Signature, &e.FilePath, &e.Kind, &e.Snippet); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// BatchUpsertEmbeddings stores each entry's vector, quantized to 8-bit
// resolution, keyed by chunk key, in one transaction.
func (s *SQLiteStore) BatchUpsertEmbeddings(entries []EmbeddingUpsert) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	lookupStmt, err := tx.Prepare("SELECT id FROM chunks WHERE chunk_key = ?")
	if err != nil {
		return err
	}
	defer lookupStmt.Close()

	markStmt, err := tx.Prepare("UPDATE chunks SET embedding = ?, embedding_model = ? WHERE chunk_key = ?")
	if err != nil {
		return err
	}
	defer markStmt.Close()

	delVecStmt, err := tx.Prepare("DELETE FROM vec_chunks WHERE chunk_id = ?")
	if err != nil {
		return err
	}
	defer delVecStmt.Close()

	insVecStmt, err := tx.Prepare("INSERT INTO vec_chunks (chunk_id, embedding) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer insVecStmt.Close()

	for _, e := range entries {
		var chunkID int64
		if err := lookupStmt.QueryRow(e.ChunkKey).Scan(&chunkID); err != nil {
			if err == sql.ErrNoRows {
				continue // chunk was removed/re-chunked since the embed batch was built
			}
			return fmt.Errorf("lookup chunk %s: %w", e.ChunkKey, err)
		}

		quantized := quantize8(e.Vector)
		blob, err := sqlite_vec.SerializeFloat32(quantized)
		if err != nil {
			return fmt.Errorf("serialize embedding for %s: %w", e.ChunkKey, err)
		}

		if _, err := delVecStmt.Exec(chunkID); err != nil {
			return fmt.Errorf("clear vector row for %s: %w", e.ChunkKey, err)
		}
		if _, err := insVecStmt.Exec(chunkID, blob); err != nil {
			return fmt.Errorf("insert vector row for %s: %w", e.ChunkKey, err)
		}
		if _, err := markStmt.Exec(blob, e.Model, e.ChunkKey); err != nil {
			return fmt.Errorf("mark embedding for %s: %w", e.ChunkKey, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) CountEmbeddedChunks() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM chunks WHERE embedding IS NOT NULL").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count embedded chunks: %w", err)
	}
	return n, nil
}

// quantize8 rounds each component to one of 255 evenly spaced levels spanning
// the vector's own [-maxAbs, maxAbs] range, so the stored vector keeps its
// 8-bit resolution while staying plain float32 for SerializeFloat32.
func quantize8(v []float32) []float32 {
	var maxAbs float32
	for _, x := range v {
		if a := abs32(x); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		return v
	}
	scale := float32(127) / maxAbs
	out := make([]float32, len(v))
	for i, x := range v {
		level := roundf32(x * scale)
		if level > 127 {
			level = 127
		}
		if level < -127 {
			level = -127
		}
		out[i] = level / scale
	}
	return out
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func roundf32(x float32) float32 {
	if x < 0 {
		return -roundf32(-x)
	}
	return float32(int64(x + 0.5))
}
