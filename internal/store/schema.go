package store

import (
	"database/sql"
	"fmt"
)

// embeddingDims is the fixed vector width for the global vector index. The
// embedder contract fixes dimensionality per model; this module
// targets one embedding model at a time, so one dimension suffices.
const embeddingDims = 384

const baseDDL = `
PRAGMA journal_mode=WAL;
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS codebases (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    root_path  TEXT NOT NULL UNIQUE,
    name       TEXT NOT NULL,
    indexed_at DATETIME
);

CREATE TABLE IF NOT EXISTS chunks (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    codebase_id     INTEGER NOT NULL REFERENCES codebases(id) ON DELETE CASCADE,
    file_path       TEXT NOT NULL,
    chunk_key       TEXT NOT NULL UNIQUE,
    language        TEXT NOT NULL DEFAULT '',
    kind            TEXT NOT NULL DEFAULT '',
    name            TEXT NOT NULL DEFAULT '',
    signature       TEXT NOT NULL DEFAULT '',
    snippet         TEXT NOT NULL DEFAULT '',
    start_line      INTEGER NOT NULL,
    end_line        INTEGER NOT NULL,
    file_hash       TEXT NOT NULL,
    indexed_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    embedding       BLOB,
    embedding_model TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_chunks_codebase_file ON chunks(codebase_id, file_path);

CREATE TABLE IF NOT EXISTS indexed_files (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    codebase_id INTEGER NOT NULL REFERENCES codebases(id) ON DELETE CASCADE,
    file_path   TEXT NOT NULL,
    file_hash   TEXT NOT NULL,
    chunk_count INTEGER NOT NULL DEFAULT 0,
    indexed_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(codebase_id, file_path)
);
`

// vecTableDDL creates the single global vector index over every codebase's
// chunks. sqlite-vec's vec0 module provides the cosine-distance vector
// column; it stores float32 values, which BatchUpsertEmbeddings rounds to
// 8-bit resolution with quantize8 before inserting.
const vecTableDDL = `
CREATE VIRTUAL TABLE IF NOT EXISTS vec_chunks USING vec0(
    chunk_id INTEGER PRIMARY KEY,
    embedding FLOAT[%d] distance_metric=cosine
);
`

// Init creates the non-per-codebase schema if it doesn't exist.
func Init(db *sql.DB) error {
	if _, err := db.Exec(baseDDL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf(vecTableDDL, embeddingDims)); err != nil {
		return fmt.Errorf("init vector index: %w", err)
	}
	return nil
}

// ftsTableName returns the per-codebase full-text-search table name.
func ftsTableName(codebaseID int64) string {
	return fmt.Sprintf("fts_%d", codebaseID)
}
