// ============================================================================
// knuth - Math Typesetting Service
// ============================================================================
//
// Package:     store
// Description: SQLite-backed persistent cache of render results
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/knuth/foundation/core/error"
)

// ErrNotFound is returned by Get when no render is stored under the key
var ErrNotFound = mdwerror.New("render not found").WithCode(mdwerror.CodeNotFound)

// Render is a stored render result
type Render struct {
	Key       string
	Input     string
	Style     string
	HTML      string
	TreeJSON  []byte
	CreatedAt time.Time
	Hits      int64
}

// Config holds SQLite store configuration
type Config struct {
	Path string
}

// DefaultConfig returns default SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/renders.db",
	}
}

// SQLiteStore persists render results in a single SQLite table
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// New opens (and if needed creates) the store at cfg.Path
func New(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		cfg = DefaultConfig()
	}

	// Ensure directory exists
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, dbError(err, "failed to create directory", "store.New")
		}
	}

	// Open database with WAL mode for better concurrent access
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, dbError(err, "failed to open database", "store.New")
	}

	s := &SQLiteStore{db: db, path: cfg.Path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema", "store.New")
	}
	return s, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS renders (
		key TEXT PRIMARY KEY,
		input TEXT NOT NULL,
		style TEXT NOT NULL,
		html TEXT NOT NULL DEFAULT '',
		tree_json BLOB NOT NULL,
		created_at INTEGER NOT NULL,
		hits INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_renders_created ON renders(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the render stored under key and counts the hit
func (s *SQLiteStore) Get(ctx context.Context, key string) (*Render, error) {
	r := &Render{Key: key}
	var created int64
	err := s.db.QueryRowContext(ctx, `
		UPDATE renders SET hits = hits + 1 WHERE key = ?
		RETURNING input, style, html, tree_json, created_at, hits
	`, key).Scan(&r.Input, &r.Style, &r.HTML, &r.TreeJSON, &created, &r.Hits)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dbError(err, "failed to read render", "store.Get")
	}
	r.CreatedAt = time.Unix(0, created)
	return r, nil
}

// Put stores r, replacing an existing entry with the same key. The hit
// counter restarts at zero.
func (s *SQLiteStore) Put(ctx context.Context, r *Render) error {
	if r.Key == "" {
		return mdwerror.New("render key is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("store.Put")
	}
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO renders (key, input, style, html, tree_json, created_at, hits)
		VALUES (?, ?, ?, ?, ?, ?, 0)
	`, r.Key, r.Input, r.Style, r.HTML, r.TreeJSON, created.UnixNano())
	if err != nil {
		return dbError(err, "failed to store render", "store.Put")
	}
	return nil
}

// Delete removes the render stored under key
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM renders WHERE key = ?`, key); err != nil {
		return dbError(err, "failed to delete render", "store.Delete")
	}
	return nil
}

// Count returns the number of stored renders
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM renders`).Scan(&count); err != nil {
		return 0, dbError(err, "failed to count renders", "store.Count")
	}
	return count, nil
}

// Prune removes renders created before cutoff and returns how many were
// removed
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM renders WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, dbError(err, "failed to prune renders", "store.Prune")
	}
	return res.RowsAffected()
}

// Statistics returns store statistics
func (s *SQLiteStore) Statistics(ctx context.Context) (map[string]interface{}, error) {
	var total, hits sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), SUM(hits) FROM renders`).Scan(&total, &hits)
	if err != nil {
		return nil, dbError(err, "failed to read statistics", "store.Statistics")
	}
	return map[string]interface{}{
		"path":        s.path,
		"renders":     total.Int64,
		"stored_hits": hits.Int64,
	}, nil
}

// Ping checks the database connection
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func dbError(err error, message, operation string) error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation(operation)
}
