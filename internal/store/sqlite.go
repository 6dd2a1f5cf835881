// internal/store/sqlite.go
//
// SQLite-backed round Store.
// Persists the current round per session as a JSON blob so an in-progress
// round survives a server restart. This is not a game-history archive: each
// row is overwritten in place as the round advances.
//
// Notes:
//   - Opens the database with busy timeout and WAL journaling.
//   - Schema creation is idempotent (CREATE TABLE IF NOT EXISTS).

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"phonetle/internal/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS rounds (
    id         TEXT PRIMARY KEY,
    state      TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

// SQLite is a durable Store implementation.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (and creates if missing) a SQLite database file and
// ensures the rounds table exists.
func NewSQLite(dsn string) (*SQLite, error) {
	// Ensure directory exists for ./data/app.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create rounds table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Save upserts the round's serialized state.
func (s *SQLite) Save(ctx context.Context, r *game.Round) error {
	blob, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal round %s: %w", r.ID, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO rounds (id, state, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET state=excluded.state, updated_at=excluded.updated_at`,
		r.ID, string(blob), now)
	return err
}

// Get loads and deserializes a round by ID.
func (s *SQLite) Get(ctx context.Context, id string) (*game.Round, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM rounds WHERE id=?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var r game.Round
	if err := json.Unmarshal([]byte(blob), &r); err != nil {
		return nil, fmt.Errorf("unmarshal round %s: %w", id, err)
	}
	return &r, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }
