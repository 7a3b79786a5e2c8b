package bookmarks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLite stores the id list as a single row in a key-value table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (and if necessary creates) a SQLite-backed store at path.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS bookmarks (
			key TEXT PRIMARY KEY,
			ids TEXT NOT NULL
		)`,
	); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bookmarks table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Load implements Store.
func (s *SQLite) Load(ctx context.Context) ([]int, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT ids FROM bookmarks WHERE key = ?`, Key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("failed to parse stored bookmarks: %w", err)
	}
	return ids, nil
}

// Save implements Store.
func (s *SQLite) Save(ctx context.Context, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark ids: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO bookmarks (key, ids) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET ids = excluded.ids`,
		Key, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}
