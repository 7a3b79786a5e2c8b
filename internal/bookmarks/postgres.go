package bookmarks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores the id list as a single row in a key-value table, for
// deployments that already run a shared database.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the database and ensures the bookmarks table exists.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS bookmarks (
			key TEXT PRIMARY KEY,
			ids JSONB NOT NULL
		)`,
	); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create bookmarks table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Load implements Store.
func (p *Postgres) Load(ctx context.Context) ([]int, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx,
		`SELECT ids FROM bookmarks WHERE key = $1`, Key,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse stored bookmarks: %w", err)
	}
	return ids, nil
}

// Save implements Store.
func (p *Postgres) Save(ctx context.Context, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark ids: %w", err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO bookmarks (key, ids) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET ids = EXCLUDED.ids`,
		Key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}

// Close implements Store.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
