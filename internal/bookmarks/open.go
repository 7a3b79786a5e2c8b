package bookmarks

import (
	"context"
	"strings"
)

// Open selects a backend from the DSN:
//
//	""                      in-memory (nothing survives the process)
//	"memory"                in-memory
//	"postgres://..."        Postgres key-value row
//	"sqlite://path.db"      SQLite key-value row
//	anything else           JSON file at that path
func Open(ctx context.Context, dsn string) (Store, error) {
	switch {
	case dsn == "" || dsn == "memory":
		return NewMemory(), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPostgres(ctx, dsn)
	case strings.HasPrefix(dsn, "sqlite://"):
		return NewSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"))
	default:
		return NewFile(dsn)
	}
}
