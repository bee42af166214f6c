package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore keeps flags in a local SQLite database.
type SQLiteStore struct {
	sqlStore
	path string
}

// NewSQLiteStore opens (creating if needed) the database at the DSN path
// and applies the schema.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	o := applyOpts(opts)
	if o.DSN == "" {
		return nil, fmt.Errorf("sqlite store: DSN not set")
	}

	path := strings.TrimPrefix(o.DSN, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", o.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// One writer keeps :memory: databases on a single connection.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, sqliteMigrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying sqlite schema: %w", err)
	}
	o.Logger.Debug("sqlite store ready", zap.String("path", path))

	return &SQLiteStore{
		sqlStore: sqlStore{db: db, log: o.Logger, now: time.Now},
		path:     path,
	}, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.path }
