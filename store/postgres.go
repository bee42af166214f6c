package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

const (
	postgresMaxOpenConns    = 10
	postgresMaxIdleConns    = 5
	postgresConnMaxLifetime = 30 * time.Minute
)

// PostgresStore keeps flags in a shared Postgres database, so a server
// can flip force_reshow for a feature.
type PostgresStore struct {
	sqlStore
}

// NewPostgresStore connects using the DSN option and applies the schema.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	o := applyOpts(opts)
	if o.DSN == "" {
		return nil, fmt.Errorf("postgres store: DSN not set")
	}

	db, err := sql.Open("postgres", o.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	db.SetMaxOpenConns(postgresMaxOpenConns)
	db.SetMaxIdleConns(postgresMaxIdleConns)
	db.SetConnMaxLifetime(postgresConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, postgresMigrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying postgres schema: %w", err)
	}
	o.Logger.Debug("postgres store ready")

	return &PostgresStore{sqlStore: sqlStore{db: db, log: o.Logger, numbered: true, now: time.Now}}, nil
}
