// Package store provides completion flag backends for tours.
//
// Every backend implements tour.CompletionStore. The SQL backends also
// carry a force-reshow override that a server can set to bring a finished
// tour back.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dylan/spotlight/tour"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown store driver")

// Record is one feature's persisted state.
type Record struct {
	Feature     tour.Feature
	Completed   bool
	ForceReshow bool
	UpdatedAt   time.Time
}

// Store is the full surface of the bundled backends.
type Store interface {
	tour.CompletionStore
	tour.ReshowPolicy
	tour.Resetter
	// RequestReshow sets the force-reshow override for f.
	RequestReshow(ctx context.Context, f tour.Feature) error
	List(ctx context.Context) ([]Record, error)
	Close() error
}

// Opts configures a backend.
type Opts struct {
	DSN    string // database DSN or file path
	Logger *zap.Logger
}

// Option mutates Opts.
type Option func(*Opts)

// WithDSN sets the database DSN (or the file path for the file driver).
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithLogger sets the logger used for backend diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *Opts) { o.Logger = l }
}

func applyOpts(opts []Option) Opts {
	var o Opts
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open builds the backend named by driver.
func Open(driver string, opts ...Option) (Store, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemoryStore(), nil
	case DriverFile:
		return NewFileStore(opts...)
	case DriverSQLite:
		return NewSQLiteStore(opts...)
	case DriverPostgres:
		return NewPostgresStore(opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
