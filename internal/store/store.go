// Package store persists completed fact-check records. Two backends
// implement the same interface: an in-memory log for development and a
// SQLite database for durable history.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/veritaslab/veritas/internal/model"
)

// ErrNotFound is returned when a record id does not exist
var ErrNotFound = errors.New("record not found")

// Store is the append-only result log. Add assigns a monotonically
// increasing id; records are never updated after insertion.
type Store interface {
	// Add appends a record and sets its ID
	Add(ctx context.Context, rec *model.Record) error

	// List returns records newest-first, skipping offset and returning
	// at most limit
	List(ctx context.Context, limit, offset int) ([]model.Record, error)

	// Get returns one record by id, or ErrNotFound
	Get(ctx context.Context, id int64) (*model.Record, error)

	// Stats aggregates the whole log
	Stats(ctx context.Context) (model.Stats, error)

	// Clear removes all records
	Clear(ctx context.Context) error

	Close() error
}

// New creates a store from configuration
func New(cfg model.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s (supported: memory, sqlite)", cfg.Backend)
	}
}
