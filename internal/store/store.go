// Package store persists rounds keyed by their code.
package store

import (
	"context"
	"fmt"
	"time"

	"wordrush/internal/config"
	"wordrush/internal/domain"
)

// Store defines the persistence interface for rounds.
// Get returns domain.ErrGameNotFound when no round has the code.
type Store interface {
	Get(ctx context.Context, code string) (*domain.Round, error)
	Put(ctx context.Context, round *domain.Round) error
	Delete(ctx context.Context, code string) error

	// Count returns the number of stored rounds
	Count(ctx context.Context) (int, error)

	// CreatedBefore returns the codes of rounds created before cutoff
	CreatedBefore(ctx context.Context, cutoff time.Time) ([]string, error)

	Close() error
}

// Open creates the store selected by cfg.Backend
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(cfg.Dir)
	case "sqlite":
		return NewSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
