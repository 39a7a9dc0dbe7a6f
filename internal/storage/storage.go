// Package storage provides the key/value persistence adapters the stores
// write their snapshots to. Every adapter stores opaque JSON documents under
// a record key such as "client-storage".
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/diewo77/go-devis/internal/config"
)

// ErrEmptyKey is returned when a record key is blank.
var ErrEmptyKey = errors.New("storage: empty key")

// Adapter is a durable key/value store.
type Adapter interface {
	// Load returns the document stored under key. ok is false when the key has
	// never been written.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Save replaces the document stored under key.
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}

// Open returns the adapter selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (Adapter, error) {
	var (
		a   Adapter
		err error
	)
	switch cfg.Driver {
	case config.DriverMemory:
		a = NewMemoryAdapter()
	case config.DriverFile:
		a, err = NewFileAdapter(cfg.Dir)
	case config.DriverSQLite:
		a, err = OpenSQLite(cfg.SQLitePath())
	case config.DriverPostgres:
		a, err = OpenPostgres(cfg.DSN)
	case config.DriverPgx:
		a, err = OpenPgx(ctx, cfg.DSN)
	case config.DriverMySQL:
		a, err = OpenMySQL(ctx, cfg.DSN)
	case config.DriverS3:
		a, err = OpenS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("storage %s: %w", cfg.Driver, err)
	}
	log.Info("storage opened", "driver", cfg.Driver)
	return a, nil
}

func checkKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}
