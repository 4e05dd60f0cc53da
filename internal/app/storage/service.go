/*
Package storage provides the persistence backends for the account snapshot.

Each backend stores the whole user table as one JSON document: in process
memory, in a local file, in a single PostgreSQL row, or in one S3 object.
*/
package storage

import (
	"context"
	"fmt"

	"useracct/internal/app/account"
	"useracct/internal/app/db"
)

// Supported backend names.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// ServiceConfig holds the configuration required to open a snapshot store.
type ServiceConfig struct {
	Backend string

	// File backend
	SnapshotPath string

	// Postgres backend
	DatabaseDSN string

	// S3 backend
	S3 S3Config
}

// SnapshotStore is an account.Store that owns resources released by Close.
type SnapshotStore interface {
	account.Store

	// Close releases connections or handles held by the store.
	Close() error
}

// NewSnapshotStore is the factory function for SnapshotStore.
// It opens the backend named by cfg.Backend; an empty name selects the file backend.
func NewSnapshotStore(ctx context.Context, cfg ServiceConfig) (SnapshotStore, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil

	case BackendFile, "":
		return NewFileStore(cfg.SnapshotPath), nil

	case BackendPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(pool), nil

	case BackendS3:
		store, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
