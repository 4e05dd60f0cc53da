package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"useracct/internal/app/account"
)

// snapshotRowID is the primary key of the single row holding the snapshot.
const snapshotRowID = 1

const (
	selectSnapshotSQL = `SELECT data FROM account_snapshots WHERE id = $1`

	upsertSnapshotSQL = `
INSERT INTO account_snapshots (id, data, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO UPDATE
SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
)

// PostgresStore persists the snapshot as a JSONB document in one table row.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a store using pool. The store takes ownership of
// the pool and closes it on Close.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Load(ctx context.Context) (account.Snapshot, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, selectSnapshotSQL, snapshotRowID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return account.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}

	return account.DecodeSnapshot(data)
}

func (p *PostgresStore) Save(ctx context.Context, snap account.Snapshot) error {
	data, err := account.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	if _, err := p.pool.Exec(ctx, upsertSnapshotSQL, snapshotRowID, json.RawMessage(data)); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}
