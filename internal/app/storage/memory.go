package storage

import (
	"context"
	"sync"

	"useracct/internal/app/account"
)

// MemoryStore keeps the snapshot in process memory. Load and Save copy the
// snapshot, so callers never share a map with the store or with each other.
type MemoryStore struct {
	mu   sync.RWMutex
	snap account.Snapshot
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snap: account.Snapshot{}}
}

func (m *MemoryStore) Load(_ context.Context) (account.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, snap account.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap.Clone()
	return nil
}

func (m *MemoryStore) Close() error { return nil }
