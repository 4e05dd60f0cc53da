package account

import "context"

// Store loads and persists the whole user table as one snapshot.
//
// Implementations guarantee only that a single Load or Save is internally
// consistent. Nothing serializes a Load/Save pair, so the last writer wins.
type Store interface {
	// Load returns the current snapshot. A store holding no snapshot yet returns an empty one.
	Load(ctx context.Context) (Snapshot, error)

	// Save replaces the persisted snapshot with snap.
	Save(ctx context.Context, snap Snapshot) error
}
