package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"useracct/internal/app/account"
	"useracct/internal/pkg/logx"
)

// FileStore persists the snapshot as a JSON file.
//
// Save writes a sibling temporary file and renames it over the target, so a
// concurrent Load reads either the old or the new snapshot, never a partial one.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot file. A missing file is created holding an empty table.
func (f *FileStore) Load(ctx context.Context) (account.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		empty := account.Snapshot{}
		if err := f.Save(ctx, empty); err != nil {
			return nil, err
		}
		logx.Debug("Created empty snapshot file", "path", f.path)
		return empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	return account.DecodeSnapshot(data)
}

func (f *FileStore) Save(_ context.Context, snap account.Snapshot) error {
	data, err := account.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(f.path), "."+filepath.Base(f.path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace snapshot file: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
