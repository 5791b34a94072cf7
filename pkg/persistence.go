package pkg

import (
	"github.com/praxima/cache_engine/internal/storage"
	"github.com/praxima/cache_engine/types"
)

// Sentinel errors surfaced by the snapshot store.
var (
	ErrSnapshotNotFound  = storage.ErrSnapshotNotFound
	ErrSnapshotIntegrity = storage.ErrSnapshotIntegrity
)

// SnapshotStore persists exported cache snapshots on disk, keyed by name.
// Snapshots are checksummed on write and verified on read.
type SnapshotStore struct {
	inner *storage.Store
}

// OpenSnapshotStore initializes or opens a snapshot store at the given path.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	inner, err := storage.Open(path, storage.Options{})
	if err != nil {
		return nil, err
	}
	return &SnapshotStore{inner: inner}, nil
}

// Close closes the underlying database.
func (store *SnapshotStore) Close() error {
	return store.inner.Close()
}

// Delete removes the snapshot stored under name, if any.
func (store *SnapshotStore) Delete(name string) error {
	return store.inner.Delete(name)
}

// Names lists the stored snapshot names.
func (store *SnapshotStore) Names() ([]string, error) {
	return store.inner.Names()
}

// SaveSnapshot exports the cache and persists the snapshot under name.
func SaveSnapshot[T any](store *SnapshotStore, name string, cache ICache[T]) error {
	snapshot, err := cache.Export()
	if err != nil {
		return err
	}
	return store.inner.Save(name, snapshot)
}

// LoadSnapshot reads the snapshot stored under name and imports it into the
// cache, replacing its state. The cache is left untouched on failure.
func LoadSnapshot[T any](store *SnapshotStore, name string, cache ICache[T]) error {
	var snapshot types.Snapshot[T]
	if err := store.inner.Load(name, &snapshot); err != nil {
		return err
	}
	return cache.Import(&snapshot)
}
