package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/praxima/cache_engine/internal/utils"
)

var (
	// ErrSnapshotNotFound is returned when no snapshot exists under the name.
	ErrSnapshotNotFound = errors.New("storage: snapshot not found")
	// ErrSnapshotIntegrity is returned when a persisted snapshot fails its
	// checksum, indicating corruption.
	ErrSnapshotIntegrity = errors.New("storage: snapshot checksum mismatch")
)

// Store persists exported cache snapshots in a Bolt bucket, keyed by name.
// It is safe for concurrent use by multiple goroutines.
type Store struct {
	db     *bolt.DB
	bucket []byte
	mu     sync.RWMutex
}

type Options struct {
	// Bucket is the name of the Bolt bucket to use.
	Bucket string
}

// Open initializes or opens a snapshot store at the given path.
func Open(path string, opts Options) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	bucket := []byte("snapshots")
	if opts.Bucket != "" {
		bucket = []byte(opts.Bucket)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, bucket: bucket}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save serializes the snapshot under name, prefixed with an xxHash64 digest.
// Layout: 8 bytes big endian checksum || JSON payload.
func (s *Store) Save(name string, snapshot any) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("storage: encoding snapshot %q: %w", name, err)
	}

	buf := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint64(buf[:8], utils.Checksum(payload))
	copy(buf[8:], payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(name), buf)
	})
}

// Load reads the snapshot stored under name into dst, verifying the
// checksum first.
func (s *Store) Load(name string, dst any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get([]byte(name))
		if raw == nil {
			return ErrSnapshotNotFound
		}
		if len(raw) < 8 {
			return ErrSnapshotIntegrity
		}
		if binary.BigEndian.Uint64(raw[:8]) != utils.Checksum(raw[8:]) {
			return ErrSnapshotIntegrity
		}
		payload = append([]byte(nil), raw[8:]...)
		return nil
	}); err != nil {
		return err
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("storage: decoding snapshot %q: %w", name, err)
	}
	return nil
}

// Delete removes the snapshot stored under name, if any.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(name))
	})
}

// Names lists the stored snapshot names.
func (s *Store) Names() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}
