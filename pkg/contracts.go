package pkg

import "github.com/praxima/cache_engine/types"

// ICache defines the full public operation set of the cache engine.
// Set stores a value under the configured default TTL; SetWithTTL takes an explicit TTL in seconds, with types.PersistentTTL marking a never-expiring entry.
// Get returns the value and a boolean indicating a hit; misses and lazily expired entries return the zero value and false.
// Has performs the same expiration check as Get without touching access bookkeeping or hit/miss counters.
// TTL returns the remaining lifetime in whole seconds, types.TTLPersistent for persistent entries, or types.TTLNotFound for absent or expired keys.
// Scan returns up to count keys matching a glob pattern where `*` matches any run of characters and `?` matches exactly one.
// GetBatch and SetBatch apply Get/Set per key inside a single critical section; SetBatch is not transactional.
// Increment and Decrement adjust an integer interpretation of the stored value, treating missing or non-numeric values as 0.
// Expire rebases an entry's TTL from now; Persist removes its expiration.
// Export and Import serialize and replace the full cache state; Import is atomic and leaves the store untouched on failure.
// Destroy stops the background sweep and clears all entries; the instance must not be reused afterwards.
type ICache[T any] interface {
	Set(key string, value T) error
	SetWithTTL(key string, value T, ttlSeconds int64) error
	Get(key string) (T, bool)
	Delete(key string)
	Has(key string) bool
	TTL(key string) int64
	Clear()
	Keys() []string
	Len() int
	Scan(pattern string, count int) ([]string, error)
	GetBatch(keys []string) map[string]T
	SetBatch(values map[string]T) error
	SetBatchWithTTL(entries map[string]types.BatchEntry[T]) error
	Increment(key string, delta int64) (int64, error)
	Decrement(key string, delta int64) (int64, error)
	Expire(key string, ttlSeconds int64) bool
	Persist(key string) bool
	GetMetrics() types.Metrics
	GetStats() types.Stats
	Export() (*types.Snapshot[T], error)
	Import(snapshot *types.Snapshot[T]) error
	Destroy()
}
