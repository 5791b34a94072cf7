package src

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/praxima/cache_engine/internal/utils"
	"github.com/praxima/cache_engine/types"
)

var (
	// ErrClosed is returned by operations invoked after Destroy.
	ErrClosed = errors.New("cache is closed")
	// ErrInvalidConfig is returned when a configuration fails validation.
	ErrInvalidConfig = errors.New("invalid cache configuration")
	// ErrNotNumeric is returned by Increment when the cache's value type
	// cannot hold an integer result.
	ErrNotNumeric = errors.New("value type cannot hold a numeric result")
)

// EntryStore is the authoritative key-to-entry table. A single mutex guards
// the entry map and every metrics counter together, so each public operation
// is indivisible with respect to both.
type EntryStore[T any] struct {
	sync.RWMutex
	entries map[string]*cacheEntry[T]
	config  types.Config
	policy  IEvictionPolicy[T]

	hits         uint64
	misses       uint64
	evicted      uint64
	expiredTotal uint64
	memoryUsage  int64
	lastCleanup  time.Time
	nextSeq      uint64

	cleanupInterval time.Duration
	ctx             context.Context
	cancel          context.CancelFunc
	logger          *slog.Logger
	now             func() time.Time
	isClosed        bool
}

// ValidateConfig checks the construction-time invariants of a configuration.
func ValidateConfig(config types.Config) error {
	if config.MaxSize <= 0 {
		return fmt.Errorf("%w: maxSize must be positive, got %d", ErrInvalidConfig, config.MaxSize)
	}
	if config.DefaultTTLSeconds < 0 && config.DefaultTTLSeconds != types.PersistentTTL {
		return fmt.Errorf("%w: defaultTTL must be non-negative or %d, got %d",
			ErrInvalidConfig, types.PersistentTTL, config.DefaultTTLSeconds)
	}
	if !config.Strategy.Valid() {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, config.Strategy)
	}
	if config.CleanupIntervalSeconds <= 0 {
		return fmt.Errorf("%w: cleanupInterval must be positive, got %d",
			ErrInvalidConfig, config.CleanupIntervalSeconds)
	}
	return nil
}

// NewEntryStore creates a store and starts its background sweep. The sweep
// stops when ctx is cancelled or Destroy is called.
func NewEntryStore[T any](ctx context.Context, config types.Config, logger *slog.Logger) (*EntryStore[T], error) {
	store, err := newEntryStore[T](ctx, config, logger)
	if err != nil {
		return nil, err
	}
	go store.runSweeper()
	return store, nil
}

func newEntryStore[T any](ctx context.Context, config types.Config, logger *slog.Logger) (*EntryStore[T], error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	store := &EntryStore[T]{}
	store.entries = make(map[string]*cacheEntry[T])
	store.config = config
	store.policy = NewEvictionPolicy[T](config.Strategy)
	store.cleanupInterval = time.Duration(config.CleanupIntervalSeconds) * time.Second
	store.ctx, store.cancel = context.WithCancel(ctx)
	store.logger = logger
	store.now = time.Now

	return store, nil
}

// Set stores key with the configured default TTL, replacing any existing
// entry atomically.
func (store *EntryStore[T]) Set(key string, value T) error {
	return store.SetWithTTL(key, value, store.config.DefaultTTLSeconds)
}

// SetWithTTL stores key with an explicit TTL in seconds. Any negative TTL is
// normalized to persistent. If the store is at capacity and key is new,
// eviction runs before the insert.
func (store *EntryStore[T]) SetWithTTL(key string, value T, ttlSeconds int64) error {
	if ttlSeconds < 0 {
		ttlSeconds = types.PersistentTTL
	}

	store.Lock()
	defer store.Unlock()
	if store.isClosed {
		return fmt.Errorf("EntryStore.SetWithTTL ERROR: %w", ErrClosed)
	}

	store.insertLocked(key, value, ttlSeconds)
	return nil
}

// Get returns the value for key and records a hit, or records a miss when
// the key is absent or expired. An expired entry is deleted on discovery.
func (store *EntryStore[T]) Get(key string) (T, bool) {
	var zero T

	store.Lock()
	defer store.Unlock()
	if store.isClosed {
		return zero, false
	}

	now := store.now()
	entry, ok := store.entries[key]
	if !ok {
		store.misses++
		return zero, false
	}
	if entry.expired(now) {
		store.removeLocked(key)
		store.expiredTotal++
		store.misses++
		return zero, false
	}

	entry.touch(now)
	store.hits++
	return entry.value, true
}

// Delete removes key if present. Deleting an absent key is a no-op.
func (store *EntryStore[T]) Delete(key string) {
	store.Lock()
	defer store.Unlock()
	if store.isClosed {
		return
	}
	store.removeLocked(key)
}

// Has reports whether key exists and is not expired, without touching access
// bookkeeping or hit/miss counters. An expired entry is still deleted on
// discovery.
func (store *EntryStore[T]) Has(key string) bool {
	store.Lock()
	defer store.Unlock()
	if store.isClosed {
		return false
	}

	entry, ok := store.entries[key]
	if !ok {
		return false
	}
	if entry.expired(store.now()) {
		store.removeLocked(key)
		store.expiredTotal++
		return false
	}
	return true
}

// TTL returns the remaining lifetime of key in whole seconds,
// types.TTLPersistent for a persistent entry, or types.TTLNotFound when the
// key is absent or expired.
func (store *EntryStore[T]) TTL(key string) int64 {
	store.RLock()
	defer store.RUnlock()
	if store.isClosed {
		return types.TTLNotFound
	}

	entry, ok := store.entries[key]
	if !ok {
		return types.TTLNotFound
	}
	now := store.now()
	if entry.expired(now) {
		return types.TTLNotFound
	}
	if entry.ttlSeconds == types.PersistentTTL {
		return types.TTLPersistent
	}
	return entry.remainingSeconds(now)
}

// Clear removes all entries and resets metrics to their zero state.
func (store *EntryStore[T]) Clear() {
	store.Lock()
	defer store.Unlock()
	if store.isClosed {
		return
	}
	store.clearLocked()
}

// Keys returns every stored key, including expired entries not yet swept.
func (store *EntryStore[T]) Keys() []string {
	store.RLock()
	defer store.RUnlock()

	keys := make([]string, 0, len(store.entries))
	for key := range store.entries {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the current entry count, including expired entries not yet
// swept.
func (store *EntryStore[T]) Len() int {
	store.RLock()
	defer store.RUnlock()
	return len(store.entries)
}

// Scan returns up to count keys matching the glob pattern, in store
// iteration order.
func (store *EntryStore[T]) Scan(pattern string, count int) ([]string, error) {
	matcher, err := CompilePattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("EntryStore.Scan ERROR: %w", err)
	}

	store.RLock()
	defer store.RUnlock()
	if store.isClosed {
		return nil, fmt.Errorf("EntryStore.Scan ERROR: %w", ErrClosed)
	}

	matches := make([]string, 0)
	for key := range store.entries {
		if len(matches) >= count {
			break
		}
		if matcher.Match(key) {
			matches = append(matches, key)
		}
	}
	return matches, nil
}

// GetBatch returns the values for every present, non-expired key. Absent and
// expired keys are omitted. Each key goes through the same bookkeeping as an
// individual Get.
func (store *EntryStore[T]) GetBatch(keys []string) map[string]T {
	result := make(map[string]T, len(keys))

	store.Lock()
	defer store.Unlock()
	if store.isClosed {
		return result
	}

	now := store.now()
	for _, key := range keys {
		entry, ok := store.entries[key]
		if !ok {
			store.misses++
			continue
		}
		if entry.expired(now) {
			store.removeLocked(key)
			store.expiredTotal++
			store.misses++
			continue
		}
		entry.touch(now)
		store.hits++
		result[key] = entry.value
	}
	return result
}

// SetBatch applies Set for every pair with the default TTL. The batch is a
// single critical section but is not transactional.
func (store *EntryStore[T]) SetBatch(values map[string]T) error {
	store.Lock()
	defer store.Unlock()
	if store.isClosed {
		return fmt.Errorf("EntryStore.SetBatch ERROR: %w", ErrClosed)
	}

	for key, value := range values {
		store.insertLocked(key, value, store.config.DefaultTTLSeconds)
	}
	return nil
}

// SetBatchWithTTL applies Set for every pair with its own TTL.
func (store *EntryStore[T]) SetBatchWithTTL(entries map[string]types.BatchEntry[T]) error {
	store.Lock()
	defer store.Unlock()
	if store.isClosed {
		return fmt.Errorf("EntryStore.SetBatchWithTTL ERROR: %w", ErrClosed)
	}

	for key, batchEntry := range entries {
		ttl := batchEntry.TTLSeconds
		if ttl < 0 {
			ttl = types.PersistentTTL
		}
		store.insertLocked(key, batchEntry.Value, ttl)
	}
	return nil
}

// Increment adds delta to the integer interpretation of the stored value and
// returns the result. A missing or non-numeric value counts as 0. An
// existing entry keeps its TTL window; a new one gets the default TTL.
func (store *EntryStore[T]) Increment(key string, delta int64) (int64, error) {
	store.Lock()
	defer store.Unlock()
	if store.isClosed {
		return 0, fmt.Errorf("EntryStore.Increment ERROR: %w", ErrClosed)
	}

	now := store.now()
	entry, ok := store.entries[key]
	if ok && entry.expired(now) {
		store.removeLocked(key)
		store.expiredTotal++
		ok = false
	}

	var current int64
	if ok {
		current = coerceInt64(any(entry.value))
	}
	next := current + delta

	value, err := numericValue[T](next)
	if err != nil {
		return 0, fmt.Errorf("EntryStore.Increment ERROR: %w", err)
	}

	if ok {
		store.memoryUsage -= entry.size
		entry.value = value
		entry.size = utils.EstimateSize(value)
		store.memoryUsage += entry.size
	} else {
		store.insertLocked(key, value, store.config.DefaultTTLSeconds)
	}
	return next, nil
}

// Decrement subtracts delta via Increment.
func (store *EntryStore[T]) Decrement(key string, delta int64) (int64, error) {
	return store.Increment(key, -delta)
}

// Expire rebases the entry's TTL to ttlSeconds counted from now. It reports
// whether the TTL was applied; absent or already expired keys are a no-op.
func (store *EntryStore[T]) Expire(key string, ttlSeconds int64) bool {
	if ttlSeconds < 0 {
		ttlSeconds = types.PersistentTTL
	}

	store.Lock()
	defer store.Unlock()
	if store.isClosed {
		return false
	}

	now := store.now()
	entry, ok := store.entries[key]
	if !ok {
		return false
	}
	if entry.expired(now) {
		store.removeLocked(key)
		store.expiredTotal++
		return false
	}

	entry.ttlSeconds = ttlSeconds
	entry.createdAt = now
	return true
}

// Persist marks an existing, non-expired entry as never-expiring. It reports
// whether the entry was found alive.
func (store *EntryStore[T]) Persist(key string) bool {
	store.Lock()
	defer store.Unlock()
	if store.isClosed {
		return false
	}

	now := store.now()
	entry, ok := store.entries[key]
	if !ok {
		return false
	}
	if entry.expired(now) {
		store.removeLocked(key)
		store.expiredTotal++
		return false
	}

	entry.ttlSeconds = types.PersistentTTL
	return true
}

// GetMetrics returns the current operational counters.
func (store *EntryStore[T]) GetMetrics() types.Metrics {
	store.RLock()
	defer store.RUnlock()
	return store.metricsLocked(store.now())
}

// GetStats returns the introspection superset of GetMetrics.
func (store *EntryStore[T]) GetStats() types.Stats {
	store.RLock()
	defer store.RUnlock()

	now := store.now()
	stats := types.Stats{
		Metrics:          store.metricsLocked(now),
		EvictedCount:     store.evicted,
		ExpiredCount:     store.expiredTotal,
		EvictionStrategy: store.policy.Strategy(),
	}
	for _, entry := range store.entries {
		if stats.OldestEntryAt.IsZero() || entry.createdAt.Before(stats.OldestEntryAt) {
			stats.OldestEntryAt = entry.createdAt
		}
		if entry.createdAt.After(stats.NewestEntryAt) {
			stats.NewestEntryAt = entry.createdAt
		}
		if entry.expired(now) {
			stats.ExpiredNotSwept++
		}
	}
	return stats
}

// Destroy cancels the background sweep and clears all entries. The store
// must not be used afterwards.
func (store *EntryStore[T]) Destroy() {
	store.cancel()

	store.Lock()
	defer store.Unlock()
	store.clearLocked()
	store.isClosed = true
}

// insertLocked performs the capacity check, eviction, and insert/replace.
// Callers hold the write lock.
func (store *EntryStore[T]) insertLocked(key string, value T, ttlSeconds int64) {
	now := store.now()

	if existing, ok := store.entries[key]; ok {
		store.memoryUsage -= existing.size
	} else if len(store.entries) >= store.config.MaxSize {
		store.evictLocked(evictionBatch(store.config.MaxSize))
	}

	store.nextSeq++
	entry := &cacheEntry[T]{
		key:        key,
		value:      value,
		ttlSeconds: ttlSeconds,
		createdAt:  now,
		accessedAt: now,
		size:       utils.EstimateSize(value),
		compressed: store.config.Compression,
		seq:        store.nextSeq,
	}
	store.entries[key] = entry
	store.memoryUsage += entry.size
}

// evictLocked removes up to n entries chosen by the active policy.
func (store *EntryStore[T]) evictLocked(n int) {
	victims := store.policy.Victims(store.now(), entriesOf(store.entries), n)
	for _, victim := range victims {
		store.removeLocked(victim.key)
		store.evicted++
	}
}

func (store *EntryStore[T]) removeLocked(key string) {
	entry, ok := store.entries[key]
	if !ok {
		return
	}
	store.memoryUsage -= entry.size
	delete(store.entries, key)
}

func (store *EntryStore[T]) clearLocked() {
	store.entries = make(map[string]*cacheEntry[T])
	store.hits = 0
	store.misses = 0
	store.evicted = 0
	store.expiredTotal = 0
	store.memoryUsage = 0
	store.lastCleanup = time.Time{}
}

// metricsLocked computes the Metrics view. AverageTTL is recomputed from the
// live non-persistent entries on every call rather than maintained
// incrementally, so it cannot drift.
func (store *EntryStore[T]) metricsLocked(now time.Time) types.Metrics {
	metrics := types.Metrics{
		TotalEntries:           len(store.entries),
		HitCount:               store.hits,
		MissCount:              store.misses,
		ApproximateMemoryUsage: store.memoryUsage,
		LastCleanupAt:          store.lastCleanup,
	}
	if total := store.hits + store.misses; total > 0 {
		metrics.HitRate = float64(store.hits) / float64(total)
		metrics.MissRate = float64(store.misses) / float64(total)
	}

	var ttlSum int64
	var ttlCount int
	for _, entry := range store.entries {
		if entry.ttlSeconds == types.PersistentTTL || entry.expired(now) {
			continue
		}
		ttlSum += entry.ttlSeconds
		ttlCount++
	}
	if ttlCount > 0 {
		metrics.AverageTTLSeconds = float64(ttlSum) / float64(ttlCount)
	}
	return metrics
}

// evictionBatch is the number of entries removed per eviction pass:
// max(1, ceil(maxSize * 0.1)).
func evictionBatch(maxSize int) int {
	batch := (maxSize + 9) / 10
	if batch < 1 {
		batch = 1
	}
	return batch
}

func entriesOf[T any](entries map[string]*cacheEntry[T]) []*cacheEntry[T] {
	list := make([]*cacheEntry[T], 0, len(entries))
	for _, entry := range entries {
		list = append(list, entry)
	}
	return list
}
