package src

import (
	"fmt"
	"sort"

	"github.com/praxima/cache_engine/internal/utils"
	"github.com/praxima/cache_engine/types"
)

// Export serializes the full entry set plus the configuration and metrics in
// effect. Entries are ordered by key so that repeated exports of the same
// state are identical.
func (store *EntryStore[T]) Export() (*types.Snapshot[T], error) {
	store.RLock()
	defer store.RUnlock()
	if store.isClosed {
		return nil, fmt.Errorf("EntryStore.Export ERROR: %w", ErrClosed)
	}

	now := store.now()
	snapshot := &types.Snapshot[T]{
		Entries:    make([]types.SnapshotEntry[T], 0, len(store.entries)),
		Config:     store.config,
		Metrics:    store.metricsLocked(now),
		ExportedAt: now,
	}
	for _, entry := range store.entries {
		snapshot.Entries = append(snapshot.Entries, types.SnapshotEntry[T]{
			Key:        entry.key,
			Value:      entry.value,
			TTLSeconds: entry.ttlSeconds,
			CreatedAt:  entry.createdAt,
			AccessedAt: entry.accessedAt,
			HitCount:   entry.hitCount,
			Metadata:   entry.meta(),
		})
	}
	sort.Slice(snapshot.Entries, func(i, j int) bool {
		return snapshot.Entries[i].Key < snapshot.Entries[j].Key
	})
	return snapshot, nil
}

// Import replaces the store's configuration, metrics, and entry set with the
// snapshot's. The incoming entries are staged into a fresh table first and
// swapped in only on full success, so a failed import leaves the store
// untouched.
//
// Each entry keeps its exported createdAt and ttlSeconds, so a time-limited
// entry's remaining lifetime keeps elapsing across export and import; entries
// that expire in transit are removed by the usual lazy and swept paths. The
// snapshot's capacity bound is enforced during staging with the snapshot's
// own eviction strategy. The sweep keeps running on the construction-time
// interval even when the imported configuration differs.
func (store *EntryStore[T]) Import(snapshot *types.Snapshot[T]) error {
	if snapshot == nil {
		return fmt.Errorf("EntryStore.Import ERROR: nil snapshot")
	}
	if err := ValidateConfig(snapshot.Config); err != nil {
		return fmt.Errorf("EntryStore.Import ERROR: %w", err)
	}

	policy := NewEvictionPolicy[T](snapshot.Config.Strategy)
	batch := evictionBatch(snapshot.Config.MaxSize)
	staged := make(map[string]*cacheEntry[T], len(snapshot.Entries))
	now := store.now()

	var memory int64
	var seq uint64
	for _, exported := range snapshot.Entries {
		ttl := exported.TTLSeconds
		if ttl < 0 {
			ttl = types.PersistentTTL
		}

		if existing, ok := staged[exported.Key]; ok {
			memory -= existing.size
		} else if len(staged) >= snapshot.Config.MaxSize {
			for _, victim := range policy.Victims(now, entriesOf(staged), batch) {
				memory -= victim.size
				delete(staged, victim.key)
			}
		}

		seq++
		entry := &cacheEntry[T]{
			key:        exported.Key,
			value:      exported.Value,
			ttlSeconds: ttl,
			createdAt:  exported.CreatedAt,
			accessedAt: exported.AccessedAt,
			hitCount:   exported.HitCount,
			size:       utils.EstimateSize(exported.Value),
			compressed: exported.Metadata.Compressed,
			seq:        seq,
		}
		staged[exported.Key] = entry
		memory += entry.size
	}

	store.Lock()
	defer store.Unlock()
	if store.isClosed {
		return fmt.Errorf("EntryStore.Import ERROR: %w", ErrClosed)
	}

	store.entries = staged
	store.config = snapshot.Config
	store.policy = policy
	store.hits = snapshot.Metrics.HitCount
	store.misses = snapshot.Metrics.MissCount
	store.lastCleanup = snapshot.Metrics.LastCleanupAt
	store.memoryUsage = memory
	store.evicted = 0
	store.expiredTotal = 0
	store.nextSeq = seq
	return nil
}
