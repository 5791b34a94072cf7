package types

import "time"

// Strategy selects the eviction ordering used when the cache is at capacity.
type Strategy string

const (
	// StrategyLRU evicts entries with the oldest last-access time first.
	StrategyLRU Strategy = "lru"
	// StrategyFIFO evicts entries with the oldest creation time first.
	StrategyFIFO Strategy = "fifo"
	// StrategyTTL evicts entries closest to their own natural expiration first.
	StrategyTTL Strategy = "ttl"
)

// Valid reports whether the strategy is one of the supported orderings.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyLRU, StrategyFIFO, StrategyTTL:
		return true
	}
	return false
}

// PersistentTTL is the ttlSeconds value of an entry that never expires.
const PersistentTTL int64 = -1

// TTL query sentinels, following the Redis convention: TTLNotFound is
// returned for a key that is absent or already expired, TTLPersistent for a
// key that exists but carries no expiration.
const (
	TTLNotFound   int64 = -2
	TTLPersistent int64 = -1
)

// Config holds the construction-time cache configuration. It is immutable
// after construction except when Import replaces it wholesale.
type Config struct {
	MaxSize                int      `json:"maxSize"`
	DefaultTTLSeconds      int64    `json:"defaultTTL"`
	Strategy               Strategy `json:"strategy"`
	CleanupIntervalSeconds int      `json:"cleanupInterval"`
	Compression            bool     `json:"compression"`
}

// Metrics is the operational counter set maintained jointly with every
// entry-table mutation. HitRate and MissRate sum to 1 once HitCount+MissCount
// is positive; both are 0 before the first Get.
type Metrics struct {
	TotalEntries           int       `json:"totalEntries"`
	HitCount               uint64    `json:"hitCount"`
	MissCount              uint64    `json:"missCount"`
	HitRate                float64   `json:"hitRate"`
	MissRate               float64   `json:"missRate"`
	AverageTTLSeconds      float64   `json:"averageTTL"`
	ApproximateMemoryUsage int64     `json:"approximateMemoryUsage"`
	LastCleanupAt          time.Time `json:"lastCleanupAt"`
}

// Stats is the introspection superset of Metrics returned by GetStats.
type Stats struct {
	Metrics
	OldestEntryAt    time.Time `json:"oldestEntryTimestamp"`
	NewestEntryAt    time.Time `json:"newestEntryTimestamp"`
	ExpiredNotSwept  int       `json:"expiredButNotSweptCount"`
	EvictedCount     uint64    `json:"evictedCount"`
	ExpiredCount     uint64    `json:"expiredCount"`
	EvictionStrategy Strategy  `json:"evictionStrategy"`
}

// EntryMeta carries informational per-entry metadata. It never influences
// correctness.
type EntryMeta struct {
	ApproximateSize int64 `json:"approximateSize"`
	Compressed      bool  `json:"compressed"`
}

// BatchEntry pairs a value with an explicit TTL for SetBatchWithTTL.
// TTLSeconds may be PersistentTTL.
type BatchEntry[T any] struct {
	Value      T
	TTLSeconds int64
}

// SnapshotEntry is the serialized form of a single cache entry.
type SnapshotEntry[T any] struct {
	Key        string    `json:"key"`
	Value      T         `json:"value"`
	TTLSeconds int64     `json:"ttlSeconds"`
	CreatedAt  time.Time `json:"createdAt"`
	AccessedAt time.Time `json:"accessedAt"`
	HitCount   uint32    `json:"hitCount"`
	Metadata   EntryMeta `json:"metadata"`
}

// Snapshot is the full exported cache state: every entry plus the
// configuration and metrics in effect at export time. It is the only
// persisted representation of a cache.
type Snapshot[T any] struct {
	Entries    []SnapshotEntry[T] `json:"entries"`
	Config     Config             `json:"configuration"`
	Metrics    Metrics            `json:"metrics"`
	ExportedAt time.Time          `json:"exportedAt"`
}
