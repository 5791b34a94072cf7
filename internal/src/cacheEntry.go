package src

import (
	"time"

	"github.com/praxima/cache_engine/types"
)

// cacheEntry is the authoritative record for a single key. All fields are
// owned by the EntryStore and mutated only under its lock.
type cacheEntry[T any] struct {
	key        string
	value      T
	ttlSeconds int64
	createdAt  time.Time
	accessedAt time.Time
	hitCount   uint32
	size       int64
	compressed bool
	seq        uint64
}

// expired reports whether the entry's age has exceeded its TTL. The boundary
// is pinned: at age == ttl the entry is still alive. Persistent entries never
// expire.
func (entry *cacheEntry[T]) expired(now time.Time) bool {
	if entry.ttlSeconds == types.PersistentTTL {
		return false
	}
	return now.Sub(entry.createdAt) > time.Duration(entry.ttlSeconds)*time.Second
}

// remainingSeconds returns the floored number of whole seconds until the
// entry expires. Callers must check expired and persistence first.
func (entry *cacheEntry[T]) remainingSeconds(now time.Time) int64 {
	elapsed := int64(now.Sub(entry.createdAt) / time.Second)
	remaining := entry.ttlSeconds - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// touch records a successful read.
func (entry *cacheEntry[T]) touch(now time.Time) {
	entry.accessedAt = now
	entry.hitCount++
}

// ttlRatio returns elapsed age divided by the TTL window, the ordering key
// of the TTL-proximity eviction policy. Persistent entries rank as 0.
func (entry *cacheEntry[T]) ttlRatio(now time.Time) float64 {
	if entry.ttlSeconds == types.PersistentTTL || entry.ttlSeconds <= 0 {
		return 0
	}
	return now.Sub(entry.createdAt).Seconds() / float64(entry.ttlSeconds)
}

func (entry *cacheEntry[T]) meta() types.EntryMeta {
	return types.EntryMeta{
		ApproximateSize: entry.size,
		Compressed:      entry.compressed,
	}
}
