package src

import (
	"time"

	"github.com/praxima/cache_engine/types"
)

// IEvictionPolicy defines a pluggable capacity-eviction ordering.
// Victims returns up to n entries to remove, most evictable first. The
// selection must be deterministic for a given entry set: policies order by
// their primary key and break ties by insertion sequence.
type IEvictionPolicy[T any] interface {
	Strategy() types.Strategy
	Victims(now time.Time, entries []*cacheEntry[T], n int) []*cacheEntry[T]
}
