package src

import (
	"sort"
	"time"

	"github.com/praxima/cache_engine/types"
)

// NewEvictionPolicy returns the policy implementation for the given strategy.
// The strategy must already be validated.
func NewEvictionPolicy[T any](strategy types.Strategy) IEvictionPolicy[T] {
	switch strategy {
	case types.StrategyFIFO:
		return &fifoPolicy[T]{}
	case types.StrategyTTL:
		return &ttlProximityPolicy[T]{}
	default:
		return &lruPolicy[T]{}
	}
}

// lruPolicy evicts entries with the oldest accessedAt first.
type lruPolicy[T any] struct{}

func (policy *lruPolicy[T]) Strategy() types.Strategy { return types.StrategyLRU }

func (policy *lruPolicy[T]) Victims(_ time.Time, entries []*cacheEntry[T], n int) []*cacheEntry[T] {
	sorted := sortedCopy(entries, func(a, b *cacheEntry[T]) bool {
		if !a.accessedAt.Equal(b.accessedAt) {
			return a.accessedAt.Before(b.accessedAt)
		}
		return a.seq < b.seq
	})
	return head(sorted, n)
}

// fifoPolicy evicts entries with the oldest createdAt first.
type fifoPolicy[T any] struct{}

func (policy *fifoPolicy[T]) Strategy() types.Strategy { return types.StrategyFIFO }

func (policy *fifoPolicy[T]) Victims(_ time.Time, entries []*cacheEntry[T], n int) []*cacheEntry[T] {
	sorted := sortedCopy(entries, func(a, b *cacheEntry[T]) bool {
		if !a.createdAt.Equal(b.createdAt) {
			return a.createdAt.Before(b.createdAt)
		}
		return a.seq < b.seq
	})
	return head(sorted, n)
}

// ttlProximityPolicy evicts entries closest to their own natural expiration,
// ordered by elapsed-age/TTL ratio descending. Persistent entries rank with
// ratio 0 and are therefore chosen last.
type ttlProximityPolicy[T any] struct{}

func (policy *ttlProximityPolicy[T]) Strategy() types.Strategy { return types.StrategyTTL }

func (policy *ttlProximityPolicy[T]) Victims(now time.Time, entries []*cacheEntry[T], n int) []*cacheEntry[T] {
	sorted := sortedCopy(entries, func(a, b *cacheEntry[T]) bool {
		ratioA, ratioB := a.ttlRatio(now), b.ttlRatio(now)
		if ratioA != ratioB {
			return ratioA > ratioB
		}
		return a.seq < b.seq
	})
	return head(sorted, n)
}

func sortedCopy[T any](entries []*cacheEntry[T], less func(a, b *cacheEntry[T]) bool) []*cacheEntry[T] {
	sorted := make([]*cacheEntry[T], len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

func head[T any](entries []*cacheEntry[T], n int) []*cacheEntry[T] {
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}
