package pkg

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxima/cache_engine/types"
)

func newFacade[T any](t *testing.T) ICache[T] {
	t.Helper()
	cache, err := NewCache[T](context.Background(), DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(cache.Destroy)
	return cache
}

func TestNewCacheRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config types.Config
	}{
		{"zero max size", types.Config{MaxSize: 0, DefaultTTLSeconds: 60, Strategy: types.StrategyLRU, CleanupIntervalSeconds: 30}},
		{"bad strategy", types.Config{MaxSize: 10, DefaultTTLSeconds: 60, Strategy: "mru", CleanupIntervalSeconds: 30}},
		{"zero cleanup interval", types.Config{MaxSize: 10, DefaultTTLSeconds: 60, Strategy: types.StrategyLRU}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, err := NewCache[string](context.Background(), tt.config)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, cache)
		})
	}
}

func TestFacadeBasicOperations(t *testing.T) {
	cache := newFacade[string](t)

	require.NoError(t, cache.Set("doc:1", "contract.pdf"))
	value, ok := cache.Get("doc:1")
	assert.True(t, ok)
	assert.Equal(t, "contract.pdf", value)

	assert.True(t, cache.Has("doc:1"))
	assert.False(t, cache.Has("doc:2"))

	cache.Delete("doc:1")
	assert.False(t, cache.Has("doc:1"))
	cache.Delete("doc:1") // deleting twice is a no-op

	_, ok = cache.Get("doc:1")
	assert.False(t, ok)

	metrics := cache.GetMetrics()
	assert.Equal(t, uint64(1), metrics.HitCount)
	assert.Equal(t, uint64(1), metrics.MissCount)
	assert.InDelta(t, 1.0, metrics.HitRate+metrics.MissRate, 1e-9)
}

func TestFacadeBatchOperations(t *testing.T) {
	cache := newFacade[int](t)

	require.NoError(t, cache.SetBatch(map[string]int{"a": 1, "b": 2, "c": 3}))
	assert.Equal(t, 3, cache.Len())

	result := cache.GetBatch([]string{"a", "c", "missing"})
	assert.Equal(t, map[string]int{"a": 1, "c": 3}, result)

	require.NoError(t, cache.SetBatchWithTTL(map[string]types.BatchEntry[int]{
		"forever": {Value: 9, TTLSeconds: types.PersistentTTL},
	}))
	assert.Equal(t, types.TTLPersistent, cache.TTL("forever"))
}

func TestFacadeCounters(t *testing.T) {
	cache := newFacade[int64](t)

	value, err := cache.Increment("visits", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), value)

	value, err = cache.Increment("visits", -2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), value)

	value, err = cache.Decrement("visits", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), value)
}

func TestFacadeScan(t *testing.T) {
	cache := newFacade[int](t)
	for _, key := range []string{"user:1", "user:2", "order:1"} {
		require.NoError(t, cache.Set(key, 0))
	}

	matches, err := cache.Scan("user:*", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user:1", "user:2"}, matches)
}

func TestFacadeSnapshotRoundTrip(t *testing.T) {
	cache := newFacade[string](t)
	require.NoError(t, cache.SetWithTTL("a", "1", 600))
	require.NoError(t, cache.SetWithTTL("b", "2", types.PersistentTTL))

	snapshot, err := cache.Export()
	require.NoError(t, err)
	assert.Len(t, snapshot.Entries, 2)
	assert.False(t, snapshot.ExportedAt.IsZero())

	restored := newFacade[string](t)
	require.NoError(t, restored.Import(snapshot))
	assert.ElementsMatch(t, cache.Keys(), restored.Keys())

	value, ok := restored.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", value)
	assert.Equal(t, types.TTLPersistent, restored.TTL("b"))
}

func TestBackgroundSweep(t *testing.T) {
	if testing.Short() {
		t.Skip("timing-dependent")
	}

	config := types.Config{
		MaxSize:                100,
		DefaultTTLSeconds:      60,
		Strategy:               types.StrategyLRU,
		CleanupIntervalSeconds: 1,
	}
	cache, err := NewCache[string](context.Background(), config)
	require.NoError(t, err)
	defer cache.Destroy()

	// TTL 0 expires as soon as any time elapses; only the sweep removes it
	// because nothing reads the key.
	require.NoError(t, cache.SetWithTTL("ephemeral", "v", 0))
	require.NoError(t, cache.SetWithTTL("stable", "v", 600))

	assert.Eventually(t, func() bool {
		return cache.Len() == 1 && !cache.GetMetrics().LastCleanupAt.IsZero()
	}, 5*time.Second, 100*time.Millisecond, "sweep must remove the expired entry without a read")

	assert.True(t, cache.Has("stable"))
	assert.GreaterOrEqual(t, cache.GetStats().ExpiredCount, uint64(1))
}

func TestSweepStopsOnContextCancel(t *testing.T) {
	if testing.Short() {
		t.Skip("timing-dependent")
	}

	ctx, cancel := context.WithCancel(context.Background())
	config := DefaultConfig()
	config.CleanupIntervalSeconds = 1
	cache, err := NewCache[string](ctx, config)
	require.NoError(t, err)

	require.NoError(t, cache.SetWithTTL("ephemeral", "v", 0))
	cancel()
	time.Sleep(1500 * time.Millisecond)

	// The schedule is cancelled; the unread expired entry stays until a
	// lazy check finds it.
	assert.Equal(t, 1, cache.Len())
	assert.True(t, cache.GetMetrics().LastCleanupAt.IsZero())
}

func TestFacadeConcurrentAccess(t *testing.T) {
	cache := newFacade[int](t)

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("key-%d", i%50)
				switch i % 4 {
				case 0:
					_ = cache.Set(key, i)
				case 1:
					_, _ = cache.Get(key)
				case 2:
					_, _ = cache.Increment(fmt.Sprintf("counter-%d", worker), 1)
				default:
					cache.Has(key)
				}
			}
		}(worker)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), DefaultConfig().MaxSize)
	metrics := cache.GetMetrics()
	assert.Equal(t, metrics.TotalEntries, cache.Len())
}

func TestDestroyedFacade(t *testing.T) {
	cache, err := NewCache[string](context.Background(), DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, cache.Set("key", "v"))

	cache.Destroy()

	assert.ErrorIs(t, cache.Set("key", "v"), ErrClosed)
	_, ok := cache.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}
