package pkg

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/coocood/freecache"

	"github.com/praxima/cache_engine/types"
)

type benchStruct struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
	Data      []byte `json:"data"`
}

func benchConfig(strategy types.Strategy) types.Config {
	return types.Config{
		MaxSize:                100000,
		DefaultTTLSeconds:      60,
		Strategy:               strategy,
		CleanupIntervalSeconds: 30,
	}
}

func BenchmarkCacheImplementations(b *testing.B) {
	ctx := context.Background()
	ttl := 60 * time.Second

	testData := &benchStruct{
		ID:        1,
		Name:      "Test User",
		Email:     "test@example.com",
		CreatedAt: time.Now().Unix(),
		Data:      make([]byte, 100),
	}
	jsonData, _ := json.Marshal(testData)

	bigcacheConfig := bigcache.DefaultConfig(ttl)
	bigcacheConfig.Verbose = false
	bigcacheConfig.Logger = nil
	bigCache, _ := bigcache.New(ctx, bigcacheConfig)

	freeCache := freecache.NewCache(1024 * 1024 * 10)

	engine, err := NewCache[*benchStruct](ctx, benchConfig(types.StrategyLRU))
	if err != nil {
		b.Fatal(err)
	}
	defer engine.Destroy()

	benchmarks := []struct {
		name string
		fn   func(b *testing.B)
	}{
		{
			name: "CacheEngine",
			fn: func(b *testing.B) {
				b.Run("Set", func(b *testing.B) {
					for i := 0; i < b.N; i++ {
						_ = engine.Set(fmt.Sprintf("key-%d", i), testData)
					}
				})
				b.Run("Get", func(b *testing.B) {
					for i := 0; i < b.N; i++ {
						_, _ = engine.Get(fmt.Sprintf("key-%d", i))
					}
				})
			},
		},
		{
			name: "BigCache",
			fn: func(b *testing.B) {
				b.Run("Set", func(b *testing.B) {
					for i := 0; i < b.N; i++ {
						_ = bigCache.Set(fmt.Sprintf("key-%d", i), jsonData)
					}
				})
				b.Run("Get", func(b *testing.B) {
					for i := 0; i < b.N; i++ {
						_, _ = bigCache.Get(fmt.Sprintf("key-%d", i))
					}
				})
			},
		},
		{
			name: "FreeCache",
			fn: func(b *testing.B) {
				b.Run("Set", func(b *testing.B) {
					for i := 0; i < b.N; i++ {
						_ = freeCache.Set([]byte(fmt.Sprintf("key-%d", i)), jsonData, int(ttl.Seconds()))
					}
				})
				b.Run("Get", func(b *testing.B) {
					for i := 0; i < b.N; i++ {
						_, _ = freeCache.Get([]byte(fmt.Sprintf("key-%d", i)))
					}
				})
			},
		},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, bm.fn)
	}
}

func BenchmarkParallelAccess(b *testing.B) {
	ctx := context.Background()
	engine, err := NewCache[*benchStruct](ctx, benchConfig(types.StrategyLRU))
	if err != nil {
		b.Fatal(err)
	}
	defer engine.Destroy()

	testData := &benchStruct{ID: 1, Name: "Test User"}
	for i := 0; i < 1000; i++ {
		_ = engine.Set(fmt.Sprintf("key-%d", i), testData)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := fmt.Sprintf("key-%d", i%1000)
			if i%5 == 0 {
				_ = engine.Set(key, testData)
			} else {
				_, _ = engine.Get(key)
			}
			i++
		}
	})
}

func BenchmarkEvictionStrategies(b *testing.B) {
	ctx := context.Background()
	testData := &benchStruct{ID: 1, Name: "Test User"}

	for _, strategy := range []types.Strategy{types.StrategyLRU, types.StrategyFIFO, types.StrategyTTL} {
		b.Run(string(strategy), func(b *testing.B) {
			config := benchConfig(strategy)
			config.MaxSize = 1000
			engine, err := NewCache[*benchStruct](ctx, config)
			if err != nil {
				b.Fatal(err)
			}
			defer engine.Destroy()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = engine.Set(fmt.Sprintf("key-%d", i), testData)
			}
		})
	}
}
