package main

import (
	"context"
	"fmt"
	"time"

	"github.com/praxima/cache_engine/config"
	"github.com/praxima/cache_engine/pkg"
)

type Session struct {
	User    string
	Expires time.Time
}

func main() {
	ctx := context.Background()

	cache, err := pkg.NewCache[*Session](ctx, config.Load())
	if err != nil {
		fmt.Println(err)
		return
	}
	defer cache.Destroy()

	start := time.Now()
	for i := 0; i < 100000; i++ {
		err := cache.Set(fmt.Sprintf("session:%d", i), &Session{User: "demo", Expires: time.Now()})
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	if session, ok := cache.Get("session:42"); ok {
		fmt.Println("session:42 ->", session.User)
	}

	keys, _ := cache.Scan("session:9999*", 20)
	fmt.Println("scan matched", len(keys), "keys")

	stats := cache.GetStats()
	fmt.Printf("%v entries=%d hits=%d misses=%d memory=%dB strategy=%s\n",
		time.Since(start), stats.TotalEntries, stats.HitCount, stats.MissCount,
		stats.ApproximateMemoryUsage, stats.EvictionStrategy)
}
