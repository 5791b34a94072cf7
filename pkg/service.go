package pkg

import (
	"context"
	"log/slog"

	"github.com/praxima/cache_engine/internal/src"
	"github.com/praxima/cache_engine/types"
)

// Sentinel errors surfaced by the engine, re-exported for callers.
var (
	ErrClosed        = src.ErrClosed
	ErrInvalidConfig = src.ErrInvalidConfig
	ErrNotNumeric    = src.ErrNotNumeric
)

// NewCache creates a cache engine with the given configuration and starts
// its background sweep. The sweep stops when ctx is cancelled or Destroy is
// called. Invalid configuration fails construction.
func NewCache[T any](ctx context.Context, config types.Config) (ICache[T], error) {
	return NewCacheWithLogger[T](ctx, config, nil)
}

// NewCacheWithLogger is NewCache with an explicit logger for the sweep
// observability side-channel.
func NewCacheWithLogger[T any](ctx context.Context, config types.Config, logger *slog.Logger) (ICache[T], error) {
	store, err := src.NewEntryStore[T](ctx, config, logger)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// DefaultConfig returns a configuration suitable for most consumers.
func DefaultConfig() types.Config {
	return types.Config{
		MaxSize:                1000,
		DefaultTTLSeconds:      300,
		Strategy:               types.StrategyLRU,
		CleanupIntervalSeconds: 60,
	}
}
