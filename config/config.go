package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/praxima/cache_engine/internal/utils"
	"github.com/praxima/cache_engine/types"
)

// Environment variables understood by Load. CACHE_ENV_FILE points at an
// alternative dotenv file; by default a `.env` in the working directory is
// loaded when present.
const (
	EnvFile            = "CACHE_ENV_FILE"
	EnvMaxSize         = "CACHE_MAX_SIZE"
	EnvDefaultTTL      = "CACHE_DEFAULT_TTL_SEC"
	EnvStrategy        = "CACHE_STRATEGY"
	EnvCleanupInterval = "CACHE_CLEANUP_INTERVAL_SEC"
	EnvCompression     = "CACHE_COMPRESSION"
)

// Load builds a cache configuration from environment variables, falling back
// to sensible defaults. Values are not validated here; construction rejects
// an invalid configuration.
func Load() types.Config {
	if envFile := os.Getenv(EnvFile); envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	return types.Config{
		MaxSize:                utils.GetEnvAsInt(EnvMaxSize, 1000),
		DefaultTTLSeconds:      int64(utils.GetEnvAsInt(EnvDefaultTTL, 300)),
		Strategy:               ParseStrategy(utils.GetEnvAsString(EnvStrategy, "lru")),
		CleanupIntervalSeconds: utils.GetEnvAsInt(EnvCleanupInterval, 60),
		Compression:            utils.GetEnvAsBool(EnvCompression, false),
	}
}

// ParseStrategy maps a strategy name to its Strategy value, defaulting to
// LRU for anything unrecognized.
func ParseStrategy(name string) types.Strategy {
	switch types.Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case types.StrategyFIFO:
		return types.StrategyFIFO
	case types.StrategyTTL:
		return types.StrategyTTL
	default:
		return types.StrategyLRU
	}
}
