// Package metrics exposes cache statistics as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/praxima/cache_engine/types"
)

// StatsSource is the part of the cache the collector reads. Collection is
// pull-based and never mutates the cache.
type StatsSource interface {
	GetStats() types.Stats
}

// Collector implements prometheus.Collector over a cache's stats.
type Collector struct {
	source StatsSource

	entries         *prometheus.Desc
	memory          *prometheus.Desc
	hits            *prometheus.Desc
	misses          *prometheus.Desc
	hitRate         *prometheus.Desc
	evictions       *prometheus.Desc
	expirations     *prometheus.Desc
	expiredNotSwept *prometheus.Desc
	lastCleanup     *prometheus.Desc
}

// NewCollector creates a collector with the given metric namespace. Register
// it with a prometheus.Registerer to expose the cache's stats.
func NewCollector(namespace string, source StatsSource) *Collector {
	return &Collector{
		source: source,
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "entries"),
			"Current number of cache entries, including expired entries not yet swept.",
			nil, nil),
		memory: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "memory_bytes"),
			"Approximate memory used by cached payloads.",
			nil, nil),
		hits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "hits_total"),
			"Total number of cache hits.",
			nil, nil),
		misses: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "misses_total"),
			"Total number of cache misses.",
			nil, nil),
		hitRate: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "hit_rate"),
			"Ratio of hits to total reads.",
			nil, nil),
		evictions: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "evictions_total"),
			"Total number of entries removed by capacity eviction.",
			[]string{"strategy"}, nil),
		expirations: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "expirations_total"),
			"Total number of entries removed by TTL expiration.",
			nil, nil),
		expiredNotSwept: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "expired_not_swept"),
			"Entries past their TTL awaiting the next sweep.",
			nil, nil),
		lastCleanup: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "last_cleanup_timestamp_seconds"),
			"Unix timestamp of the last completed background sweep.",
			nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.memory
	ch <- c.hits
	ch <- c.misses
	ch <- c.hitRate
	ch <- c.evictions
	ch <- c.expirations
	ch <- c.expiredNotSwept
	ch <- c.lastCleanup
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.GetStats()

	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(stats.TotalEntries))
	ch <- prometheus.MustNewConstMetric(c.memory, prometheus.GaugeValue, float64(stats.ApproximateMemoryUsage))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(stats.HitCount))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(stats.MissCount))
	ch <- prometheus.MustNewConstMetric(c.hitRate, prometheus.GaugeValue, stats.HitRate)
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(stats.EvictedCount), string(stats.EvictionStrategy))
	ch <- prometheus.MustNewConstMetric(c.expirations, prometheus.CounterValue, float64(stats.ExpiredCount))
	ch <- prometheus.MustNewConstMetric(c.expiredNotSwept, prometheus.GaugeValue, float64(stats.ExpiredNotSwept))

	if !stats.LastCleanupAt.IsZero() {
		ch <- prometheus.MustNewConstMetric(c.lastCleanup, prometheus.GaugeValue, float64(stats.LastCleanupAt.Unix()))
	}
}
