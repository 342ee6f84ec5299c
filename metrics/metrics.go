package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	CacheHits          *prometheus.CounterVec
	CacheMisses        *prometheus.CounterVec
	CacheInvalidations *prometheus.CounterVec
	QueryDuration      *prometheus.HistogramVec
	StorageRequests    *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "query_cache_hits_total",
				Help:      "Total query cache hits by entity kind.",
			}, []string{"kind"}),
			CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "query_cache_misses_total",
				Help:      "Total query cache misses by entity kind.",
			}, []string{"kind"}),
			CacheInvalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "query_cache_invalidations_total",
				Help:      "Total cache entries marked stale, by mutation event.",
			}, []string{"event"}),
			QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "backend_query_duration_seconds",
				Help:      "Latency distribution for backend reads and writes.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"operation"}),
			StorageRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "storage_requests_total",
				Help:      "Total object storage requests by operation and outcome.",
			}, []string{"operation", "status"}),
		}

		prometheus.MustRegister(
			metricsInstance.CacheHits,
			metricsInstance.CacheMisses,
			metricsInstance.CacheInvalidations,
			metricsInstance.QueryDuration,
			metricsInstance.StorageRequests,
		)
	})

	return metricsInstance
}
