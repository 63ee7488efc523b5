package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agora_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheRequests counts cache lookups by key class and outcome (hit/miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_cache_requests_total",
		Help: "Total cache lookups by key class and result",
	}, []string{"key", "result"})

	// AuditRowsWritten counts audit log rows observed per audited table.
	AuditRowsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_audit_rows_total",
		Help: "Total audit log rows recorded by table",
	}, []string{"table"})
)

// ObserveQuery records one database query's latency.
func ObserveQuery(operation, table string, began time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(began).Seconds())
}
