package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinetrack_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// CacheLookups counts content cache lookups by namespace and outcome (hit|miss).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinetrack_cache_lookups_total",
			Help: "Content cache lookups by namespace and outcome",
		},
		[]string{"namespace", "outcome"},
	)

	// UpstreamRequests counts requests issued to the TV metadata provider by result
	// (ok|error|rate_limited).
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinetrack_upstream_requests_total",
			Help: "Requests issued to the upstream metadata API",
		},
		[]string{"result"},
	)

	// UpstreamRetries counts retry attempts against the upstream metadata API.
	UpstreamRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinetrack_upstream_retries_total",
			Help: "Retry attempts against the upstream metadata API",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinetrack_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
