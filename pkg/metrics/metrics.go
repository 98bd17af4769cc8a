package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Outgoing API request latency (seconds), recorded by the client pipeline.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Backend API request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Incoming HTTP request latency (seconds), recorded by the server.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Project sync operation counts by outcome.
	ProjectSyncCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_sync_count",
			Help: "Total number of project sync operations",
		},
		[]string{"operation", "status"}, // operation: fetch, create, update, delete
	)

	// Database query latency (seconds), labeled by command tag.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"command"},
	)
)

// RecordAPIRequestDuration records one outgoing request.
func RecordAPIRequestDuration(method, path, status string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordHTTPRequestDuration records one served request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementProjectSync counts one sync operation outcome.
func IncrementProjectSync(operation, status string) {
	ProjectSyncCount.WithLabelValues(operation, status).Inc()
}

// RecordDBQueryDuration records one database query.
func RecordDBQueryDuration(command string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(command).Observe(duration.Seconds())
}
