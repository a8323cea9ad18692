package prometheus

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthErrorsCounter prometheus.CounterVec
	LoginCounter      prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Property metrics
	PropertyOperationsCounter prometheus.CounterVec

	// Task queue metrics
	TaskEnqueuedCounter prometheus.CounterVec

	initOnce sync.Once
)

// InitMetrics initializes Prometheus metrics with the configured prefix.
// Registration against the default registry happens once per process.
func InitMetrics(prefix string) {
	initOnce.Do(func() {
		HttpRequestsTotal = *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		)

		HttpRequestDuration = *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		AuthErrorsCounter = *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_auth_errors_total",
				Help: "Total number of authentication errors",
			},
			[]string{"reason"},
		)

		LoginCounter = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_login_attempts_total",
				Help: "Total number of login attempts",
			},
		)

		DbOperationDuration = *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		)

		PropertyOperationsCounter = *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_property_operations_total",
				Help: "Total number of property operations",
			},
			[]string{"operation"},
		)

		TaskEnqueuedCounter = *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_tasks_enqueued_total",
				Help: "Total number of background tasks enqueued",
			},
			[]string{"task"},
		)
	})
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthError increments the counter for a specific auth failure reason
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordPropertyOperation increments the counter for property operations
func RecordPropertyOperation(operation string) {
	PropertyOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordTaskEnqueued increments the counter for enqueued background tasks
func RecordTaskEnqueued(task string) {
	TaskEnqueuedCounter.WithLabelValues(task).Inc()
}
