package prometheus

import (
	"time"

	"restaurant-admin-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthErrorsCounter prometheus.Counter

	// Tenant context metrics
	TenantContextMissingCounter prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Domain operation metrics
	StaffOperationsCounter prometheus.CounterVec
	LeaveOperationsCounter prometheus.CounterVec
	MenuOperationsCounter  prometheus.CounterVec

	// Image upload metrics
	ImageUploadsCounter       prometheus.CounterVec
	ImageUploadDuration       prometheus.Histogram
	ImageUploadRejectsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(appConfig *config.Config) {
	prefix := appConfig.Metrics.Prefix

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

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	TenantContextMissingCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_tenant_context_missing_total",
			Help: "Total number of requests without a resolvable restaurant",
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

	StaffOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_staff_operations_total",
			Help: "Total number of staff roster operations",
		},
		[]string{"operation"},
	)

	LeaveOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_leave_operations_total",
			Help: "Total number of leave request operations",
		},
		[]string{"operation"},
	)

	MenuOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_menu_operations_total",
			Help: "Total number of menu item operations",
		},
		[]string{"operation"},
	)

	ImageUploadsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_image_uploads_total",
			Help: "Total number of image upload attempts by outcome",
		},
		[]string{"outcome"},
	)

	ImageUploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_image_upload_duration_seconds",
			Help:    "Duration of external image host requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ImageUploadRejectsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_image_upload_rejects_total",
			Help: "Total number of uploads rejected before any network call",
		},
		[]string{"reason"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordStaffOperation increments the counter for staff roster operations
func RecordStaffOperation(operation string) {
	StaffOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordLeaveOperation increments the counter for leave request operations
func RecordLeaveOperation(operation string) {
	LeaveOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordMenuOperation increments the counter for menu item operations
func RecordMenuOperation(operation string) {
	MenuOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordImageUpload increments the upload counter with the given outcome
func RecordImageUpload(outcome string) {
	ImageUploadsCounter.WithLabelValues(outcome).Inc()
}

// RecordImageUploadReject increments the pre-flight rejection counter
func RecordImageUploadReject(reason string) {
	ImageUploadRejectsCounter.WithLabelValues(reason).Inc()
}
