// Package metrics holds the Prometheus collectors of the API server.
// Collectors register on the default registry, served at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route pattern and status",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uploads_total",
			Help: "Uploaded files by media type and outcome",
		},
		[]string{"type", "status"},
	)

	uploadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upload_bytes_total",
			Help: "Bytes written by successful uploads",
		},
		[]string{"type"},
	)

	fileCleanupFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "file_cleanup_failures_total",
		Help: "Media files that could not be removed after their record was deleted",
	})
)

// Upload outcomes.
const (
	UploadOK       = "ok"
	UploadRejected = "rejected"
	UploadFailed   = "failed"
)

// ObserveRequest records one served HTTP request. route is the matched mux
// pattern, which keeps label cardinality bounded.
func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveUpload records one file of an upload request.
func ObserveUpload(mediaType, status string, size int64) {
	if mediaType == "" {
		mediaType = "unknown"
	}
	uploadsTotal.WithLabelValues(mediaType, status).Inc()
	if status == UploadOK {
		uploadBytesTotal.WithLabelValues(mediaType).Add(float64(size))
	}
}

// FileCleanupFailed records a file that outlived its media record.
func FileCleanupFailed() {
	fileCleanupFailuresTotal.Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
