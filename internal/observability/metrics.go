package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	apiRequestsTotal  *prometheus.CounterVec
	apiLatencySeconds *prometheus.HistogramVec
	apiErrorsTotal    *prometheus.CounterVec

	uploadRequestsTotal  *prometheus.CounterVec
	uploadRejectedTotal  *prometheus.CounterVec
	uploadLatencySeconds prometheus.Histogram

	notificationsPublished *prometheus.CounterVec
	sseClientsActive       prometheus.Gauge

	ideasSubmittedTotal     *prometheus.CounterVec
	evaluationsSubmitted    prometheus.Counter
	searchRequestsTotal     prometheus.Counter
	dashboardCacheHitsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "afkar_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "afkar_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "afkar_errors_total",
			Help: "Total number of error responses returned.",
		}, []string{"method", "route", "status"})

		uploadRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "afkar_upload_requests_total",
			Help: "Total number of accepted file uploads.",
		}, []string{"kind"})

		uploadRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "afkar_upload_rejected_total",
			Help: "Total number of rejected file uploads by reason.",
		}, []string{"reason"})

		uploadLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "afkar_upload_latency_seconds",
			Help:    "Latency distribution for file uploads.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		notificationsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "afkar_notifications_published_total",
			Help: "Total number of notifications published by type.",
		}, []string{"type"})

		sseClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "afkar_sse_clients_active",
			Help: "Number of currently connected SSE notification streams.",
		})

		ideasSubmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "afkar_ideas_submitted_total",
			Help: "Total number of ideas submitted by category.",
		}, []string{"category"})

		evaluationsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "afkar_evaluations_submitted_total",
			Help: "Total number of completed evaluations.",
		})

		searchRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "afkar_search_requests_total",
			Help: "Total number of idea search queries.",
		})

		dashboardCacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "afkar_dashboard_cache_total",
			Help: "Dashboard overview reads by cache outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(
			apiRequestsTotal, apiLatencySeconds, apiErrorsTotal,
			uploadRequestsTotal, uploadRejectedTotal, uploadLatencySeconds,
			notificationsPublished, sseClientsActive,
			ideasSubmittedTotal, evaluationsSubmitted, searchRequestsTotal,
			dashboardCacheHitsTotal,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// UploadRequests exposes the counter for accepted uploads.
func UploadRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRequestsTotal
}

// UploadRejected exposes the counter for rejected uploads.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejectedTotal
}

// UploadLatency exposes the upload latency histogram.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatencySeconds
}

// NotificationsPublishedTotal exposes the notification publish counter.
func NotificationsPublishedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsPublished
}

// SSEClientsActive exposes the active SSE client gauge.
func SSEClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return sseClientsActive
}

// IdeasSubmittedTotal exposes the idea submission counter.
func IdeasSubmittedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return ideasSubmittedTotal
}

// EvaluationsSubmitted exposes the completed evaluation counter.
func EvaluationsSubmitted() prometheus.Counter {
	RegisterMetrics()
	return evaluationsSubmitted
}

// SearchRequestsTotal exposes the idea search counter.
func SearchRequestsTotal() prometheus.Counter {
	RegisterMetrics()
	return searchRequestsTotal
}

// DashboardCacheTotal exposes the dashboard cache outcome counter.
func DashboardCacheTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return dashboardCacheHitsTotal
}
