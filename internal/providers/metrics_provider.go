package providers

import (
	"kinstore/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(operation string, duration time.Duration)
	SetRecordsTotal(resource string, count int)
	IncUploadsTotal(kind string, accepted bool)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration *prometheus.HistogramVec
	recordsTotal        *prometheus.GaugeVec
	uploadsTotal        *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(operation string, duration time.Duration) {
	m.persistenceDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *MetricsProvider) SetRecordsTotal(resource string, count int) {
	m.recordsTotal.WithLabelValues(resource).Set(float64(count))
}

func (m *MetricsProvider) IncUploadsTotal(kind string, accepted bool) {
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	m.uploadsTotal.WithLabelValues(kind, result).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kinstore_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kinstore_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kinstore_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kinstore_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kinstore_persistence_duration_seconds",
			Help:    "Duration of document reads, writes and snapshots in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),

		recordsTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kinstore_records_total",
			Help: "Number of records in each resource after the last write",
		}, []string{"resource"}),

		uploadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kinstore_uploads_total",
			Help: "Media uploads by kind and outcome",
		}, []string{"kind", "result"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                     {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncCacheHits()                                        {}
func (n *noopMetrics) IncCacheMisses()                                      {}
func (n *noopMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) SetRecordsTotal(_ string, _ int)                      {}
func (n *noopMetrics) IncUploadsTotal(_ string, _ bool)                     {}
