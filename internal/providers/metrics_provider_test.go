package providers

import (
	"kinstore/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useFreshRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	prevReg, prevGatherer := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGatherer
	})
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/api/offers", 200)
	m.ObserveRequestDuration("/api/offers", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration("write", time.Millisecond)
	m.SetRecordsTotal("offers", 10)
	m.IncUploadsTotal("video", true)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useFreshRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_Counters(t *testing.T) {
	useFreshRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	mp := m.(*MetricsProvider)

	m.IncRequestsTotal("/api/offers", 200)
	m.IncRequestsTotal("/api/offers", 201)
	m.IncRequestsTotal("/api/offers", 404)
	m.ObserveRequestDuration("/api/offers", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncCacheMisses()
	m.ObservePersistenceDuration("read", 100*time.Microsecond)
	m.SetRecordsTotal("offers", 42)
	m.IncUploadsTotal("image", false)

	assert.Equal(t, 2.0, promtest.ToFloat64(mp.requestsTotal.WithLabelValues("/api/offers", "2xx")))
	assert.Equal(t, 1.0, promtest.ToFloat64(mp.requestsTotal.WithLabelValues("/api/offers", "4xx")))
	assert.Equal(t, 1.0, promtest.ToFloat64(mp.cacheHits))
	assert.Equal(t, 2.0, promtest.ToFloat64(mp.cacheMisses))
	assert.Equal(t, 42.0, promtest.ToFloat64(mp.recordsTotal.WithLabelValues("offers")))
	assert.Equal(t, 1.0, promtest.ToFloat64(mp.uploadsTotal.WithLabelValues("image", "rejected")))

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "kinstore_persistence_duration_seconds")
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
