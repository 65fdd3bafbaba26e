package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all prometheus metrics for index builds and lookups.
// A host application attaches one registry per exposition endpoint and
// passes it where instrumentation is wanted; nothing is registered
// globally.
type Registry struct {
	registry *prometheus.Registry

	BuildsTotal    prometheus.Counter
	BuildDuration  prometheus.Histogram
	BuildBytes     prometheus.Histogram
	IndexSizeBytes prometheus.Gauge
	LookupsTotal   *prometheus.CounterVec
}

// NewRegistry creates a metrics registry with all collectors registered
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.BuildsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "hamtindex_builds_total",
			Help: "Total number of index builds",
		},
	)

	r.BuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hamtindex_build_duration_seconds",
			Help:    "Index build duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	r.BuildBytes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hamtindex_build_bytes",
			Help:    "Size of built index buffers in bytes",
			Buckets: prometheus.ExponentialBuckets(64, 4, 12),
		},
	)

	r.IndexSizeBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "hamtindex_index_size_bytes",
			Help: "Size of the most recently opened index in bytes",
		},
	)

	r.LookupsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "hamtindex_lookups_total",
			Help: "Total number of point lookups",
		},
		[]string{"status"},
	)

	return r
}

// Registry returns the underlying prometheus registry for exposition
func (r *Registry) Registry() *prometheus.Registry {
	return r.registry
}

// RecordBuild records a completed index build
func (r *Registry) RecordBuild(bytes int, duration time.Duration) {
	r.BuildsTotal.Inc()
	r.BuildDuration.Observe(duration.Seconds())
	r.BuildBytes.Observe(float64(bytes))
}

// RecordOpen records the size of an opened index
func (r *Registry) RecordOpen(bytes int) {
	r.IndexSizeBytes.Set(float64(bytes))
}

// RecordLookup records a point lookup and its outcome
func (r *Registry) RecordLookup(hit bool) {
	if hit {
		r.LookupsTotal.WithLabelValues("hit").Inc()
	} else {
		r.LookupsTotal.WithLabelValues("miss").Inc()
	}
}
