// Package metrics exposes Prometheus instrumentation for the generation
// pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline's collectors on a private registry so embedding
// applications never collide with it.
type Metrics struct {
	registry    *prometheus.Registry
	generations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "imagine",
			Name:      "generations_total",
			Help:      "Completed generation attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "imagine",
			Name:      "generation_duration_seconds",
			Help:      "Wall time of generation attempts by provider.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}, []string{"provider"}),
	}
	m.registry.MustRegister(
		m.generations,
		m.duration,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveGeneration records one completed attempt. Outcome is "success" or
// the failure's error code; provider may be empty when no provider was
// resolved. A nonpositive elapsed counts the attempt but skips the duration
/// histogram: batch items arrive without individual timings, and a flood of
// zero samples would drag the latency quantiles down.
func (m *Metrics) ObserveGeneration(provider, outcome string, elapsed time.Duration) {
	if provider == "" {
		provider = "none"
	}
	m.generations.WithLabelValues(provider, outcome).Inc()
	if elapsed > 0 {
		m.duration.WithLabelValues(provider).Observe(elapsed.Seconds())
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
