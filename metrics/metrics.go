// Package metrics exposes Prometheus collectors for session validation.
package metrics

import (
	"net/http"
	"time"

	"sessionguard/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sessionguard"

// Metrics holds the validation collectors and the registry they are registered in.
type Metrics struct {
	registry           *prometheus.Registry
	validationsTotal   *prometheus.CounterVec
	validationDuration prometheus.Histogram
}

// New creates the collectors on a fresh registry together with the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Total number of session token validations by outcome",
			},
			[]string{"outcome"},
		),
		validationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_duration_seconds",
				Help:      "Duration of identity provider validation calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
	m.registry.MustRegister(
		m.validationsTotal,
		m.validationDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, o := range domain.Outcomes {
		m.validationsTotal.WithLabelValues(string(o))
	}
	return m
}

// RecordValidation implements interfaces.ValidationRecorder. A zero elapsed means the identity
// provider was not called (bypass or empty token) and is not observed.
func (m *Metrics) RecordValidation(outcome domain.ValidationOutcome, elapsed time.Duration) {
	m.validationsTotal.WithLabelValues(string(outcome)).Inc()
	if elapsed > 0 {
		m.validationDuration.Observe(elapsed.Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
