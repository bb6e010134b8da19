package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "apportion"

// Outcome labels for ObserveApportionment.
const (
	OutcomeOK       = "ok"
	OutcomeInexact  = "inexact"
	OutcomeRejected = "rejected"
)

// Recorder receives one observation per apportionment call.
type Recorder interface {
	ObserveApportionment(method, outcome string, elapsed time.Duration)
}

// Nop discards every observation.
type Nop struct{}

// ObserveApportionment implements Recorder.
func (Nop) ObserveApportionment(string, string, time.Duration) {}

// Prometheus implements Recorder on a dedicated registry, so that several
// instances can coexist in one process (tests, embedded servers).
type Prometheus struct {
	registry *prometheus.Registry

	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus creates a collector registered on a fresh registry that also
// exports Go runtime metrics. An empty namespace defaults to "apportion".
func NewPrometheus(namespace string) *Prometheus {
	if namespace == "" {
		namespace = defaultNamespace
	}

	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Apportionment calls by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "duration_seconds",
			Help:      "Time spent computing an apportionment, by method.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"method"}),
	}

	p.registry.MustRegister(
		p.calls,
		p.duration,
		collectors.NewGoCollector(),
	)
	return p
}

// ObserveApportionment implements Recorder.
func (p *Prometheus) ObserveApportionment(method, outcome string, elapsed time.Duration) {
	p.calls.WithLabelValues(method, outcome).Inc()
	if outcome != OutcomeRejected {
		p.duration.WithLabelValues(method).Observe(elapsed.Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}
