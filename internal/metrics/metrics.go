// Package metrics exposes Prometheus collectors for analyses and HTTP traffic.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pitchside/internal/services"
)

const namespace = "pitchside"

// Outcome labels.
const (
	OutcomeOK         = "ok"
	OutcomeValidation = "validation"
	OutcomeTimeout    = "timeout"
	OutcomeError      = "error"
)

// Metrics owns a private registry so tests and embedded servers do not
// collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	analyses         *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	rows             *prometheus.CounterVec
	highlights       *prometheus.CounterVec
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

// New creates and registers all collectors, plus the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.analyses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Commentary analyses by operation, language, and outcome",
	}, []string{"operation", "language", "outcome"})
	m.analysisDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Time spent analyzing commentary",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
	}, []string{"operation"})
	m.rows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "timeline_rows_total",
		Help:      "Timeline rows produced",
	}, []string{"language"})
	m.highlights = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "highlights_total",
		Help:      "Highlights extracted",
	}, []string{"language"})
	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route, and status code",
	}, []string{"method", "route", "status"})
	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	m.registry.MustRegister(
		m.analyses, m.analysisDuration, m.rows, m.highlights,
		m.requests, m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveAnalysis records one analysis run.
func (m *Metrics) ObserveAnalysis(operation, language string, rows, highlights int, elapsed time.Duration, err error) {
	if language == "" {
		language = "unknown"
	}
	m.analyses.WithLabelValues(operation, language, Outcome(err)).Inc()
	m.analysisDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		return
	}
	m.rows.WithLabelValues(language).Add(float64(rows))
	m.highlights.WithLabelValues(language).Add(float64(highlights))
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Outcome classifies an error for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, services.ErrValidation):
		return OutcomeValidation
	case errors.Is(err, services.ErrTimeout):
		return OutcomeTimeout
	default:
		return OutcomeError
	}
}
