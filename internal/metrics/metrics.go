// Package metrics holds the Prometheus collectors of the service.
//
// Collectors are registered on an explicit registry owned by Metrics rather
// than the global default one, so several instances can coexist in tests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

// Metrics groups every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
	filterDuration      *prometheus.HistogramVec
	filterResults       *prometheus.HistogramVec
	jobsTotal           *prometheus.CounterVec
	contactMessages     prometheus.Counter
	visits              *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path", "status"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		filterDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "catalog_filter_duration_seconds",
				Help:      "Time spent filtering a catalog",
				Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
			},
			[]string{"catalog"},
		),
		filterResults: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "catalog_filter_results",
				Help:      "Number of records returned by a catalog filter",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"catalog"},
		),
		jobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "jobs_total",
				Help:      "Background jobs by type and final status",
			},
			[]string{"type", "status"},
		),
		contactMessages: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "contact_messages_total",
				Help:      "Contact messages accepted",
			},
		),
		visits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "page_visits_total",
				Help:      "Tracked page visits",
			},
			[]string{"path"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestDuration,
		m.httpRequestsTotal,
		m.filterDuration,
		m.filterResults,
		m.jobsTotal,
		m.contactMessages,
		m.visits,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveFilter records one catalog filter run.
func (m *Metrics) ObserveFilter(catalog string, d time.Duration, results int) {
	if m == nil {
		return
	}
	m.filterDuration.WithLabelValues(catalog).Observe(d.Seconds())
	m.filterResults.WithLabelValues(catalog).Observe(float64(results))
}

// JobFinished counts a job that reached a terminal status.
func (m *Metrics) JobFinished(jobType, status string) {
	if m == nil {
		return
	}
	m.jobsTotal.WithLabelValues(jobType, status).Inc()
}

// ContactReceived counts an accepted contact message.
func (m *Metrics) ContactReceived() {
	if m == nil {
		return
	}
	m.contactMessages.Inc()
}

// VisitTracked counts a tracked page visit under its route pattern.
func (m *Metrics) VisitTracked(route string) {
	if m == nil {
		return
	}
	m.visits.WithLabelValues(route).Inc()
}
