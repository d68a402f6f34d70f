// Package metrics exposes the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	operations      *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New builds the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gymtrack_operations_total",
				Help: "Service operations by outcome",
			},
			[]string{"service", "operation", "result"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gymtrack_http_request_duration_seconds",
				Help:    "HTTP request latency by route and status",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	m.registry.MustRegister(m.operations, m.requestDuration)
	return m
}

// RecordOperation counts one service operation outcome. The result label is
// "success" or an error kind.
func (m *Metrics) RecordOperation(service, operation, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(service, operation, result).Inc()
}

// ObserveRequest records one HTTP request duration in seconds.
func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, status).Observe(seconds)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
