// Package metrics counts the client-side events worth watching on a till: low-stock
// warnings, rejected API calls and forced logouts. Collectors are registered on the
// registry the caller provides, never the global one.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Low-stock warning sources
const (
	SourceSale       = "sale"
	SourceItemUpdate = "item_update"
	SourceItemCreate = "item_create"
)

// API failure kinds
const (
	FailureUnauthorized = "unauthorized"
	FailureOperation    = "operation"
)

type Metrics struct {
	registry         *prometheus.Registry
	lowStockWarnings *prometheus.CounterVec
	apiFailures      *prometheus.CounterVec
	logouts          *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lowStockWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "starose_low_stock_warnings_total",
			Help: "Warnings raised because an item crossed into low stock.",
		}, []string{"source"}),
		apiFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "starose_api_failures_total",
			Help: "API calls that failed, by operation and failure kind.",
		}, []string{"operation", "kind"}),
		logouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "starose_logouts_total",
			Help: "Session logouts, by reason.",
		}, []string{"reason"}),
	}
	m.registry.MustRegister(m.lowStockWarnings, m.apiFailures, m.logouts)
	return m
}

// The recording methods are no-ops on a nil *Metrics so callers can run without metrics.

func (m *Metrics) LowStockWarning(source string) {
	if m == nil {
		return
	}
	m.lowStockWarnings.WithLabelValues(source).Inc()
}

func (m *Metrics) APIFailure(operation, kind string) {
	if m == nil {
		return
	}
	m.apiFailures.WithLabelValues(operation, kind).Inc()
}

func (m *Metrics) Logout(reason string) {
	if m == nil {
		return
	}
	m.logouts.WithLabelValues(reason).Inc()
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
