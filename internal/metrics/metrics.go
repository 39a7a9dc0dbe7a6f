// Package metrics exposes prometheus collectors for the state layer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	changes      *prometheus.CounterVec
	writes       *prometheus.CounterVec
	rehydrations *prometheus.CounterVec
}

// New registers the collectors on a dedicated registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devis",
			Name:      "store_changes_total",
			Help:      "In-memory mutations applied, by persisted record.",
		}, []string{"record"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devis",
			Name:      "persist_writes_total",
			Help:      "Snapshot writes to the storage adapter, by record and result.",
		}, []string{"record", "result"}),
		rehydrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devis",
			Name:      "rehydrations_total",
			Help:      "Start-up loads, by record and source (stored or seed).",
		}, []string{"record", "source"}),
	}
	reg.MustRegister(
		m.changes,
		m.writes,
		m.rehydrations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Change(record string) {
	if m == nil {
		return
	}
	m.changes.WithLabelValues(record).Inc()
}

func (m *Metrics) Write(record string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.writes.WithLabelValues(record, result).Inc()
}

func (m *Metrics) Rehydrate(record, source string) {
	if m == nil {
		return
	}
	m.rehydrations.WithLabelValues(record, source).Inc()
}
