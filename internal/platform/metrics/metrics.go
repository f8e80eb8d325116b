// Package metrics holds the Prometheus instruments of the adoption service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var searchDurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics groups the instruments recorded by the application layer.
type Metrics struct {
	TransitionsTotal        *prometheus.CounterVec
	WorkflowFailuresTotal   *prometheus.CounterVec
	PublishFailuresTotal    *prometheus.CounterVec
	TransitionsAuditedTotal *prometheus.CounterVec
	CatalogSearchDuration   prometheus.Histogram
	CatalogSearchResultSize prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New creates the instruments and registers them on reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		TransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adoption_status_transitions_total",
			Help: "Status transitions applied, by entity and source/target status.",
		}, []string{"entity", "from", "to"}),
		WorkflowFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adoption_workflow_failures_total",
			Help: "Workflow operations that failed, by operation and error kind.",
		}, []string{"operation", "kind"}),
		PublishFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adoption_event_publish_failures_total",
			Help: "Committed transitions whose event could not be published, by entity.",
		}, []string{"entity"}),
		TransitionsAuditedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adoption_transitions_audited_total",
			Help: "Transition events read back from the event topic, by entity and target status.",
		}, []string{"entity", "to"}),
		CatalogSearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "adoption_catalog_search_duration_seconds",
			Help:    "Catalog search latency in seconds.",
			Buckets: searchDurationBuckets,
		}),
		CatalogSearchResultSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "adoption_catalog_search_results",
			Help:    "Number of pets returned per catalog search page.",
			Buckets: prometheus.LinearBuckets(0, 5, 11),
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.TransitionsTotal,
		m.WorkflowFailuresTotal,
		m.PublishFailuresTotal,
		m.TransitionsAuditedTotal,
		m.CatalogSearchDuration,
		m.CatalogSearchResultSize,
	)
	return m
}

// NewNop returns instruments registered on a private registry, for tests and
// tools that do not expose metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
