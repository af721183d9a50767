// Package metrics provides Prometheus metrics collection for contentgraph.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for contentgraph.
type Collector struct {
	// Build metrics
	BuildsTotal   prometheus.Counter
	BuildErrors   prometheus.Counter
	BuildDuration prometheus.Histogram
	TypesEmitted  prometheus.Gauge
	UnionsEmitted prometheus.Gauge

	// Admin server metrics
	RequestsTotal *prometheus.CounterVec

	// Node index metrics
	NodesIndexed prometheus.Gauge
}

// New creates a new metrics collector with all metrics registered on reg.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		BuildsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "contentgraph",
			Name:      "builds_total",
			Help:      "Total number of schema build passes",
		}),
		BuildErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "contentgraph",
			Name:      "build_errors_total",
			Help:      "Total number of failed schema build passes",
		}),
		BuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "contentgraph",
			Name:      "build_duration_seconds",
			Help:      "Schema build duration in seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}),
		TypesEmitted: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "contentgraph",
			Name:      "types_emitted",
			Help:      "Number of types declared by the last successful build",
		}),
		UnionsEmitted: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "contentgraph",
			Name:      "unions_emitted",
			Help:      "Number of union types declared by the last successful build",
		}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contentgraph",
			Name:      "requests_total",
			Help:      "Total number of admin server requests",
		}, []string{"path", "status"}),
		NodesIndexed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "contentgraph",
			Name:      "nodes_indexed",
			Help:      "Number of nodes in the node index",
		}),
	}
}
