// Package metrics holds the Prometheus collectors for report rendering and
// data-source queries. A nil *Metrics is valid and records nothing.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg           *prometheus.Registry
	renders       *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
}

func New() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	renders := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_atlas_report_renders_total",
			Help: "Report pipeline runs, partitioned by report and outcome.",
		},
		[]string{"report", "outcome"},
	)
	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stock_atlas_query_duration_seconds",
			Help:    "Duration of data-source reads, partitioned by query and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query", "status"},
	)

	for _, c := range []prometheus.Collector{
		renders,
		queryDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register collector: %w", err)
		}
	}

	return &Metrics{reg: reg, renders: renders, queryDuration: queryDuration}, nil
}

// RecordRender counts one pipeline run. Outcome is "rendered" or a banner kind.
func (m *Metrics) RecordRender(report, outcome string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(report, outcome).Inc()
}

func (m *Metrics) RecordQuery(query string, err error, d time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.queryDuration.WithLabelValues(query, status).Observe(d.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
