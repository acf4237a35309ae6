// Package metrics exposes analysis counters for Prometheus scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for AnalysesTotal.
const (
	OutcomeOK        = "ok"
	OutcomeDegraded  = "degraded"
	OutcomeMalformed = "malformed"
	OutcomeError     = "error"
	OutcomeRejected  = "rejected"
)

type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	ArchiveRecords   prometheus.Gauge
}

// New registers the collectors on a private registry, so several instances
// can coexist in tests.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mediascribe_analyses_total",
			Help: "Analysis requests by outcome.",
		}, []string{"outcome"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mediascribe_analysis_duration_seconds",
			Help:    "Wall time of model calls.",
			Buckets: []float64{1, 2.5, 5, 10, 20, 40, 80, 160, 320},
		}),
		ArchiveRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mediascribe_archive_records",
			Help: "Records in the archive after the last write.",
		}),
	}
	m.registry.MustRegister(
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.ArchiveRecords,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveAnalysis records one finished model call.
func (m *Metrics) ObserveAnalysis(outcome string, took time.Duration) {
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
	m.AnalysisDuration.Observe(took.Seconds())
}

// Handler returns an http.Handler for Prometheus scraping
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
