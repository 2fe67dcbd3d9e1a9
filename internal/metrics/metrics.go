// Package metrics exposes Prometheus collectors for the alert feed and rescue
// recipe matching.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erazemk/shramba/internal/refresh"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	refreshRuns     *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	lastRefresh     prometheus.Gauge
	alerts          *prometheus.GaugeVec
	rescueMatches   prometheus.Histogram
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		refreshRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shramba_refresh_runs_total",
				Help: "Alert feed refresh runs by outcome",
			},
			[]string{"result"},
		),
		refreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shramba_refresh_duration_seconds",
				Help:    "Time spent reading inventory and generating alerts",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
		lastRefresh: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "shramba_refresh_last_success_timestamp_seconds",
				Help: "Unix time of the last successful refresh",
			},
		),
		alerts: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "shramba_alerts",
				Help: "Alerts in the current feed by urgency",
			},
			[]string{"urgency"},
		),
		rescueMatches: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shramba_rescue_recipes",
				Help:    "Rescue recipes returned per request",
				Buckets: prometheus.LinearBuckets(0, 2, 10),
			},
		),
	}

	m.registry.MustRegister(m.refreshRuns, m.refreshDuration, m.lastRefresh, m.alerts, m.rescueMatches)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RunCompleted implements refresh.Observer.
func (m *Metrics) RunCompleted(elapsed time.Duration, r refresh.Result) {
	m.refreshRuns.WithLabelValues("success").Inc()
	m.refreshDuration.Observe(elapsed.Seconds())
	m.lastRefresh.Set(float64(r.GeneratedAt.Unix()))
	m.alerts.WithLabelValues("high").Set(float64(r.Summary.High))
	m.alerts.WithLabelValues("medium").Set(float64(r.Summary.Medium))
}

// RunFailed implements refresh.Observer.
func (m *Metrics) RunFailed(elapsed time.Duration, _ error) {
	m.refreshRuns.WithLabelValues("error").Inc()
	m.refreshDuration.Observe(elapsed.Seconds())
}

// RunSkipped implements refresh.Observer.
func (m *Metrics) RunSkipped() {
	m.refreshRuns.WithLabelValues("skipped").Inc()
}

// ObserveRescue records how many rescue recipes a request returned.
func (m *Metrics) ObserveRescue(n int) {
	m.rescueMatches.Observe(float64(n))
}
