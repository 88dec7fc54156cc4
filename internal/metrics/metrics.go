// Package metrics exposes backend fetch outcomes and connectivity as
// Prometheus metrics on a private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/backyonatan-alt/hullwatch/backend/internal/status"
)

type Metrics struct {
	registry  *prometheus.Registry
	fetches   *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	connected prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hullwatch_fetch_total",
			Help: "Backend fetches by resource and outcome.",
		}, []string{"resource", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hullwatch_fetch_duration_seconds",
			Help:    "Backend fetch latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource"}),
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hullwatch_api_connected",
			Help: "Backend connectivity: 1 connected, 0 disconnected, -1 unknown.",
		}),
	}
	m.connected.Set(-1)

	m.registry.MustRegister(
		m.fetches,
		m.duration,
		m.connected,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveFetch records one completed backend call.
func (m *Metrics) ObserveFetch(resource, outcome string, elapsed time.Duration) {
	m.fetches.WithLabelValues(resource, outcome).Inc()
	m.duration.WithLabelValues(resource).Observe(elapsed.Seconds())
}

// Notify implements status.Listener so the gauge follows the publisher.
func (m *Metrics) Notify(s status.Status) {
	switch s {
	case status.Connected:
		m.connected.Set(1)
	case status.Disconnected:
		m.connected.Set(0)
	default:
		m.connected.Set(-1)
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
