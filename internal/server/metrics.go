package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg *prometheus.Registry

	sessionsActive prometheus.Gauge
	sessionsOpened prometheus.Counter
	gestures       *prometheus.CounterVec
	events         *prometheus.CounterVec
}

// NewMetrics registers the feed metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		sessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "feedmap_sessions_active",
			Help: "Feed sessions currently open",
		}),
		sessionsOpened: f.NewCounter(prometheus.CounterOpts{
			Name: "feedmap_sessions_opened_total",
			Help: "Feed sessions opened",
		}),
		gestures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "feedmap_gestures_total",
			Help: "Gesture events by input channel and outcome",
		}, []string{"channel", "outcome"}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Name: "feedmap_events_total",
			Help: "Outbound feed events by type",
		}, []string{"type"}),
	}
}

func (m *Metrics) sessionOpened() {
	m.sessionsOpened.Inc()
	m.sessionsActive.Inc()
}

func (m *Metrics) sessionClosed() {
	m.sessionsActive.Dec()
}

func (m *Metrics) gesture(channel, outcome string) {
	m.gestures.WithLabelValues(channel, outcome).Inc()
}

func (m *Metrics) event(typ string) {
	m.events.WithLabelValues(typ).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
