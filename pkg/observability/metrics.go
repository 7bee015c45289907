package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Failure reasons recorded by ObserveFailure.
const (
	ReasonUnhashable = "unhashable"
	ReasonSource     = "source"
)

// Metrics groups the collectors exported by this module.
type Metrics struct {
	Assigned prometheus.Counter
	Reused   prometheus.Counter
	Failures *prometheus.CounterVec
	Sessions prometheus.Gauge
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Assigned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "automata_rename_assigned_total",
			Help: "Identifiers that received a new integer",
		}),
		Reused: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "automata_rename_reused_total",
			Help: "Renaming calls answered from a session memo",
		}),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_rename_failures_total",
				Help: "Renaming calls that failed",
			},
			[]string{"reason"},
		),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "automata_sessions_open",
			Help: "Renaming sessions currently open in a session manager",
		}),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Assigned, m.Reused, m.Failures, m.Sessions, m.Requests, m.Latency)
	}
	return m
}

func (m *Metrics) ObserveAssigned() {
	if m != nil {
		m.Assigned.Inc()
	}
}

func (m *Metrics) ObserveReused() {
	if m != nil {
		m.Reused.Inc()
	}
}

func (m *Metrics) ObserveFailure(reason string) {
	if m != nil {
		m.Failures.WithLabelValues(reason).Inc()
	}
}

// SessionOpened and SessionClosed track the open-sessions gauge.
func (m *Metrics) SessionOpened() {
	if m != nil {
		m.Sessions.Inc()
	}
}

func (m *Metrics) SessionClosed() {
	if m != nil {
		m.Sessions.Dec()
	}
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(route, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(route, code).Inc()
	m.Latency.WithLabelValues(route).Observe(elapsed.Seconds())
}
