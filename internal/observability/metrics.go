package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service. A nil
// *Metrics is valid and records nothing, so library code never has to
// guard its calls.
type Metrics struct {
	ActiveSessions     prometheus.Gauge
	Turns              *prometheus.CounterVec
	Interruptions      prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	Bookings           *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of active conversation sessions.",
		}),
		Turns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Processed turns by outcome.",
		}, []string{"outcome"}),
		Interruptions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interruptions_total",
			Help:      "Facility-question interruptions during slot collection.",
		}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Slot validation failures by slot name.",
		}, []string{"slot"}),
		Bookings: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Booking lifecycle events by action.",
		}, []string{"action"}),
	}
}

func (m *Metrics) TurnOutcome(outcome string) {
	if m == nil {
		return
	}
	m.Turns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) InterruptionStarted() {
	if m == nil {
		return
	}
	m.Interruptions.Inc()
}

func (m *Metrics) ValidationFailure(slot string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(slot).Inc()
}

func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.Bookings.WithLabelValues("created").Inc()
}

func (m *Metrics) BookingChanged() {
	if m == nil {
		return
	}
	m.Bookings.WithLabelValues("changed").Inc()
}

func (m *Metrics) BookingCancelled() {
	if m == nil {
		return
	}
	m.Bookings.WithLabelValues("cancelled").Inc()
}

func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
