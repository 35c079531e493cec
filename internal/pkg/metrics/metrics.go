// Package metrics holds the prometheus instruments of the lifecycle service.
// All methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for command results.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics provides observability for the request lifecycle.
type Metrics struct {
	// Command results by command name and outcome
	CommandOutcome *prometheus.CounterVec

	// Command latency by command name
	CommandLatency *prometheus.HistogramVec

	// Committed status transitions
	StatusTransitions *prometheus.CounterVec

	// Notification publish attempts by topic and outcome
	EventsPublished *prometheus.CounterVec

	// Open requests past their deadline at the last scan
	OverdueRequests prometheus.Gauge
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a Metrics instance registered with reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CommandOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifebank_command_outcomes_total",
			Help: "Total lifecycle command results by command and outcome",
		}, []string{"command", "outcome"}),

		CommandLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lifebank_command_duration_seconds",
			Help:    "Duration of lifecycle commands including the database transaction",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"command"}),

		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifebank_status_transitions_total",
			Help: "Committed blood request status transitions",
		}, []string{"from", "to"}),

		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifebank_events_published_total",
			Help: "Lifecycle notifications handed to the publisher by topic and outcome",
		}, []string{"topic", "outcome"}),

		OverdueRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lifebank_overdue_requests",
			Help: "Open blood requests past their required-by time at the last scan",
		}),
	}
}

// ObserveCommand records the result and duration of a command.
func (m *Metrics) ObserveCommand(command string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.CommandOutcome.WithLabelValues(command, outcome).Inc()
	m.CommandLatency.WithLabelValues(command).Observe(d.Seconds())
}

// IncrementTransition records a committed status transition.
func (m *Metrics) IncrementTransition(from, to string) {
	if m != nil {
		m.StatusTransitions.WithLabelValues(from, to).Inc()
	}
}

// IncrementPublished records a publish attempt.
func (m *Metrics) IncrementPublished(topic string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.EventsPublished.WithLabelValues(topic, outcome).Inc()
}

// SetOverdue records the size of the last overdue scan.
func (m *Metrics) SetOverdue(n int) {
	if m != nil {
		m.OverdueRequests.Set(float64(n))
	}
}
