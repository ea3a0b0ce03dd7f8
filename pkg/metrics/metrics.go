package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	// method, route, status_code
	HTTPRequestsTotal *prometheus.CounterVec

	// method, route
	HTTPRequestDuration *prometheus.HistogramVec

	// operation: lock, release, expire, sweep; outcome: success, validation, conflict, not_found, error
	SeatOperationsTotal *prometheus.CounterVec

	// seats moved per operation
	SeatsAffectedTotal *prometheus.CounterVec

	// transactions re-run after serialization failure or deadlock
	TxRetriesTotal prometheus.Counter
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		SeatOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seat_operations_total",
				Help: "Seat lock, release and expiry operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		SeatsAffectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seats_affected_total",
				Help: "Seats whose status changed, by operation",
			},
			[]string{"operation"},
		),
		TxRetriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "db_transaction_retries_total",
				Help: "Transactions retried after a serialization failure or deadlock",
			},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SeatOperationsTotal,
		m.SeatsAffectedTotal,
		m.TxRetriesTotal,
	)

	return m
}

func (m *Metrics) ObserveSeatOperation(operation, outcome string, seats int) {
	if m == nil {
		return
	}
	m.SeatOperationsTotal.WithLabelValues(operation, outcome).Inc()
	if seats > 0 {
		m.SeatsAffectedTotal.WithLabelValues(operation).Add(float64(seats))
	}
}

func (m *Metrics) ObserveTxRetry() {
	if m == nil {
		return
	}
	m.TxRetriesTotal.Inc()
}
