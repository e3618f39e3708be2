package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kds_http_requests_total",
			Help: "HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kds_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kds_line_transitions_total",
			Help: "Successful line transitions by action",
		},
		[]string{"action"},
	)

	TransitionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kds_line_transitions_rejected_total",
			Help: "Rejected line transitions by action",
		},
		[]string{"action"},
	)

	// Event-log writes never fail a transition; this counter is the
	// observability channel for those losses.
	EventWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kds_event_write_failures_total",
			Help: "Audit event writes that failed after a successful transition",
		},
	)

	PrintDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kds_print_dispatches_total",
			Help: "Chit print dispatches by outcome",
		},
		[]string{"outcome"},
	)

	BoardFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kds_board_fetches_total",
			Help: "Board snapshot fetches by monitor display type",
		},
		[]string{"type"},
	)
)
