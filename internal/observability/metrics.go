package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "admin_gateway", Name: "order_transitions_total", Help: "Successful order transitions by target status"},
		[]string{"to"},
	)
	AssignmentFailures = promauto.NewCounter(prometheus.CounterOpts{Namespace: "admin_gateway", Name: "assignment_failures_total", Help: "Rider assignments rejected by the backend"})
	NotificationsSent  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "admin_gateway", Name: "notifications_sent_total", Help: "Operator notifications fanned out"})

	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "admin_gateway", Name: "backend_requests_total", Help: "Requests issued to the delivery backend"},
		[]string{"op", "outcome"},
	)
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "admin_gateway",
			Name:      "backend_request_duration_seconds",
			Help:      "Delivery backend request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "admin_gateway", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "admin_gateway",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
