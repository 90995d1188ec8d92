package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialhub_http_requests_total",
			Help: "Total number of inbound HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialhub_upstream_requests_total",
			Help: "Total number of outbound calls to third-party providers",
		},
		[]string{"provider", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialhub_upstream_request_duration_seconds",
			Help:    "Duration of outbound provider calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	DemoFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialhub_demo_fallbacks_total",
			Help: "Responses served from deterministic demo data",
		},
		[]string{"feature"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialhub_cache_lookups_total",
			Help: "Response cache lookups by result",
		},
		[]string{"result"},
	)
)

// Outcome labels for UpstreamRequests.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
