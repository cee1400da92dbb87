// Package metrics defines the Prometheus metrics exposed at /metrics.
// It is the single source of truth for metric names, labels and help
// strings; everything is registered with the default registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workday_admin"

// UpstreamRequestsTotal counts calls made to the time-tracking API.
// Labels:
//   - endpoint: logical endpoint name (e.g. "users", "workdays")
//   - outcome: HTTP status code of the response, or "error" when the
//     request never produced one
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the time-tracking API.",
	},
	[]string{"endpoint", "outcome"},
)

// UpstreamRequestDuration measures upstream round-trip time per endpoint.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the time-tracking API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// LoginsTotal counts login attempts by result ("success" or "failure").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
