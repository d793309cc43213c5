// Package metrics defines and registers all custom Prometheus metrics for
// the directory service. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via
// promauto against the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// RequestsTotal counts dispatched requests.
// Labels:
//   - action: the PDU action name (e.g. "LISTE_CONTACTS")
//   - status: the resulting wire status (e.g. "200", "403")
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of dispatched requests, by action and status.",
	},
	[]string{"action", "status"},
)

// RequestDuration measures how long a single request takes from dispatch to
// response.
// Label:
//   - action: the PDU action name
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of request handling from dispatch to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)

// AccessDeniedTotal counts directory reads refused by the permission check.
var AccessDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of directory reads denied by access control.",
	},
)

// LoginFailuresTotal counts failed authentication attempts.
var LoginFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of failed authentication attempts.",
	},
)
