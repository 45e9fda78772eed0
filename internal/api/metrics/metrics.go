// Package metrics defines and registers all custom Prometheus metrics for the
// gatepass check-in API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at import time via promauto; the
// /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gatepass"

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LookupsTotal counts participant lookups.
// Label:
//   - result: "hit" (row found) or "miss" (no matching row)
var LookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Total number of participant lookups, by result.",
	},
	[]string{"result"},
)

// CheckinsTotal counts successful check-ins, including re-prints of an
// already checked-in participant.
// Label:
//   - repeat: "first" or "overwrite"
var CheckinsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkins_total",
		Help:      "Total number of successful check-ins.",
	},
	[]string{"repeat"},
)

// StoreRequestDuration measures row-store round trips.
// Label:
//   - operation: "load_all", "find_by_id", "save"
var StoreRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_request_duration_seconds",
		Help:      "Duration of external row store operations.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)
