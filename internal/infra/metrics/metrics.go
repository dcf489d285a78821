// Package metrics defines the Prometheus metrics exported by userhub.
// All collectors register with the default registry at package init through promauto.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "userhub"

// Outcome label values besides the error kinds.
const (
	OutcomeSuccess = "success"
	OutcomeHit     = "hit"
	OutcomeMiss    = "miss"
	OutcomeError   = "error"
	OutcomeDropped = "dropped"
)

// UserOperationsTotal counts service operations.
// Labels:
//   - operation: e.g. "create", "update", "delete", "get", "page"
//   - outcome: "success" or the error kind ("conflict", "invalid_argument", "not_found", "internal")
var UserOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_operations_total",
		Help:      "Total number of user service operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// UserOperationDuration measures service operation latency.
var UserOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "user_operation_duration_seconds",
		Help:      "Duration of user service operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// PasswordHashDuration measures bcrypt hashing time, excluding semaphore wait.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt password hashing.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2},
	},
)

// PasswordHashesInFlight tracks bcrypt computations currently running.
var PasswordHashesInFlight = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "password_hashes_in_flight",
		Help:      "Number of bcrypt computations currently running.",
	},
)

// CacheLookupsTotal counts user cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_cache_lookups_total",
		Help:      "Total number of user cache lookups, by result.",
	},
	[]string{"result"},
)

// EventsPublishedTotal counts user lifecycle events handed to the publisher.
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_events_published_total",
		Help:      "Total number of user lifecycle events published, by type and outcome.",
	},
	[]string{"type", "outcome"},
)

// EventsConsumedTotal counts user lifecycle events received by the worker.
var EventsConsumedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_events_consumed_total",
		Help:      "Total number of user lifecycle events consumed, by type and outcome.",
	},
	[]string{"type", "outcome"},
)

// ObserveOperation records one service call.
func ObserveOperation(operation, outcome string, started time.Time) {
	UserOperationsTotal.WithLabelValues(operation, outcome).Inc()
	UserOperationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
