// Package metrics defines and registers all custom Prometheus metrics for the
// produce API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// init through promauto; the echoprometheus handler mounted at /metrics
// serves them together with the HTTP request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kgl"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "rate_limited" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests stopped by the auth chain.
// Label:
//   - reason: "missing_token", "invalid_token", "expired_token" or "role"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or role checks.",
	},
	[]string{"reason"},
)

// ValidationFailuresTotal counts payloads rejected by the field validator.
// Labels:
//   - schema: the record kind (e.g. "procurement", "cash_sale")
//   - rule: the rule that failed first (e.g. "required", "min", "unknown")
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of payloads rejected by validation, by schema and rule.",
	},
	[]string{"schema", "rule"},
)

// ── Hashing metrics ───────────────────────────────────────────────────────────

// PasswordHashDuration measures a single bcrypt call on a pool worker.
// Label:
//   - op: "hash" or "verify"
var PasswordHashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt hash and verify calls.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1},
	},
	[]string{"op"},
)

// HashQueueDepth tracks hashing jobs waiting for a free worker.
var HashQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hash_queue_depth",
		Help:      "Current number of hashing jobs waiting for a worker.",
	},
)

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordsWrittenTotal counts successful writes to the record store.
// Labels:
//   - kind: "user", "procurement", "cash_sale" or "credit_sale"
//   - op: "create", "update" or "delete"
var RecordsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_written_total",
		Help:      "Total number of records created, updated or deleted.",
	},
	[]string{"kind", "op"},
)
