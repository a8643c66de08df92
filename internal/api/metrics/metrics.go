// Package metrics defines and registers all custom Prometheus metrics for the
// SoundWolves API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package init; the
// /metrics endpoint serves that registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "soundwolves"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts auth operations by outcome.
// Labels:
//   - operation: "register", "login", "refresh", "logout", "me"
//   - result: "success", "invalid", "conflict", "locked", "unauthorized", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// AuthLockoutsTotal counts login attempts rejected because the account was locked.
var AuthLockoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_lockout_rejections_total",
		Help:      "Total number of login attempts rejected by an active account lockout.",
	},
)

// AuthOperationDuration measures how long each auth operation takes,
// dominated by bcrypt work for register and login.
// Label:
//   - operation: "register", "login", "refresh", "logout", "me"
var AuthOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_operation_duration_seconds",
		Help:      "Duration of authentication operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Rate limiting ─────────────────────────────────────────────────────────────

// RateLimitRejectionsTotal counts requests rejected by the per-route limiter.
// Label:
//   - route: limiter route name (e.g. "auth_login")
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_rejections_total",
		Help:      "Total number of requests rejected by the rate limiter, by route.",
	},
	[]string{"route"},
)

// RateLimitErrorsTotal counts limiter store failures (requests were admitted).
var RateLimitErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_store_errors_total",
		Help:      "Total number of rate limiter store failures; affected requests were admitted.",
	},
)

// ── Status checks ─────────────────────────────────────────────────────────────

// StatusChecksCreatedTotal counts recorded status checks.
var StatusChecksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_checks_created_total",
		Help:      "Total number of status checks recorded.",
	},
)
