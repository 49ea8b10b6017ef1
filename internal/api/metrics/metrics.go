// Package metrics defines and registers all custom Prometheus metrics for
// the lab auth service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at package init via promauto;
// the router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "labauth"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts signed tokens handed out.
// Label:
//   - kind: "access" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, labelled by kind.",
	},
	[]string{"kind"},
)

// TokenValidationsTotal counts guard-side token validations.
// Label:
//   - result: "ok", "expired" or "invalid"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer token validations, labelled by result.",
	},
	[]string{"result"},
)

// PasswordVerifyDuration measures the cost of a bcrypt verification on the
// real login path. Watch this to keep the work factor inside the latency
// budget.
var PasswordVerifyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_verify_duration_seconds",
		Help:      "Duration of password hash verification during login.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1},
	},
)

// RateLimitedTotal counts login requests rejected by the per-IP limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of login requests rejected by the rate limiter.",
	},
)
