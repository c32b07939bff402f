// Package metrics defines and registers the custom Prometheus metrics of the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings.
//
// All metrics are registered with the default registry on import; HTTP request
// metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts credential checks.
// Label:
//   - outcome: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenRejectionsTotal counts requests refused by the auth middleware. The
// reason is deliberately not a label: every rejection looks the same.
var TokenRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_token_rejections_total",
		Help:      "Total number of requests rejected for a missing or invalid bearer token.",
	},
)

// RoleDenialsTotal counts requests refused by the role check.
// Label:
//   - role: the caller's role
var RoleDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_role_denials_total",
		Help:      "Total number of requests refused because of the caller's role.",
	},
	[]string{"role"},
)

// ── Mobile metrics ────────────────────────────────────────────────────────────

// MobileMutationsTotal counts listing mutations.
// Labels:
//   - operation: "create", "update" or "delete"
//   - result: "ok", "not_found", "forbidden", "invalid" or "error"
var MobileMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mobile_mutations_total",
		Help:      "Total number of mobile listing mutations, by operation and result.",
	},
	[]string{"operation", "result"},
)
