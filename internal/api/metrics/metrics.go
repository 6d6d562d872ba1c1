// Package metrics defines and registers all custom Prometheus metrics for the
// user management API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry via promauto at
// package load time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "usermanager"

// ── Account metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" (token issued), "failure" (credentials rejected), or
//     "error" (infrastructure problem)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts password reset completions.
// Label:
//   - result: "success", "invalid_token", or "error"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset attempts, labelled by result.",
	},
	[]string{"result"},
)

// UsersCreatedTotal counts newly registered users.
// Label:
//   - role: "manager" or "client"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created, by role.",
	},
	[]string{"role"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourcesCreatedTotal counts newly created resources.
var ResourcesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_created_total",
		Help:      "Total number of resources created.",
	},
)

// ScopeCacheLookupsTotal counts manager scope cache lookups.
// Label:
//   - result: "hit", "miss", or "error"
var ScopeCacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scope_cache_lookups_total",
		Help:      "Total number of manager scope cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── Maintenance metrics ───────────────────────────────────────────────────────

// ResetTokensSweptTotal counts expired reset tokens cleared by the background
// sweeper.
var ResetTokensSweptTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_tokens_swept_total",
		Help:      "Total number of expired password reset tokens cleared.",
	},
)
