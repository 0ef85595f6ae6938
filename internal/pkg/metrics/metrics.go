// Package metrics defines and registers all custom Prometheus metrics for the
// pizza service. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default Prometheus registry on import, the
// same registry served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pizza"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthEventsTotal counts session lifecycle events.
// Label:
//   - event: "register", "login" or "logout"
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of registrations, logins and logouts.",
	},
	[]string{"event"},
)

// TokenRejectionsTotal counts bearer tokens that did not resolve to an identity.
// Label:
//   - reason: "invalid", "revoked" or "store_error"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of presented bearer tokens that were rejected.",
	},
	[]string{"reason"},
)

// AccessDeniedTotal counts requests refused by a role or ownership check.
// Label:
//   - action: the denied action, e.g. "create_store"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by authorization checks.",
	},
	[]string{"action"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts orders persisted locally, before fulfillment.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of diner orders stored.",
	},
)

// PizzasSoldTotal counts order items persisted.
var PizzasSoldTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pizzas_sold_total",
		Help:      "Total number of order items stored.",
	},
)

// RevenueTotal sums the price of every stored order.
var RevenueTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revenue_total",
		Help:      "Sum of the prices of all stored orders.",
	},
)

// ── Factory metrics ───────────────────────────────────────────────────────────

// FactoryRequestsTotal counts order submissions to the factory.
// Label:
//   - result: "accepted", "rejected" or "error"
var FactoryRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "factory_requests_total",
		Help:      "Total number of orders forwarded to the factory, by outcome.",
	},
	[]string{"result"},
)

// FactoryRequestDuration measures the round trip of a factory submission.
var FactoryRequestDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "factory_request_duration_seconds",
		Help:      "Duration of order submissions to the factory.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
