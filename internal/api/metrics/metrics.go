// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings. Metrics are registered with the default registry at
// package load via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartAddsTotal counts successful add-to-cart operations (merges included).
var CartAddsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_adds_total",
		Help:      "Total number of successful add-to-cart operations.",
	},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// OrdersCreatedTotal counts completed checkouts.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created by checkout.",
	},
)

// OrderRevenueTotal accumulates the submitted totals of completed checkouts.
var OrderRevenueTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_revenue_total",
		Help:      "Running sum of order totals across all completed checkouts.",
	},
)

// CheckoutDuration measures checkout end-to-end, order insert through cart clear.
var CheckoutDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_duration_seconds",
		Help:      "Duration of the checkout sequence from validation to cart clear.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsRecordedTotal counts recorded interaction events.
// Label:
//   - type: the caller-supplied event type tag (e.g. "product_view")
var EventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_recorded_total",
		Help:      "Total number of interaction events recorded, by type.",
	},
	[]string{"type"},
)

// ── Analytics metrics ─────────────────────────────────────────────────────────

// DashboardDuration measures how long one full dashboard aggregation takes.
var DashboardDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dashboard_duration_seconds",
		Help:      "Duration of one on-demand admin dashboard aggregation.",
		Buckets:   prometheus.DefBuckets,
	},
)
