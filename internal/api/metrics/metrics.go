// Package metrics defines all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names,
// labels, and help strings; promauto registers everything with the
// default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts successfully created accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "not_found", or "bad_password"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts refresh-token exchanges.
// Label:
//   - result: "success" or "rejected"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of access-token refresh attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// CheckoutSessionsTotal counts external payment sessions created.
var CheckoutSessionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_sessions_total",
		Help:      "Total number of payment checkout sessions created.",
	},
)

// OrdersCreatedTotal counts orders materialized from confirmed
// payments. Idempotent replays of the same session do not count.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created from confirmed payments.",
	},
)

// GiftCouponsIssuedTotal counts gift coupons issued on large orders.
var GiftCouponsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gift_coupons_issued_total",
		Help:      "Total number of gift coupons issued above the spend threshold.",
	},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// FeaturedCacheTotal counts featured-product cache lookups.
// Label:
//   - result: "hit" or "miss"
var FeaturedCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "featured_cache_total",
		Help:      "Total number of featured-product cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
