package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	CheckoutSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_checkout_sessions_total",
		Help: "Checkout sessions created.",
	})

	CouponsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_coupons_issued_total",
		Help: "Gift coupons issued after a checkout crossed the threshold.",
	})

	CouponsRedeemed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_coupons_redeemed_total",
		Help: "Coupons applied to a checkout session.",
	})

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_created_total",
		Help: "Orders persisted after a confirmed checkout.",
	})

	FeaturedCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_featured_cache_lookups_total",
		Help: "Featured-products cache lookups by result (hit, miss, error).",
	}, []string{"result"})
)
