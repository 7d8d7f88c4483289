// Package metrics defines Prometheus metrics for worthyten.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wt"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	RateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	}, []string{"path"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last liveness probe succeeded.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last readiness probe found every dependency reachable.",
	})
)

// Valuation pipeline metrics.
var (
	StageEvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stage_evaluations_total",
		Help:      "Total stage operations by stage and outcome (draft, submitted, rejected, redirected).",
	}, []string{"stage", "outcome"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of stage operations including lookup and persistence.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})

	PricingLookupMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pricing_lookup_misses_total",
		Help:      "Pricing table lookups that fell back to an empty table, by reason.",
	}, []string{"reason"})

	FloorClampsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "floor_clamps_total",
		Help:      "Stage outputs raised to the minimum price.",
	}, []string{"stage"})

	FinalOfferRatio = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "final_offer_ratio",
		Help:      "Final offer as a fraction of the original quote.",
		Buckets:   prometheus.LinearBuckets(0.05, 0.1, 12), // 0.05 .. 1.15
	})
)

// Session metrics.
var (
	SessionsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total valuation sessions started, by category.",
	}, []string{"category"})

	SessionResetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resets_total",
		Help:      "Total sessions discarded via start over.",
	})

	SessionErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_errors_total",
		Help:      "Total session loads that failed, by reason (missing, corrupt).",
	}, []string{"reason"})
)

// Order metrics.
var (
	OrdersSubmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_submitted_total",
		Help:      "Total orders submitted, by category.",
	}, []string{"category"})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of order notification webhook calls.",
		Buckets:   prometheus.DefBuckets,
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})
)

// System state gauges, refreshed by the scheduler.
var (
	PricingTablesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pricing_tables",
		Help:      "Number of products with a pricing table.",
	})

	LensesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "lenses",
		Help:      "Number of lenses in the catalog.",
	})

	OrdersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "orders",
		Help:      "Number of stored orders.",
	})

	OrdersLast24h = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "orders_last_24h",
		Help:      "Orders submitted in the last 24 hours.",
	})

	SchedulerNextStateRefreshTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_next_state_refresh_timestamp",
		Help:      "Unix time of the next scheduled system-state refresh.",
	})
)
