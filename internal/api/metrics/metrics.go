// Package metrics defines the custom Prometheus metrics of the review API.
// Request counts and latencies come from the echoprometheus middleware; this
// package covers domain outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reviews_api"

// ── Errors ────────────────────────────────────────────────────────────────────

// ErrorsTotal counts error responses.
// Label:
//   - code: the envelope code (e.g. "validation", "not_found", "internal_error")
var ErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "errors_total",
		Help:      "Total number of error responses, by error code.",
	},
	[]string{"code"},
)

// RateLimitedTotal counts requests rejected by the auth rate limiter.
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter, by route.",
	},
	[]string{"route"},
)

// ── Auth ──────────────────────────────────────────────────────────────────────

// SignupsTotal counts confirmation codes sent.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups (confirmation codes sent).",
	},
)

// TokensIssuedTotal counts token pairs handed out.
// Label:
//   - grant: "confirmation_code" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of token pairs issued, by grant.",
	},
	[]string{"grant"},
)

// ── Content ───────────────────────────────────────────────────────────────────

// ReviewsCreatedTotal counts reviews accepted.
var ReviewsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews created.",
	},
)

// ReviewScores observes submitted scores.
var ReviewScores = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "review_score",
		Help:      "Distribution of submitted review scores.",
		Buckets:   prometheus.LinearBuckets(1, 1, 10),
	},
)

var CommentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments created.",
	},
)
