// Package metrics defines and registers all custom Prometheus metrics for the
// emotion API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry via promauto on
// package init, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "emotionai"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - action: "signup" or "login"
//   - result: "success", "invalid", "conflict", "unauthorized" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by outcome.",
	},
	[]string{"action", "result"},
)

// RateLimitedTotal counts requests rejected by the auth rate limiter.
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429, by route.",
	},
	[]string{"route"},
)

// ── Prediction metrics ────────────────────────────────────────────────────────

// PredictionsTotal counts stored predictions.
// Label:
//   - emotion: the predicted class (e.g. "happiness")
var PredictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of predictions stored, by emotion.",
	},
	[]string{"emotion"},
)

// PredictionErrorsTotal counts failed prediction requests.
// Label:
//   - reason: "validation", "upload", "upstream" or "persistence"
var PredictionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_errors_total",
		Help:      "Total number of prediction requests that failed.",
	},
	[]string{"reason"},
)

// PredictionConfidence tracks the distribution of stored confidences.
var PredictionConfidence = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_confidence",
		Help:      "Confidence of stored predictions.",
		Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
	},
)

// UpstreamRequestDuration measures calls to the external emotion model.
// Label:
//   - outcome: "ok", "transport_error", "bad_status" or "bad_body"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the ML prediction service.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"outcome"},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportCacheTotal counts report cache lookups.
// Label:
//   - result: "hit" or "miss"
var ReportCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_cache_total",
		Help:      "Total number of report cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Storage metrics ───────────────────────────────────────────────────────────

// StaleUploadsRemovedTotal counts files removed by the upload janitor.
var StaleUploadsRemovedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_uploads_removed_total",
		Help:      "Total number of orphaned uploads removed by the background sweep.",
	},
)
