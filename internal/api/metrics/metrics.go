// Package metrics defines and registers all custom Prometheus metrics for
// the video platform API. It is the single source of truth for metric names,
// labels, and help strings. Everything registers against the default
// registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "videoplatform"

// ── Unlock metrics ────────────────────────────────────────────────────────────

// UnlocksTotal counts unlock requests by outcome.
// Label:
//   - outcome: "unlocked", "already_unlocked", "free", "insufficient_coins",
//     "forbidden", "error"
var UnlocksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unlocks_total",
		Help:      "Total number of unlock requests, labelled by outcome.",
	},
	[]string{"outcome"},
)

// CoinsSpentTotal accumulates coins debited by successful unlocks.
var CoinsSpentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coins_spent_total",
		Help:      "Total coins debited from viewer balances by unlocks.",
	},
)

// UnlockDuration measures how long a single unlock request takes end-to-end.
var UnlockDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "unlock_duration_seconds",
		Help:      "Duration of unlock request processing.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Telemetry metrics ─────────────────────────────────────────────────────────

// ViewsRecordedTotal counts view-counter increments that reached storage.
var ViewsRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_recorded_total",
		Help:      "Total number of video views recorded.",
	},
)

// ViewRecordErrorsTotal counts view events that failed to persist.
var ViewRecordErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_record_errors_total",
		Help:      "Total number of view events that failed processing.",
	},
)

// TelemetryQueueDepth tracks the number of view events waiting per worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var TelemetryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "telemetry_queue_depth",
		Help:      "Current number of view events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// VideosUploadedTotal counts catalog entries created.
var VideosUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "videos_uploaded_total",
		Help:      "Total number of videos uploaded.",
	},
)
