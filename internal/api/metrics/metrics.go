// Package metrics defines and registers all custom Prometheus metrics for the
// Apna Journey platform. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics register with the default Prometheus registry via promauto at
// package init; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "apnajourney"

// ── Content metrics ───────────────────────────────────────────────────────────

// ContentCreatedTotal counts created jobs and articles.
// Labels:
//   - type: "job" or "news"
//   - status: the initial status the item entered with (e.g. "pending", "published")
var ContentCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_created_total",
		Help:      "Total number of jobs and news articles created, by initial status.",
	},
	[]string{"type", "status"},
)

// ModerationDecisionsTotal counts moderation outcomes.
// Labels:
//   - type: "job" or "news"
//   - decision: "approved", "rejected", or "published"
var ModerationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_decisions_total",
		Help:      "Total number of moderation decisions, by content type and decision.",
	},
	[]string{"type", "decision"},
)

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsSubmittedTotal counts successfully submitted job applications.
var ApplicationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of job applications accepted.",
	},
)

// DuplicateApplicationsTotal counts submissions rejected by the unique
// (job_id, applicant_id) index.
var DuplicateApplicationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_duplicate_total",
		Help:      "Total number of job applications rejected as duplicates.",
	},
)

// ── View metrics ──────────────────────────────────────────────────────────────

// ViewsRecordedTotal counts deduplicated detail-page views.
// Label:
//   - type: "job" or "news"
var ViewsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_recorded_total",
		Help:      "Total number of unique detail-page views counted.",
	},
	[]string{"type"},
)

// ViewDedupTotal counts dedup decisions on view hits.
// Label:
//   - result: "hit" (already counted, skipped) or "miss" (new view, counted)
var ViewDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_dedup_total",
		Help:      "Total number of view deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ViewQueueDepth tracks the current number of view hits waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ViewQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "view_queue_depth",
		Help:      "Current number of view hits pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
