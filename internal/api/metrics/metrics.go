// Package metrics defines and registers all custom Prometheus metrics
// for the HashDoctor API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hashdoctor"

// ── Payment metrics ──────────────────────────────────────────────────

// PaymentsTotal counts consultation payment attempts.
// Label:
//   - result: "success", "insufficient_funds" or "error"
var PaymentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_total",
		Help:      "Total number of consultation payment attempts, by result.",
	},
	[]string{"result"},
)

// SubsidyAppliedTotal sums the amounts refunded from bonus pools.
var SubsidyAppliedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subsidy_applied_total",
		Help:      "Cumulative amount moved from bonus pools back into wallets.",
	},
)

// SOSTotal counts SOS escalations by outcome.
// Label:
//   - outcome: "raised", "claimed" or "false_alarm"
var SOSTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sos_total",
		Help:      "Total number of SOS escalations, by outcome.",
	},
	[]string{"outcome"},
)

// ── Chat / triage metrics ────────────────────────────────────────────

// MessagesStoredTotal counts chat messages written to threads.
// Label:
//   - sender: "user" or "assistant"
var MessagesStoredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_stored_total",
		Help:      "Total number of chat messages persisted, by sender kind.",
	},
	[]string{"sender"},
)

// TriageRepliesTotal counts assistant reply jobs that finished.
// Label:
//   - result: "ok" or "error"
var TriageRepliesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "triage_replies_total",
		Help:      "Total number of assistant reply jobs processed, by result.",
	},
	[]string{"result"},
)

// TriageReplyDuration measures assistant reply latency end-to-end.
var TriageReplyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "triage_reply_duration_seconds",
		Help:      "Duration of assistant reply jobs from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// TriageQueueDepth tracks pending jobs per dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var TriageQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "triage_queue_depth",
		Help:      "Current number of reply jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Insight metrics ──────────────────────────────────────────────────

// AIRequestsTotal counts structured AI extraction calls.
// Labels:
//   - kind: "insights" or "feed"
//   - result: "ok", "bad_response" or "error"
var AIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_requests_total",
		Help:      "Total number of structured AI extraction requests, by kind and result.",
	},
	[]string{"kind", "result"},
)
