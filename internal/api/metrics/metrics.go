// Package metrics defines and registers all custom Prometheus metrics for
// the job desk dashboard. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics self-register with the default Prometheus registry via promauto;
// importing this package is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobdesk"

// ── Synchronization metrics ───────────────────────────────────────────────────

// PollsTotal counts snapshot polls against the gateway.
// Label:
//   - result: "success" or "error"
var PollsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "polls_total",
		Help:      "Total number of snapshot polls issued to the gateway.",
	},
	[]string{"result"},
)

// SnapshotJobs tracks the number of jobs in the current snapshot.
var SnapshotJobs = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_jobs",
		Help:      "Number of jobs held in the current in-memory snapshot.",
	},
)

// SnapshotUsers tracks the number of users in the current snapshot.
var SnapshotUsers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_users",
		Help:      "Number of users held in the current in-memory snapshot.",
	},
)

// ── Mutation metrics ──────────────────────────────────────────────────────────

// MutationsTotal counts job and identity mutations sent to the gateway.
// Labels:
//   - action: gateway action name (e.g. "addJob", "deleteJob")
//   - result: "success" or "error"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of mutation requests issued to the gateway.",
	},
	[]string{"action", "result"},
)

// RollbacksTotal counts optimistic updates undone after a gateway failure.
// Label:
//   - action: the mutation that was rolled back
var RollbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rollbacks_total",
		Help:      "Total number of optimistic snapshot mutations rolled back.",
	},
	[]string{"action"},
)

// ── Gateway transport metrics ─────────────────────────────────────────────────

// GatewayRequestDuration measures end-to-end gateway request latency.
// Labels:
//   - action: gateway action name
//   - result: "success", "rejected" (gateway said no) or "error" (transport)
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Latency of requests to the remote data gateway.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action", "result"},
)
