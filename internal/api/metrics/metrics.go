// Package metrics defines and registers all custom Prometheus metrics for the
// farm-management API. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "farm"

// ── Performance scoring metrics ───────────────────────────────────────────────

// PerformanceUpdatesTotal counts completed performance recalculations.
// Label:
//   - role: "farmer" or "manager" (other roles record a zero result)
var PerformanceUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "performance_updates_total",
		Help:      "Total number of performance score updates persisted.",
	},
	[]string{"role"},
)

// PerformanceBatchErrorsTotal counts per-user failures inside batch updates.
// Label:
//   - role: the role the batch ran over
var PerformanceBatchErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "performance_batch_errors_total",
		Help:      "Total number of per-user failures during batch performance updates.",
	},
	[]string{"role"},
)

// PerformanceScore observes the distribution of computed scores.
// Label:
//   - role: "farmer" or "manager"
var PerformanceScore = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "performance_score",
		Help:      "Distribution of computed performance scores.",
		Buckets:   []float64{0, 25, 50, 75, 100, 150, 200, 250, 300, 400},
	},
	[]string{"role"},
)

// LeaderboardCacheTotal counts leaderboard cache lookups.
// Label:
//   - result: "hit" (served from cache) or "miss" (rebuilt from the store)
var LeaderboardCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leaderboard_cache_total",
		Help:      "Total number of leaderboard cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: "low", "medium", or "high"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// TaskTransitionsTotal counts task status transitions.
// Label:
//   - status: the status the task moved into
var TaskTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_transitions_total",
		Help:      "Total number of task status transitions applied.",
	},
	[]string{"status"},
)
