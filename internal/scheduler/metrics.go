package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine metrics, registered on the default registry. Hosts that expose a
// /metrics endpoint get these for free.
var (
	dependenciesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sched_dependencies_added_total",
		Help: "Number of dependency edges accepted into the graph",
	})

	dependencyRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sched_dependency_rejections_total",
		Help: "Number of dependency edges rejected at insertion, by error kind",
	}, []string{"kind"})

	scheduleRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sched_auto_schedule_runs_total",
		Help: "Number of auto-schedule runs, by outcome",
	}, []string{"status"})

	scheduleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sched_auto_schedule_duration_seconds",
		Help:    "Wall-clock duration of auto-schedule runs",
		Buckets: prometheus.DefBuckets,
	})

	scheduledTasks = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sched_auto_schedule_tasks",
		Help:    "Number of tasks resolved per auto-schedule run",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
	})
)
