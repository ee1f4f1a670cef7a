package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics track step/run volume per scheduled composite, labeled by
// the absolute path of the bric the Scheduler was built for, the same
// per-subsystem prometheus.*Vec idiom
// ap.watchd/metrics.go uses for its scan counters.
var (
	stepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dbrx_scheduler_steps_total",
			Help: "Number of cooperative pump steps taken, by scheduled bric.",
		},
		[]string{"bric"})
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dbrx_scheduler_runs_total",
			Help: "Number of completed Run calls, by scheduled bric.",
		},
		[]string{"bric"})
	layerCount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dbrx_scheduler_layers",
			Help: "Number of topological layers in the most recently built scheduler, by scheduled bric.",
		},
		[]string{"bric"})
)

func init() {
	prometheus.MustRegister(stepsTotal, runsTotal, layerCount)
}
