package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		agentRunsTotal,
		agentRunLatencyMs,
		agentPollRefreshesTotal,
	)
}

var (
	// Final outcome of each run. The label is bounded:
	// completed|failed|timeout|active|error.
	agentRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_runs_total",
			Help: "Agent runs by final outcome.",
		},
		[]string{"outcome"},
	)

	agentRunLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agent_run_latency_ms",
			Help:    "End-to-end run latency in milliseconds, polling included.",
			Buckets: []float64{50, 100, 250, 500, 1000, 3000, 10000, 30000, 60000, 120000},
		},
		[]string{"outcome"},
	)

	agentPollRefreshesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "agent_poll_refreshes_total",
			Help: "Status refresh calls made against the agent service.",
		},
	)
)

func ObserveAgentRun(outcome string, latencyMs int64) {
	agentRunsTotal.WithLabelValues(norm(outcome)).Inc()
	agentRunLatencyMs.WithLabelValues(norm(outcome)).Observe(float64(latencyMs))
}

func IncPollRefresh() {
	agentPollRefreshesTotal.Inc()
}
