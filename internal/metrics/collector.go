// Package metrics provides Prometheus metrics for go-obs-replay-toggle.
//
// A run is short-lived, so the metric surface is small: run identity, the
// current phase, probe counters and latency, and the terminal result. The
// endpoint exists for fleet deployments where a scraper catches the run.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	toggleInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "obs_toggle_info",
			Help: "Information about the run (value always 1)",
		},
		[]string{"version", "run_id"},
	)

	toggleState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "obs_toggle_state",
			Help: "Current run phase (1 for the active state, 0 otherwise)",
		},
		[]string{"state"},
	)

	toggleTargetPID = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "obs_toggle_target_pid",
			Help: "PID of the launched target (0 until the hand-off)",
		},
	)

	toggleProbeAttemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "obs_toggle_probe_attempts_total",
			Help: "Total readiness probe attempts",
		},
	)

	toggleProbeFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "obs_toggle_probe_failures_total",
			Help: "Total not-ready probe results",
		},
	)

	toggleProbeDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "obs_toggle_probe_duration_seconds",
			Help:    "Readiness probe latency",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms .. ~10s
		},
	)

	toggleReadyAfterSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "obs_toggle_ready_after_seconds",
			Help: "Time from poll loop entry to the ready probe (0 until ready)",
		},
	)

	toggleRunResult = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "obs_toggle_run_result",
			Help: "Terminal run result (1 for the final state)",
		},
		[]string{"state"},
	)

	toggleRunExitCode = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "obs_toggle_run_exit_code",
			Help: "Process exit code for the terminal state",
		},
	)

	toggleRunElapsedSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "obs_toggle_run_elapsed_seconds",
			Help: "Seconds since the run started",
		},
	)
)

// Collector manages all Prometheus metrics for a run.
type Collector struct {
	startTime time.Time

	mu        sync.Mutex
	lastState string
}

// CollectorConfig holds configuration for the collector.
type CollectorConfig struct {
	Version string
	RunID   string
}

// NewCollector creates a collector on the default registry.
func NewCollector(cfg CollectorConfig) *Collector {
	return NewCollectorWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector with a custom registry.
// Useful for testing.
func NewCollectorWithRegistry(cfg CollectorConfig, registry prometheus.Registerer) *Collector {
	c := &Collector{
		startTime: time.Now(),
	}

	registry.MustRegister(
		toggleInfo,
		toggleState,
		toggleTargetPID,
		toggleProbeAttemptsTotal,
		toggleProbeFailuresTotal,
		toggleProbeDurationSeconds,
		toggleReadyAfterSeconds,
		toggleRunResult,
		toggleRunExitCode,
		toggleRunElapsedSeconds,
	)

	toggleInfo.WithLabelValues(cfg.Version, cfg.RunID).Set(1)

	return c
}

// SetState marks the current run phase.
func (c *Collector) SetState(state string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastState != "" {
		toggleState.WithLabelValues(c.lastState).Set(0)
	}
	toggleState.WithLabelValues(state).Set(1)
	c.lastState = state

	toggleRunElapsedSeconds.Set(time.Since(c.startTime).Seconds())
}

// TargetLaunched records the target PID once a handle exists.
func (c *Collector) TargetLaunched(pid int) {
	toggleTargetPID.Set(float64(pid))
}

// RecordProbe records one readiness probe attempt.
func (c *Collector) RecordProbe(ready bool, latency time.Duration) {
	toggleProbeAttemptsTotal.Inc()
	if !ready {
		toggleProbeFailuresTotal.Inc()
	}
	if latency > 0 {
		toggleProbeDurationSeconds.Observe(latency.Seconds())
	}
}

// RecordReady records the time-to-ready once the probe succeeds.
func (c *Collector) RecordReady(readyAfter time.Duration) {
	toggleReadyAfterSeconds.Set(readyAfter.Seconds())
}

// RecordOutcome records the terminal state and its exit code.
func (c *Collector) RecordOutcome(state string, exitCode int) {
	toggleRunResult.WithLabelValues(state).Set(1)
	toggleRunExitCode.Set(float64(exitCode))
	toggleRunElapsedSeconds.Set(time.Since(c.startTime).Seconds())
}
