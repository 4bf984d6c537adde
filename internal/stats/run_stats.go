// Package stats tracks readiness probe timing and renders the exit summary.
package stats

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/influxdata/tdigest"
)

// RunStats accumulates probe observations for a single run.
//
// Thread-safe: counters are atomic, the digest has its own mutex. The TUI
// reads while the supervisor's poll loop writes.
type RunStats struct {
	StartTime time.Time

	attempts atomic.Int64
	failures atomic.Int64

	// Probe latency percentiles. TDigest is not thread-safe.
	digestMu sync.Mutex
	digest   *tdigest.TDigest
	samples  int64

	latencyMinNanos atomic.Int64 // -1 = unset
	latencyMaxNanos atomic.Int64
}

// NewRunStats creates stats anchored at now.
func NewRunStats() *RunStats {
	s := &RunStats{
		StartTime: time.Now(),
		digest:    tdigest.NewWithCompression(100), // ~100 centroids, ~10KB
	}
	s.latencyMinNanos.Store(-1)
	return s
}

// RecordProbe records one probe attempt.
func (s *RunStats) RecordProbe(ready bool, latency time.Duration) {
	s.attempts.Add(1)
	if !ready {
		s.failures.Add(1)
	}
	if latency <= 0 {
		return
	}

	s.digestMu.Lock()
	s.digest.Add(latency.Seconds(), 1)
	s.samples++
	s.digestMu.Unlock()

	nanos := int64(latency)
	for {
		oldMin := s.latencyMinNanos.Load()
		if oldMin != -1 && nanos >= oldMin {
			break
		}
		if s.latencyMinNanos.CompareAndSwap(oldMin, nanos) {
			break
		}
	}
	for {
		oldMax := s.latencyMaxNanos.Load()
		if nanos <= oldMax {
			break
		}
		if s.latencyMaxNanos.CompareAndSwap(oldMax, nanos) {
			break
		}
	}
}

// Attempts returns the number of probes recorded.
func (s *RunStats) Attempts() int64 {
	return s.attempts.Load()
}

// Failures returns the number of not-ready probes recorded.
func (s *RunStats) Failures() int64 {
	return s.failures.Load()
}

// LatencyPercentile returns the probe latency at quantile q (0..1),
// or 0 when no latency samples were recorded.
func (s *RunStats) LatencyPercentile(q float64) time.Duration {
	s.digestMu.Lock()
	defer s.digestMu.Unlock()
	if s.samples == 0 {
		return 0
	}
	return time.Duration(s.digest.Quantile(q) * float64(time.Second))
}

// LatencyMin returns the fastest recorded probe, 0 when unset.
func (s *RunStats) LatencyMin() time.Duration {
	min := s.latencyMinNanos.Load()
	if min == -1 {
		return 0
	}
	return time.Duration(min)
}

// LatencyMax returns the slowest recorded probe.
func (s *RunStats) LatencyMax() time.Duration {
	return time.Duration(s.latencyMaxNanos.Load())
}

// Elapsed returns the wall time since the run started.
func (s *RunStats) Elapsed() time.Duration {
	return time.Since(s.StartTime)
}
