package process

import (
	"context"
	"log/slog"
	"time"
)

// ProbeResult is the readiness signal for a single probe invocation.
// It never distinguishes why the target is not ready beyond the diagnostic;
// missing tool, bad connection, timeout all collapse to not-ready.
type ProbeResult struct {
	Ready      bool
	Diagnostic string
	Latency    time.Duration
}

// Prober invokes the external readiness check command.
// All failure modes are absorbed into a not-ready result plus a log line,
// which makes Probe idempotent and safe to call on a fixed interval.
type Prober struct {
	argv    []string
	timeout time.Duration
	logger  *slog.Logger
}

// NewProber creates a prober for the given check command.
func NewProber(argv []string, timeout time.Duration, logger *slog.Logger) *Prober {
	return &Prober{
		argv:    argv,
		timeout: timeout,
		logger:  logger,
	}
}

// Probe runs the check command once. Ready is true only when the command
// exits zero within the timeout.
func (p *Prober) Probe(ctx context.Context) ProbeResult {
	inv, err := Invoke(ctx, p.argv, p.timeout)
	if err == nil {
		p.logger.Debug("probe_ready",
			"output", inv.Stdout,
			"latency", inv.Duration.String(),
		)
		return ProbeResult{
			Ready:      true,
			Diagnostic: inv.Stdout,
			Latency:    inv.Duration,
		}
	}

	result := ProbeResult{Diagnostic: err.Error()}

	var latency time.Duration
	var cmdErr *CommandError
	if e, ok := err.(*CommandError); ok {
		cmdErr = e
		if cmdErr.Invocation != nil {
			latency = cmdErr.Invocation.Duration
			if cmdErr.Invocation.Stderr != "" {
				result.Diagnostic = cmdErr.Invocation.Stderr
			}
		}
	}
	result.Latency = latency

	switch ErrorKind(err) {
	case KindNotFound:
		// The check tool missing is worth more than a debug line, but it is
		// still just "not ready" to the caller.
		p.logger.Warn("probe_tool_missing",
			"command", p.argv[0],
			"error", err,
		)
	case KindTimeout:
		p.logger.Debug("probe_timed_out",
			"timeout", p.timeout.String(),
		)
	case KindNonZeroExit:
		p.logger.Debug("probe_not_ready",
			"diagnostic", result.Diagnostic,
		)
	default:
		p.logger.Warn("probe_unexpected_error",
			"error", err,
		)
	}

	return result
}
