package stats

import (
	"fmt"
	"strings"
	"time"
)

// SummaryConfig carries the terminal run report into the formatter.
// It is a plain value type so the formatter stays decoupled from the
// supervisor's own types.
type SummaryConfig struct {
	Result   string // terminal state name
	ExitCode int
	Duration time.Duration

	PID            int
	TargetExited   bool
	TargetExitCode int

	ProbeAttempts int
	ReadyAfter    time.Duration

	ControlRan      bool
	ControlExitCode int
	ControlDuration time.Duration
	ControlStdout   string
	ControlStderr   string

	ErrMessage string

	// MetricsAddr is the Prometheus metrics endpoint address, if enabled.
	MetricsAddr string
}

const summaryRule = "═══════════════════════════════════════════════════════════════════════════════\n"
const sectionRule = "───────────────────────────────────────────────────────────────────────────────\n"

// FormatExitSummary formats the run report for display at program exit.
func FormatExitSummary(s *RunStats, cfg SummaryConfig) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(summaryRule)
	b.WriteString("                      go-obs-replay-toggle Run Summary\n")
	b.WriteString(summaryRule)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Result:                 %s\n", cfg.Result)
	fmt.Fprintf(&b, "Exit Code:              %d\n", cfg.ExitCode)
	fmt.Fprintf(&b, "Run Duration:           %s\n", FormatDuration(cfg.Duration))
	if cfg.PID > 0 {
		fmt.Fprintf(&b, "Target PID:             %d\n", cfg.PID)
	}
	if cfg.TargetExited {
		fmt.Fprintf(&b, "Target Exit Code:       %d\n", cfg.TargetExitCode)
	}
	b.WriteString("\n")

	if cfg.ProbeAttempts > 0 {
		b.WriteString(sectionRule)
		b.WriteString("                                 Readiness\n")
		b.WriteString(sectionRule)
		b.WriteString("\n")

		fmt.Fprintf(&b, "  Probe Attempts:       %d\n", cfg.ProbeAttempts)
		if cfg.ReadyAfter > 0 {
			fmt.Fprintf(&b, "  Ready After:          %s\n", FormatMs(cfg.ReadyAfter))
		}
		if s != nil && s.LatencyMax() > 0 {
			fmt.Fprintf(&b, "  Probe Latency:        p50 %s / p95 %s / p99 %s\n",
				FormatMs(s.LatencyPercentile(0.50)),
				FormatMs(s.LatencyPercentile(0.95)),
				FormatMs(s.LatencyPercentile(0.99)),
			)
			fmt.Fprintf(&b, "  Latency Range:        %s - %s\n",
				FormatMs(s.LatencyMin()),
				FormatMs(s.LatencyMax()),
			)
		}
		b.WriteString("\n")
	}

	if cfg.ControlRan {
		b.WriteString(sectionRule)
		b.WriteString("                              Control Command\n")
		b.WriteString(sectionRule)
		b.WriteString("\n")

		fmt.Fprintf(&b, "  Exit Code:            %d\n", cfg.ControlExitCode)
		if cfg.ControlDuration > 0 {
			fmt.Fprintf(&b, "  Duration:             %s\n", FormatMs(cfg.ControlDuration))
		}
		if cfg.ControlStdout != "" {
			fmt.Fprintf(&b, "  Stdout:               %s\n", firstLine(cfg.ControlStdout))
		}
		if cfg.ControlStderr != "" {
			fmt.Fprintf(&b, "  Stderr:               %s\n", firstLine(cfg.ControlStderr))
		}
		b.WriteString("\n")
	}

	if cfg.ErrMessage != "" {
		b.WriteString(sectionRule)
		b.WriteString("                                  Failure\n")
		b.WriteString(sectionRule)
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s\n\n", cfg.ErrMessage)
	}

	if cfg.MetricsAddr != "" {
		fmt.Fprintf(&b, "Metrics endpoint was: http://%s/metrics\n", cfg.MetricsAddr)
	}

	b.WriteString(summaryRule)

	return b.String()
}

// firstLine truncates multi-line command output for the summary table.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

// =============================================================================
// Formatting Helper Functions (exported for reuse)
// =============================================================================

// FormatDuration formats a duration as HH:MM:SS.
func FormatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatMs formats a duration as milliseconds.
func FormatMs(d time.Duration) string {
	ms := d.Milliseconds()
	if ms == 0 && d > 0 {
		// Sub-millisecond, show microseconds
		return fmt.Sprintf("%d µs", d.Microseconds())
	}
	return fmt.Sprintf("%d ms", ms)
}
