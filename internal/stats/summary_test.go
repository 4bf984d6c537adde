package stats

import (
	"strings"
	"testing"
	"time"
)

func TestFormatExitSummary_Success(t *testing.T) {
	s := NewRunStats()
	s.RecordProbe(false, 20*time.Millisecond)
	s.RecordProbe(true, 15*time.Millisecond)

	out := FormatExitSummary(s, SummaryConfig{
		Result:          "succeeded",
		ExitCode:        0,
		Duration:        7 * time.Second,
		PID:             4242,
		ProbeAttempts:   2,
		ReadyAfter:      1200 * time.Millisecond,
		ControlRan:      true,
		ControlExitCode: 0,
		ControlDuration: 80 * time.Millisecond,
		ControlStdout:   "Replay Buffer started",
		MetricsAddr:     "localhost:9101",
	})

	for _, want := range []string{
		"Run Summary",
		"Result:                 succeeded",
		"Exit Code:              0",
		"Target PID:             4242",
		"Probe Attempts:       2",
		"Ready After:",
		"Probe Latency:",
		"Control Command",
		"Replay Buffer started",
		"http://localhost:9101/metrics",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}
}

func TestFormatExitSummary_Failure(t *testing.T) {
	out := FormatExitSummary(nil, SummaryConfig{
		Result:         "failed_died_waiting",
		ExitCode:       12,
		Duration:       9 * time.Second,
		PID:            99,
		TargetExited:   true,
		TargetExitCode: 3,
		ProbeAttempts:  5,
		ErrMessage:     "target exited with code 3",
	})

	for _, want := range []string{
		"Result:                 failed_died_waiting",
		"Exit Code:              12",
		"Target Exit Code:       3",
		"Failure",
		"target exited with code 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}

	if strings.Contains(out, "Control Command") {
		t.Error("control section should be absent when the command never ran")
	}
	if strings.Contains(out, "Metrics endpoint") {
		t.Error("metrics line should be absent when metrics were disabled")
	}
}

func TestFormatExitSummary_NoProbes(t *testing.T) {
	out := FormatExitSummary(NewRunStats(), SummaryConfig{
		Result:   "failed_no_handle",
		ExitCode: 10,
		Duration: 2 * time.Second,
	})

	if strings.Contains(out, "Readiness") {
		t.Error("readiness section should be absent when no probes ran")
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("one line"); got != "one line" {
		t.Errorf("firstLine = %q", got)
	}
	got := firstLine("first\nsecond")
	if !strings.HasPrefix(got, "first") || !strings.Contains(got, "…") {
		t.Errorf("firstLine multi = %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{61 * time.Second, "00:01:01"},
		{3*time.Hour + 25*time.Minute + 45*time.Second, "03:25:45"},
	}
	for _, tc := range tests {
		if got := FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestFormatMs(t *testing.T) {
	if got := FormatMs(1500 * time.Millisecond); got != "1500 ms" {
		t.Errorf("FormatMs = %q", got)
	}
	if got := FormatMs(500 * time.Microsecond); got != "500 µs" {
		t.Errorf("FormatMs sub-ms = %q", got)
	}
}
