package process

import (
	"context"
	"testing"
	"time"
)

func TestProber_Ready(t *testing.T) {
	p := NewProber([]string{"echo", "OBS Studio 30.1"}, 5*time.Second, newTestLogger())

	result := p.Probe(context.Background())
	if !result.Ready {
		t.Fatal("expected ready")
	}
	if result.Diagnostic != "OBS Studio 30.1" {
		t.Errorf("Diagnostic = %q", result.Diagnostic)
	}
	if result.Latency <= 0 {
		t.Error("Latency should be positive")
	}
}

func TestProber_NotReady(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"non-zero exit", []string{"sh", "-c", "echo 'connection refused' >&2; exit 1"}},
		{"tool missing", []string{"definitely-not-a-real-binary-12345"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProber(tc.argv, 5*time.Second, newTestLogger())

			result := p.Probe(context.Background())
			if result.Ready {
				t.Error("expected not ready")
			}
			if result.Diagnostic == "" {
				t.Error("expected a diagnostic")
			}
		})
	}
}

func TestProber_Timeout(t *testing.T) {
	p := NewProber([]string{"sleep", "10"}, 50*time.Millisecond, newTestLogger())

	start := time.Now()
	result := p.Probe(context.Background())
	if result.Ready {
		t.Error("expected not ready on timeout")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("probe took %v, timeout not enforced", elapsed)
	}
}

func TestProber_RepeatedCallsAreIndependent(t *testing.T) {
	// A failing probe must not poison later attempts.
	p := NewProber([]string{"sh", "-c", "exit 1"}, time.Second, newTestLogger())
	for i := 0; i < 3; i++ {
		if p.Probe(context.Background()).Ready {
			t.Fatalf("attempt %d: expected not ready", i)
		}
	}

	ok := NewProber([]string{"true"}, time.Second, newTestLogger())
	if !ok.Probe(context.Background()).Ready {
		t.Error("expected ready")
	}
}
