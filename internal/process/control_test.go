package process

import (
	"context"
	"testing"
	"time"
)

func TestController_Success(t *testing.T) {
	c := NewController([]string{"echo", "replay toggled"}, 5*time.Second, newTestLogger())

	inv, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if inv.Stdout != "replay toggled" {
		t.Errorf("Stdout = %q", inv.Stdout)
	}
	if inv.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", inv.ExitCode)
	}
}

func TestController_Failures(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		timeout  time.Duration
		wantKind Kind
	}{
		{
			name:     "non-zero exit",
			argv:     []string{"sh", "-c", "echo 'replay buffer not active' >&2; exit 1"},
			timeout:  5 * time.Second,
			wantKind: KindNonZeroExit,
		},
		{
			name:     "not found",
			argv:     []string{"definitely-not-a-real-binary-12345"},
			timeout:  5 * time.Second,
			wantKind: KindNotFound,
		},
		{
			name:     "timeout",
			argv:     []string{"sleep", "10"},
			timeout:  50 * time.Millisecond,
			wantKind: KindTimeout,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController(tc.argv, tc.timeout, newTestLogger())

			inv, err := c.Run(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if inv != nil {
				t.Error("no invocation expected on failure return")
			}
			if got := ErrorKind(err); got != tc.wantKind {
				t.Errorf("ErrorKind = %v, want %v", got, tc.wantKind)
			}
		})
	}
}
