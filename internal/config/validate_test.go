package config

import (
	"strings"
	"testing"
	"time"
)

func validTestConfig() *Config {
	cfg := DefaultConfig()
	cfg.CleanupDir = "/tmp/does-not-matter"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError string // substring of the error, empty = valid
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:      "missing launch command",
			mutate:    func(cfg *Config) { cfg.LaunchCommand = nil },
			wantError: "launch_command",
		},
		{
			name:      "blank probe executable",
			mutate:    func(cfg *Config) { cfg.ProbeCommand = []string{"  "} },
			wantError: "probe_command",
		},
		{
			name:      "missing control command",
			mutate:    func(cfg *Config) { cfg.ControlCommand = []string{} },
			wantError: "control_command",
		},
		{
			name:      "zero settle delay",
			mutate:    func(cfg *Config) { cfg.SettleDelay = 0 },
			wantError: "settle_delay",
		},
		{
			name:      "negative poll interval",
			mutate:    func(cfg *Config) { cfg.PollInterval = -time.Second },
			wantError: "poll_interval",
		},
		{
			name:      "zero probe timeout",
			mutate:    func(cfg *Config) { cfg.ProbeTimeout = 0 },
			wantError: "probe_timeout",
		},
		{
			name:      "zero control timeout",
			mutate:    func(cfg *Config) { cfg.ControlTimeout = 0 },
			wantError: "control_timeout",
		},
		{
			name: "deadline shorter than interval",
			mutate: func(cfg *Config) {
				cfg.PollInterval = 10 * time.Second
				cfg.ReadyDeadline = 5 * time.Second
			},
			wantError: "ready_deadline",
		},
		{
			name: "cleanup without prefix",
			mutate: func(cfg *Config) {
				cfg.CleanupPrefix = ""
			},
			wantError: "cleanup_prefix",
		},
		{
			name: "cleanup prefix not required when skipped",
			mutate: func(cfg *Config) {
				cfg.CleanupPrefix = ""
				cfg.SkipCleanup = true
			},
		},
		{
			name:      "bad log format",
			mutate:    func(cfg *Config) { cfg.LogFormat = "xml" },
			wantError: "log_format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validTestConfig()
			tc.mutate(cfg)

			err := Validate(cfg)
			if tc.wantError == "" {
				if err != nil {
					t.Errorf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.wantError)
			}
			if !strings.Contains(err.Error(), tc.wantError) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.wantError)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validTestConfig()
	cfg.LaunchCommand = nil
	cfg.PollInterval = 0
	cfg.LogFormat = "yaml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"launch_command", "poll_interval", "log_format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error missing %q: %v", want, err)
		}
	}
}
