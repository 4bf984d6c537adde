// Package config provides configuration management for go-obs-replay-toggle.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for a single launch-and-toggle run.
type Config struct {
	// Commands (argv form, first element is the executable)
	LaunchCommand  []string `json:"launch_command"`
	ProbeCommand   []string `json:"probe_command"`
	ControlCommand []string `json:"control_command"`

	// Timing
	SettleDelay    time.Duration `json:"settle_delay"`    // wait for the launch hand-off
	PollInterval   time.Duration `json:"poll_interval"`   // between readiness probes
	ReadyDeadline  time.Duration `json:"ready_deadline"`  // overall readiness budget
	ProbeTimeout   time.Duration `json:"probe_timeout"`   // per probe invocation
	ControlTimeout time.Duration `json:"control_timeout"` // the one-shot control command

	// Stale sentinel cleanup (pre-launch side effect)
	CleanupDir    string `json:"cleanup_dir"`
	CleanupPrefix string `json:"cleanup_prefix"`
	SkipCleanup   bool   `json:"skip_cleanup"`

	// Observability
	MetricsAddr string `json:"metrics_addr"` // empty = disabled
	Verbose     bool   `json:"verbose"`
	LogFormat   string `json:"log_format"` // json, text

	// Dashboard
	TUIEnabled bool `json:"tui"`

	// Diagnostic modes
	PrintCmd      bool `json:"print_cmd"`
	SkipPreflight bool `json:"skip_preflight"`
}

// DefaultConfig returns a Config with the OBS Studio defaults.
// Every command and duration can be overridden by config file or flags.
func DefaultConfig() *Config {
	return &Config{
		LaunchCommand:  []string{"flatpak", "run", "com.obsproject.Studio", "--disable-shutdown-check"},
		ProbeCommand:   []string{"obs-cmd", "info"},
		ControlCommand: []string{"obs-cmd", "replay", "toggle"},

		SettleDelay:    2 * time.Second,
		PollInterval:   1 * time.Second,
		ReadyDeadline:  60 * time.Second,
		ProbeTimeout:   5 * time.Second,
		ControlTimeout: 10 * time.Second,

		CleanupDir:    defaultCleanupDir(),
		CleanupPrefix: "safe_mode",

		MetricsAddr: "", // Disabled unless requested
		Verbose:     false,
		LogFormat:   "json",

		TUIEnabled: false,
	}
}

// defaultCleanupDir returns the OBS Studio flatpak configuration directory,
// where the safe-mode sentinel files are written after an unclean shutdown.
func defaultCleanupDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".var", "app", "com.obsproject.Studio", "config", "obs-studio")
}
