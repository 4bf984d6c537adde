package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig is the TOML schema for the optional config file.
// Durations are whole seconds; zero values leave the defaults in place.
type fileConfig struct {
	Commands struct {
		Launch  []string `toml:"launch"`
		Probe   []string `toml:"probe"`
		Control []string `toml:"control"`
	} `toml:"commands"`

	Timing struct {
		SettleDelaySeconds    int `toml:"settle_delay_seconds"`
		PollIntervalSeconds   int `toml:"poll_interval_seconds"`
		ReadyDeadlineSeconds  int `toml:"ready_deadline_seconds"`
		ProbeTimeoutSeconds   int `toml:"probe_timeout_seconds"`
		ControlTimeoutSeconds int `toml:"control_timeout_seconds"`
	} `toml:"timing"`

	Cleanup struct {
		Dir    string `toml:"dir"`
		Prefix string `toml:"prefix"`
		Skip   bool   `toml:"skip"`
	} `toml:"cleanup"`

	Observability struct {
		MetricsAddr string `toml:"metrics_addr"`
		LogFormat   string `toml:"log_format"`
		Verbose     bool   `toml:"verbose"`
	} `toml:"observability"`
}

// LoadFile applies a TOML config file on top of cfg.
// Only fields present in the file are overridden.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if len(fc.Commands.Launch) > 0 {
		cfg.LaunchCommand = fc.Commands.Launch
	}
	if len(fc.Commands.Probe) > 0 {
		cfg.ProbeCommand = fc.Commands.Probe
	}
	if len(fc.Commands.Control) > 0 {
		cfg.ControlCommand = fc.Commands.Control
	}

	applySeconds(&cfg.SettleDelay, fc.Timing.SettleDelaySeconds)
	applySeconds(&cfg.PollInterval, fc.Timing.PollIntervalSeconds)
	applySeconds(&cfg.ReadyDeadline, fc.Timing.ReadyDeadlineSeconds)
	applySeconds(&cfg.ProbeTimeout, fc.Timing.ProbeTimeoutSeconds)
	applySeconds(&cfg.ControlTimeout, fc.Timing.ControlTimeoutSeconds)

	if fc.Cleanup.Dir != "" {
		cfg.CleanupDir = fc.Cleanup.Dir
	}
	if fc.Cleanup.Prefix != "" {
		cfg.CleanupPrefix = fc.Cleanup.Prefix
	}
	if fc.Cleanup.Skip {
		cfg.SkipCleanup = true
	}

	if fc.Observability.MetricsAddr != "" {
		cfg.MetricsAddr = fc.Observability.MetricsAddr
	}
	if fc.Observability.LogFormat != "" {
		cfg.LogFormat = fc.Observability.LogFormat
	}
	if fc.Observability.Verbose {
		cfg.Verbose = true
	}

	return nil
}

func applySeconds(dst *time.Duration, seconds int) {
	if seconds > 0 {
		*dst = time.Duration(seconds) * time.Second
	}
}
