package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// argvValue is a custom flag type that splits a command line into argv form.
type argvValue struct {
	argv *[]string
}

func (a argvValue) String() string {
	if a.argv == nil {
		return ""
	}
	return strings.Join(*a.argv, " ")
}

func (a argvValue) Set(value string) error {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return fmt.Errorf("command must not be empty")
	}
	*a.argv = fields
	return nil
}

// ParseFlags parses command-line flags and returns a Config.
// A -config file, if given, is applied first so that flags win.
func ParseFlags() (*Config, error) {
	return parseFlags(os.Args[1:])
}

// parseFlags is the testable core of ParseFlags.
func parseFlags(args []string) (*Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("go-obs-replay-toggle", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `go-obs-replay-toggle - launch OBS Studio and toggle the replay buffer once ready

Usage:
  go-obs-replay-toggle [flags]

Commands:
  -launch-cmd, -probe-cmd, -control-cmd

Timing:
  -settle-delay, -poll-interval, -ready-deadline, -probe-timeout, -control-timeout

Cleanup:
  -cleanup-dir, -cleanup-prefix, -skip-cleanup

Observability:
  -metrics, -v, -log-format, -tui

Safety & Diagnostics:
  -config, -print-cmd, -skip-preflight

Examples:
  # Plain run with the defaults (flatpak OBS + obs-cmd)
  go-obs-replay-toggle

  # Longer readiness budget on a slow machine
  go-obs-replay-toggle -ready-deadline 120s

  # Drive a different application entirely
  go-obs-replay-toggle -launch-cmd "myapp --daemon" -probe-cmd "myapp-ctl ping" -control-cmd "myapp-ctl record toggle"

`)
		fs.PrintDefaults()
	}

	// Config file is applied before the remaining flags are parsed,
	// so explicit flags override file values.
	var configFile string
	peekConfigFlag(args, &configFile)
	if configFile != "" {
		if err := LoadFile(configFile, cfg); err != nil {
			return nil, err
		}
	}
	fs.StringVar(&configFile, "config", configFile, "Path to TOML config file")

	// Commands
	fs.Var(argvValue{&cfg.LaunchCommand}, "launch-cmd", "Launch command (quoted, whitespace separated)")
	fs.Var(argvValue{&cfg.ProbeCommand}, "probe-cmd", "Readiness probe command")
	fs.Var(argvValue{&cfg.ControlCommand}, "control-cmd", "One-shot control command issued when ready")

	// Timing
	fs.DurationVar(&cfg.SettleDelay, "settle-delay", cfg.SettleDelay, "How long to wait for the launch hand-off")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "Delay between readiness probes")
	fs.DurationVar(&cfg.ReadyDeadline, "ready-deadline", cfg.ReadyDeadline, "Overall readiness budget")
	fs.DurationVar(&cfg.ProbeTimeout, "probe-timeout", cfg.ProbeTimeout, "Per-probe invocation timeout")
	fs.DurationVar(&cfg.ControlTimeout, "control-timeout", cfg.ControlTimeout, "Control command timeout")

	// Cleanup
	fs.StringVar(&cfg.CleanupDir, "cleanup-dir", cfg.CleanupDir, "Directory to scan for stale sentinel files before launch")
	fs.StringVar(&cfg.CleanupPrefix, "cleanup-prefix", cfg.CleanupPrefix, "Filename prefix identifying stale sentinels")
	fs.BoolVar(&cfg.SkipCleanup, "skip-cleanup", cfg.SkipCleanup, "Skip the stale sentinel cleanup")

	// Observability
	fs.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Prometheus metrics address (empty = disabled)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose logging")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `Log format: "json" or "text"`)

	// Dashboard
	fs.BoolVar(&cfg.TUIEnabled, "tui", cfg.TUIEnabled, "Enable live terminal dashboard")

	// Diagnostics
	fs.BoolVar(&cfg.PrintCmd, "print-cmd", cfg.PrintCmd, "Print the configured commands and exit")
	fs.BoolVar(&cfg.SkipPreflight, "skip-preflight", cfg.SkipPreflight, "Skip preflight checks")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

// peekConfigFlag scans raw args for -config so the file can be loaded
// before the flag set parses the rest.
func peekConfigFlag(args []string, out *string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-config" || arg == "--config":
			if i+1 < len(args) {
				*out = args[i+1]
			}
		case strings.HasPrefix(arg, "-config="):
			*out = strings.TrimPrefix(arg, "-config=")
		case strings.HasPrefix(arg, "--config="):
			*out = strings.TrimPrefix(arg, "--config=")
		}
	}
}
