// Package main provides the go-obs-replay-toggle CLI entry point.
//
// go-obs-replay-toggle launches OBS Studio, waits for its control surface to
// answer a readiness probe, then toggles the replay buffer exactly once. The
// launched OBS instance is left running whatever the outcome.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/randomizedcoder/go-obs-replay-toggle/internal/cleanup"
	"github.com/randomizedcoder/go-obs-replay-toggle/internal/config"
	"github.com/randomizedcoder/go-obs-replay-toggle/internal/logging"
	"github.com/randomizedcoder/go-obs-replay-toggle/internal/metrics"
	"github.com/randomizedcoder/go-obs-replay-toggle/internal/preflight"
	"github.com/randomizedcoder/go-obs-replay-toggle/internal/process"
	"github.com/randomizedcoder/go-obs-replay-toggle/internal/stats"
	"github.com/randomizedcoder/go-obs-replay-toggle/internal/supervisor"
	"github.com/randomizedcoder/go-obs-replay-toggle/internal/tui"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/go-obs-replay-toggle
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Handle version flag early (before flag parsing)
	if len(os.Args) > 1 {
		arg := os.Args[1]
		if arg == "-version" || arg == "--version" || arg == "version" {
			fmt.Printf("go-obs-replay-toggle %s\n", version)
			return 0
		}
	}

	// Parse command-line flags
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	// The TUI needs a terminal; fall back to plain logging when piped.
	tuiActive := cfg.TUIEnabled && isatty.IsTerminal(os.Stdout.Fd())

	runID := uuid.NewString()

	// Initialize logger
	// When the TUI is active, suppress logs to avoid interfering with rendering
	var logger *slog.Logger
	if tuiActive {
		logger = logging.NewLoggerWithWriter(io.Discard, "json", "info")
	} else {
		logger = logging.NewLogger(cfg.LogFormat, "info", cfg.Verbose)
	}
	logger = logger.With("run_id", runID)
	logging.SetDefault(logger)

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	// Handle -print-cmd mode
	if cfg.PrintCmd {
		printCommands(cfg)
		return 0
	}

	logger.Info("starting",
		"version", version,
		"launch_cmd", process.CommandString(cfg.LaunchCommand),
		"probe_cmd", process.CommandString(cfg.ProbeCommand),
		"control_cmd", process.CommandString(cfg.ControlCommand),
		"ready_deadline", cfg.ReadyDeadline.String(),
		"metrics_addr", cfg.MetricsAddr,
	)

	// Preflight checks
	if !cfg.SkipPreflight {
		result := preflight.RunAll(cfg.LaunchCommand, cfg.ProbeCommand, cfg.ControlCommand, cfg.CleanupDir)
		if !tuiActive {
			preflight.PrintResults(result)
		}
		if !result.Passed {
			fmt.Fprintln(os.Stderr, "Preflight checks failed (use -skip-preflight to override)")
			return 1
		}
	}

	// Single instance per machine: two runs racing the same OBS would
	// double-toggle the replay buffer.
	lock := cleanup.NewRunLock(filepath.Join(os.TempDir(), "go-obs-replay-toggle.lock"))
	if err := lock.Acquire(); err != nil {
		if err == cleanup.ErrAlreadyRunning {
			fmt.Fprintln(os.Stderr, "Another go-obs-replay-toggle run is in progress")
		} else {
			fmt.Fprintf(os.Stderr, "Lock error: %v\n", err)
		}
		return 1
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("run_lock_release_failed", "error", err)
		}
	}()

	// Clear stale safe-mode sentinels before launching
	if !cfg.SkipCleanup {
		if _, err := cleanup.RemoveStaleMarkers(cfg.CleanupDir, cfg.CleanupPrefix, logging.WithTask(logger, "cleanup")); err != nil {
			logger.Warn("marker_cleanup_failed", "error", err)
		}
	}

	// Optional Prometheus endpoint
	var collector *metrics.Collector
	if cfg.MetricsAddr != "" {
		collector = metrics.NewCollector(metrics.CollectorConfig{
			Version: version,
			RunID:   runID,
		})
		server := metrics.NewServer(cfg.MetricsAddr, logging.WithTask(logger, "metrics"))
		if err := server.Start(); err != nil {
			logger.Error("metrics_server_start_failed", "error", err)
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	runStats := stats.NewRunStats()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sup := supervisor.New(supervisor.Config{
		Launcher:      process.NewLauncher(cfg.LaunchCommand, logging.WithTask(logger, "launcher")),
		Prober:        process.NewProber(cfg.ProbeCommand, cfg.ProbeTimeout, logging.WithTask(logger, "prober")),
		Controller:    process.NewController(cfg.ControlCommand, cfg.ControlTimeout, logging.WithTask(logger, "controller")),
		SettleDelay:   cfg.SettleDelay,
		PollInterval:  cfg.PollInterval,
		ReadyDeadline: cfg.ReadyDeadline,
		Logger:        logging.WithTask(logger, "supervisor"),
		Callbacks: supervisor.Callbacks{
			OnStateChange: func(oldState, newState supervisor.State) {
				if collector != nil {
					collector.SetState(newState.String())
				}
			},
			OnLaunched: func(pid int) {
				if collector != nil {
					collector.TargetLaunched(pid)
				}
			},
			OnProbe: func(attempt int, result process.ProbeResult) {
				runStats.RecordProbe(result.Ready, result.Latency)
				if collector != nil {
					collector.RecordProbe(result.Ready, result.Latency)
				}
			},
		},
	})

	var outcome supervisor.Outcome
	if tuiActive {
		outcome = runWithTUI(ctx, sup, runStats, cfg)
	} else {
		outcome = sup.Run(ctx)
	}

	if collector != nil {
		if outcome.ReadyAfter > 0 {
			collector.RecordReady(outcome.ReadyAfter)
		}
		collector.RecordOutcome(outcome.State.String(), outcome.State.ExitCode())
	}

	fmt.Println(stats.FormatExitSummary(runStats, summaryConfig(outcome, runStats, cfg)))

	return outcome.State.ExitCode()
}

// runWithTUI drives the supervisor under the live display. The display is
// cosmetic: quitting it never cancels the run.
func runWithTUI(ctx context.Context, sup *supervisor.Supervisor, runStats *stats.RunStats, cfg *config.Config) supervisor.Outcome {
	model := tui.New(tui.Config{
		LaunchCmd:     process.CommandString(cfg.LaunchCommand),
		ProbeCmd:      process.CommandString(cfg.ProbeCommand),
		ControlCmd:    process.CommandString(cfg.ControlCommand),
		ReadyDeadline: cfg.ReadyDeadline,
		MetricsAddr:   cfg.MetricsAddr,
		Source:        sup,
		RunStats:      runStats,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())

	outcomeCh := make(chan supervisor.Outcome, 1)
	go func() {
		out := sup.Run(ctx)
		outcomeCh <- out
		tui.SendQuit(program)
	}()

	if _, err := program.Run(); err != nil {
		// Display failure is not run failure; keep waiting for the outcome.
		fmt.Fprintf(os.Stderr, "display error: %v\n", err)
	}

	return <-outcomeCh
}

// summaryConfig flattens the outcome into the exit summary's value type.
func summaryConfig(out supervisor.Outcome, runStats *stats.RunStats, cfg *config.Config) stats.SummaryConfig {
	sc := stats.SummaryConfig{
		Result:         out.State.String(),
		ExitCode:       out.State.ExitCode(),
		Duration:       runStats.Elapsed(),
		PID:            out.PID,
		TargetExited:   out.TargetExited,
		TargetExitCode: out.TargetExitCode,
		ProbeAttempts:  out.ProbeAttempts,
		ReadyAfter:     out.ReadyAfter,
		MetricsAddr:    cfg.MetricsAddr,
	}
	if out.Control != nil {
		sc.ControlRan = true
		sc.ControlExitCode = out.Control.ExitCode
		sc.ControlDuration = out.Control.Duration
		sc.ControlStdout = out.Control.Stdout
		sc.ControlStderr = out.Control.Stderr
	}
	if out.Err != nil {
		sc.ErrMessage = out.Err.Error()
	}
	return sc
}

// printCommands prints the exact commands a run would execute.
func printCommands(cfg *config.Config) {
	fmt.Println("# Commands that would be run:")
	fmt.Println()
	fmt.Printf("launch:  %s\n", process.CommandString(cfg.LaunchCommand))
	fmt.Printf("probe:   %s    (every %s, up to %s)\n",
		process.CommandString(cfg.ProbeCommand), cfg.PollInterval, cfg.ReadyDeadline)
	fmt.Printf("control: %s\n", process.CommandString(cfg.ControlCommand))
}
