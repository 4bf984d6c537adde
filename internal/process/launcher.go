package process

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"syscall"
)

// LaunchResult is the one-shot hand-off from the launcher to the supervisor:
// either a live handle or the reason no handle exists.
type LaunchResult struct {
	Handle *Handle
	Err    error
}

// Launcher starts the long-running target process.
//
// The spawned process is deliberately detached: the launcher never kills it,
// and it survives this program's own exit. Only the exit status is observed,
// via a background waiter that publishes into the Handle.
type Launcher struct {
	argv   []string
	logger *slog.Logger
}

// NewLauncher creates a launcher for the given argv.
func NewLauncher(argv []string, logger *slog.Logger) *Launcher {
	return &Launcher{
		argv:   argv,
		logger: logger,
	}
}

// Launch starts the target process asynchronously and returns a one-shot
// channel that resolves once the operating system has accepted (or rejected)
// the start request. It never confirms the process stays alive.
func (l *Launcher) Launch(ctx context.Context) <-chan LaunchResult {
	resultCh := make(chan LaunchResult, 1)

	go func() {
		l.logger.Info("launching",
			"command", CommandString(l.argv),
		)

		if len(l.argv) == 0 {
			resultCh <- LaunchResult{Err: &CommandError{Kind: KindOtherIO, Err: errors.New("empty launch argv")}}
			return
		}

		// Not CommandContext: the target must outlive this program and its
		// signal-driven cancellation.
		cmd := exec.Command(l.argv[0], l.argv[1:]...)

		// Own process group, so Ctrl+C against this program does not reach
		// the target.
		cmd.SysProcAttr = &syscall.SysProcAttr{
			Setpgid: true,
		}

		if err := cmd.Start(); err != nil {
			kind := KindOtherIO
			var execErr *exec.Error
			if errors.As(err, &execErr) {
				kind = KindNotFound
			}
			l.logger.Error("launch_failed",
				"command", l.argv[0],
				"kind", kind.String(),
				"error", err,
			)
			resultCh <- LaunchResult{Err: &CommandError{Kind: kind, Err: err}}
			return
		}

		handle := newHandle(cmd.Process.Pid)

		// Waiter publishes the exit status exactly once. It keeps running
		// after the supervisor finishes; that is fine, the process is not ours
		// to reap on exit.
		go func() {
			err := cmd.Wait()
			code := exitCodeFromWait(err)
			handle.markExited(code)
			l.logger.Debug("target_exited",
				"pid", handle.PID(),
				"exit_code", code,
			)
		}()

		l.logger.Info("launched",
			"pid", handle.PID(),
		)
		resultCh <- LaunchResult{Handle: handle}
	}()

	return resultCh
}
