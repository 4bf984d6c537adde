package supervisor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/randomizedcoder/go-obs-replay-toggle/internal/process"
)

// LaunchStarter starts the target process and resolves a one-shot hand-off.
type LaunchStarter interface {
	Launch(ctx context.Context) <-chan process.LaunchResult
}

// ReadinessProber checks whether the target's control surface answers.
type ReadinessProber interface {
	Probe(ctx context.Context) process.ProbeResult
}

// CommandRunner issues the one-shot control command.
type CommandRunner interface {
	Run(ctx context.Context) (*process.Invocation, error)
}

// Callbacks contains optional callback functions for supervisor events.
type Callbacks struct {
	// OnStateChange is called whenever the run state changes.
	OnStateChange func(oldState, newState State)

	// OnLaunched is called once a process handle exists.
	OnLaunched func(pid int)

	// OnProbe is called after every probe attempt.
	OnProbe func(attempt int, result process.ProbeResult)
}

// Config holds configuration for creating a new Supervisor.
type Config struct {
	Launcher   LaunchStarter
	Prober     ReadinessProber
	Controller CommandRunner

	SettleDelay   time.Duration
	PollInterval  time.Duration
	ReadyDeadline time.Duration

	Logger    *slog.Logger
	Callbacks Callbacks
}

// Outcome is the terminal report of a run.
type Outcome struct {
	State State

	// Target process, when a handle was obtained.
	PID            int
	TargetExited   bool
	TargetExitCode int

	// Readiness polling.
	ProbeAttempts int
	ReadyAfter    time.Duration // from poll loop entry to the ready probe

	// Control command capture, when one was attempted.
	Control *process.Invocation

	// Err carries the failure detail for the terminal state, nil on success.
	Err error
}

// Supervisor drives one run through the launch, settle, liveness, poll, and
// command phases. It never restarts anything: every failure is terminal and
// exactly one control attempt is made per run.
type Supervisor struct {
	cfg    Config
	logger *slog.Logger

	state   State
	stateMu sync.RWMutex

	startNanos atomic.Int64
	attempts   atomic.Int64
	pid        atomic.Int64
}

// New creates a new Supervisor with the given configuration.
func New(cfg Config) *Supervisor {
	return &Supervisor{
		cfg:    cfg,
		logger: cfg.Logger,
		state:  StateIdle,
	}
}

// Run executes the full sequence and blocks until a terminal state.
// The launched target is never torn down, whatever the outcome.
func (s *Supervisor) Run(ctx context.Context) Outcome {
	s.startNanos.Store(time.Now().UnixNano())

	// Launch is concurrent with the rest of the setup; the hand-off is an
	// explicit one-shot channel awaited below with the settle window as its
	// timeout, not a blind sleep.
	s.setState(StateLaunching)
	resultCh := s.cfg.Launcher.Launch(ctx)

	s.setState(StateAwaitingHandle)
	handle, outcome := s.awaitHandle(ctx, resultCh)
	if outcome != nil {
		return s.finish(*outcome)
	}

	s.setState(StateVerifyingAlive)
	if code, exited := handle.ExitCode(); exited {
		s.logger.Error("target_exited_immediately",
			"pid", handle.PID(),
			"exit_code", code,
		)
		return s.finish(Outcome{
			State:          StateFailedImmediateExit,
			PID:            handle.PID(),
			TargetExited:   true,
			TargetExitCode: code,
		})
	}
	s.logger.Info("target_running", "pid", handle.PID())

	s.setState(StatePollingReady)
	ready, outcome := s.pollReady(ctx, handle)
	if outcome != nil {
		return s.finish(*outcome)
	}

	s.setState(StateCommanding)
	inv, err := s.cfg.Controller.Run(ctx)
	if err != nil {
		out := Outcome{
			State:         StateFailedCommand,
			PID:           handle.PID(),
			ProbeAttempts: int(s.attempts.Load()),
			ReadyAfter:    ready,
			Err:           err,
		}
		var cmdErr *process.CommandError
		if e, ok := err.(*process.CommandError); ok {
			cmdErr = e
		}
		if cmdErr != nil && cmdErr.Invocation != nil {
			out.Control = cmdErr.Invocation
		}
		return s.finish(out)
	}

	return s.finish(Outcome{
		State:         StateSucceeded,
		PID:           handle.PID(),
		ProbeAttempts: int(s.attempts.Load()),
		ReadyAfter:    ready,
		Control:       inv,
	})
}

// awaitHandle waits out the settle window for the launcher hand-off.
// Returns the handle, or a terminal outcome when none appeared.
//
// Receiving the handle does not end the window early: the remainder gives a
// fast-crashing target the chance to be caught by the immediate-exit check,
// which keeps the observable behavior of the fixed settle delay.
func (s *Supervisor) awaitHandle(ctx context.Context, resultCh <-chan process.LaunchResult) (*process.Handle, *Outcome) {
	settle := time.NewTimer(s.cfg.SettleDelay)
	defer settle.Stop()

	var handle *process.Handle
	select {
	case res := <-resultCh:
		if res.Err != nil {
			s.logger.Error("no_process_handle",
				"error", res.Err,
				"settle_delay", s.cfg.SettleDelay.String(),
			)
			return nil, &Outcome{State: StateFailedNoHandle, Err: res.Err}
		}
		handle = res.Handle
	case <-settle.C:
		s.logger.Error("no_process_handle",
			"settle_delay", s.cfg.SettleDelay.String(),
			"reason", "launch hand-off never arrived",
		)
		return nil, &Outcome{State: StateFailedNoHandle}
	case <-ctx.Done():
		s.logger.Error("no_process_handle", "reason", "cancelled", "error", ctx.Err())
		return nil, &Outcome{State: StateFailedNoHandle, Err: ctx.Err()}
	}

	s.pid.Store(int64(handle.PID()))
	if s.cfg.Callbacks.OnLaunched != nil {
		s.cfg.Callbacks.OnLaunched(handle.PID())
	}

	// Sit out the rest of the settle window, leaving early only if the
	// target exits first.
	select {
	case <-settle.C:
	case <-handle.Done():
	case <-ctx.Done():
	}

	return handle, nil
}

// pollReady runs the bounded readiness loop. Returns the time-to-ready on
// success, or a terminal outcome on deadline, target death, or cancellation.
func (s *Supervisor) pollReady(ctx context.Context, handle *process.Handle) (time.Duration, *Outcome) {
	s.logger.Info("waiting_for_ready",
		"deadline", s.cfg.ReadyDeadline.String(),
		"interval", s.cfg.PollInterval.String(),
	)

	pollStart := time.Now()
	for time.Since(pollStart) < s.cfg.ReadyDeadline {
		attempt := int(s.attempts.Add(1))

		result := s.cfg.Prober.Probe(ctx)
		if s.cfg.Callbacks.OnProbe != nil {
			s.cfg.Callbacks.OnProbe(attempt, result)
		}

		if result.Ready {
			readyAfter := time.Since(pollStart)
			s.logger.Info("target_ready",
				"attempts", attempt,
				"ready_after", readyAfter.String(),
			)
			return readyAfter, nil
		}

		s.logger.Debug("not_ready_yet",
			"attempt", attempt,
			"retry_in", s.cfg.PollInterval.String(),
		)

		select {
		case <-handle.Done():
			// Fall through to the exit-code check below.
		case <-ctx.Done():
			s.logger.Error("readiness_wait_cancelled", "error", ctx.Err())
			return 0, &Outcome{
				State:         StateFailedTimeout,
				PID:           handle.PID(),
				ProbeAttempts: attempt,
				Err:           ctx.Err(),
			}
		case <-time.After(s.cfg.PollInterval):
		}

		if code, exited := handle.ExitCode(); exited {
			s.logger.Warn("target_died_while_waiting",
				"pid", handle.PID(),
				"exit_code", code,
			)
			return 0, &Outcome{
				State:          StateFailedDiedWaiting,
				PID:            handle.PID(),
				TargetExited:   true,
				TargetExitCode: code,
				ProbeAttempts:  attempt,
			}
		}
	}

	s.logger.Error("readiness_deadline_exceeded",
		"deadline", s.cfg.ReadyDeadline.String(),
		"attempts", s.attempts.Load(),
	)
	return 0, &Outcome{
		State:         StateFailedTimeout,
		PID:           handle.PID(),
		ProbeAttempts: int(s.attempts.Load()),
	}
}

// finish records the terminal state and returns the outcome.
func (s *Supervisor) finish(out Outcome) Outcome {
	s.setState(out.State)

	attrs := []any{
		"state", out.State.String(),
		"elapsed", s.Elapsed().String(),
		"probe_attempts", out.ProbeAttempts,
	}
	if out.PID > 0 {
		attrs = append(attrs, "pid", out.PID)
	}
	if out.TargetExited {
		attrs = append(attrs, "target_exit_code", out.TargetExitCode)
	}
	if out.Err != nil {
		attrs = append(attrs, "error", out.Err)
	}

	if out.State == StateSucceeded {
		s.logger.Info("run_succeeded", attrs...)
	} else {
		s.logger.Error("run_failed", attrs...)
	}

	return out
}

// State returns the current state of the run.
func (s *Supervisor) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// setState updates the state and calls the callback if registered.
func (s *Supervisor) setState(newState State) {
	s.stateMu.Lock()
	oldState := s.state
	s.state = newState
	s.stateMu.Unlock()

	if oldState != newState {
		s.logger.Debug("state_change",
			"from", oldState.String(),
			"to", newState.String(),
		)
		if s.cfg.Callbacks.OnStateChange != nil {
			s.cfg.Callbacks.OnStateChange(oldState, newState)
		}
	}
}

// ProbeAttempts returns the number of probe attempts so far.
func (s *Supervisor) ProbeAttempts() int {
	return int(s.attempts.Load())
}

// PID returns the target process ID, or 0 before the hand-off.
func (s *Supervisor) PID() int {
	return int(s.pid.Load())
}

// Elapsed returns the time since Run started.
func (s *Supervisor) Elapsed() time.Duration {
	start := s.startNanos.Load()
	if start == 0 {
		return 0
	}
	return time.Since(time.Unix(0, start))
}
