// Package supervisor sequences a single launch-probe-command run.
package supervisor

// State represents the current phase of a supervised run.
type State int

const (
	// StateIdle is the initial state before Run is called.
	StateIdle State = iota

	// StateLaunching indicates the launcher has been kicked off.
	StateLaunching

	// StateAwaitingHandle indicates the settle window: waiting for the
	// launcher's one-shot hand-off.
	StateAwaitingHandle

	// StateVerifyingAlive indicates the immediate-exit check on the handle.
	StateVerifyingAlive

	// StatePollingReady indicates the bounded readiness poll loop.
	StatePollingReady

	// StateCommanding indicates the one-shot control command is running.
	StateCommanding

	// StateSucceeded is the terminal success state.
	StateSucceeded

	// StateFailedNoHandle means no process handle appeared within the settle
	// window.
	StateFailedNoHandle

	// StateFailedImmediateExit means the target exited before the poll loop
	// started.
	StateFailedImmediateExit

	// StateFailedDiedWaiting means the target died between poll iterations.
	StateFailedDiedWaiting

	// StateFailedTimeout means the target never became ready within the
	// deadline.
	StateFailedTimeout

	// StateFailedCommand means the control command itself failed.
	StateFailedCommand
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLaunching:
		return "launching"
	case StateAwaitingHandle:
		return "awaiting_handle"
	case StateVerifyingAlive:
		return "verifying_alive"
	case StatePollingReady:
		return "polling_ready"
	case StateCommanding:
		return "commanding"
	case StateSucceeded:
		return "succeeded"
	case StateFailedNoHandle:
		return "failed_no_handle"
	case StateFailedImmediateExit:
		return "failed_immediate_exit"
	case StateFailedDiedWaiting:
		return "failed_died_waiting"
	case StateFailedTimeout:
		return "failed_timeout"
	case StateFailedCommand:
		return "failed_command"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if the run ends in this state.
func (s State) IsTerminal() bool {
	switch s {
	case StateSucceeded, StateFailedNoHandle, StateFailedImmediateExit,
		StateFailedDiedWaiting, StateFailedTimeout, StateFailedCommand:
		return true
	default:
		return false
	}
}

// Failed returns true for terminal failure states.
func (s State) Failed() bool {
	return s.IsTerminal() && s != StateSucceeded
}

// ExitCode maps a terminal state to the process exit code.
// Each failure keeps a distinct code so downstream tooling can key off the
// specific reason.
func (s State) ExitCode() int {
	switch s {
	case StateSucceeded:
		return 0
	case StateFailedNoHandle:
		return 10
	case StateFailedImmediateExit:
		return 11
	case StateFailedDiedWaiting:
		return 12
	case StateFailedTimeout:
		return 13
	case StateFailedCommand:
		return 14
	default:
		// Non-terminal states have no exit code; treat as generic failure.
		return 1
	}
}
