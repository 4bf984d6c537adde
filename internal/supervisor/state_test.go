package supervisor

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateLaunching, "launching"},
		{StateAwaitingHandle, "awaiting_handle"},
		{StateVerifyingAlive, "verifying_alive"},
		{StatePollingReady, "polling_ready"},
		{StateCommanding, "commanding"},
		{StateSucceeded, "succeeded"},
		{StateFailedNoHandle, "failed_no_handle"},
		{StateFailedImmediateExit, "failed_immediate_exit"},
		{StateFailedDiedWaiting, "failed_died_waiting"},
		{StateFailedTimeout, "failed_timeout"},
		{StateFailedCommand, "failed_command"},
		{State(99), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("State(%d).String() = %q, want %q", tc.state, got, tc.want)
		}
	}
}

func TestState_IsTerminal(t *testing.T) {
	terminal := []State{
		StateSucceeded, StateFailedNoHandle, StateFailedImmediateExit,
		StateFailedDiedWaiting, StateFailedTimeout, StateFailedCommand,
	}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%v.IsTerminal() = false, want true", s)
		}
	}

	running := []State{
		StateIdle, StateLaunching, StateAwaitingHandle,
		StateVerifyingAlive, StatePollingReady, StateCommanding,
	}
	for _, s := range running {
		if s.IsTerminal() {
			t.Errorf("%v.IsTerminal() = true, want false", s)
		}
		if s.Failed() {
			t.Errorf("%v.Failed() = true, want false", s)
		}
	}

	if StateSucceeded.Failed() {
		t.Error("succeeded must not count as failed")
	}
	if !StateFailedTimeout.Failed() {
		t.Error("failed_timeout must count as failed")
	}
}

func TestState_ExitCode(t *testing.T) {
	tests := []struct {
		state State
		want  int
	}{
		{StateSucceeded, 0},
		{StateFailedNoHandle, 10},
		{StateFailedImmediateExit, 11},
		{StateFailedDiedWaiting, 12},
		{StateFailedTimeout, 13},
		{StateFailedCommand, 14},
		{StatePollingReady, 1},
		{StateIdle, 1},
	}

	for _, tc := range tests {
		if got := tc.state.ExitCode(); got != tc.want {
			t.Errorf("%v.ExitCode() = %d, want %d", tc.state, got, tc.want)
		}
	}

	// Every failure keeps a distinct code.
	seen := map[int]State{}
	for _, s := range []State{
		StateFailedNoHandle, StateFailedImmediateExit,
		StateFailedDiedWaiting, StateFailedTimeout, StateFailedCommand,
	} {
		code := s.ExitCode()
		if prev, dup := seen[code]; dup {
			t.Errorf("exit code %d shared by %v and %v", code, prev, s)
		}
		seen[code] = s
	}
}
