package process

import "sync/atomic"

// Handle is the single per-run reference to the launched process.
// It is created by the Launcher and read-only for everyone else; the
// launcher's waiter goroutine publishes the exit status exactly once.
type Handle struct {
	pid      int
	exitCode atomic.Int64
	done     chan struct{}
}

func newHandle(pid int) *Handle {
	return &Handle{
		pid:  pid,
		done: make(chan struct{}),
	}
}

// PID returns the operating system process ID.
func (h *Handle) PID() int {
	return h.pid
}

// Alive reports whether the process has not yet exited.
func (h *Handle) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// ExitCode returns the recorded exit code and whether the process exited.
// The handle stays queryable after the process terminates.
func (h *Handle) ExitCode() (int, bool) {
	select {
	case <-h.done:
		return int(h.exitCode.Load()), true
	default:
		return 0, false
	}
}

// Done returns a channel closed when the process exits.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// markExited records the exit code and closes the done channel.
// Must be called at most once, by the launcher's waiter goroutine.
func (h *Handle) markExited(code int) {
	h.exitCode.Store(int64(code))
	close(h.done)
}
