// Package process provides launching, probing, and one-shot command
// invocation for external executables.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// Kind classifies a failed command invocation.
// Every failure maps to exactly one kind at the invocation boundary.
type Kind int

const (
	// KindNotFound means the executable could not be resolved.
	KindNotFound Kind = iota

	// KindNonZeroExit means the command ran but exited non-zero.
	KindNonZeroExit

	// KindTimeout means the command exceeded its invocation timeout.
	KindTimeout

	// KindOtherIO covers any other OS-level invocation error.
	KindOtherIO
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindNonZeroExit:
		return "non_zero_exit"
	case KindTimeout:
		return "timeout"
	case KindOtherIO:
		return "io_error"
	default:
		return "unknown"
	}
}

// Invocation captures a single external command run.
type Invocation struct {
	Argv     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// CommandError is the failure result of an Invocation.
type CommandError struct {
	Kind       Kind
	Invocation *Invocation // partial capture, may be nil for KindNotFound
	Err        error
}

func (e *CommandError) Error() string {
	if e.Invocation != nil && e.Kind == KindNonZeroExit {
		return fmt.Sprintf("%s: exit code %d", e.Kind, e.Invocation.ExitCode)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ErrorKind extracts the Kind from an invocation error.
// Unrecognized errors report KindOtherIO.
func ErrorKind(err error) Kind {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Kind
	}
	return KindOtherIO
}

// Invoke runs argv with a hard timeout, capturing stdout and stderr as text.
// On failure it returns a *CommandError carrying the Kind and any partial
// capture; errors never escape unclassified.
func Invoke(ctx context.Context, argv []string, timeout time.Duration) (*Invocation, error) {
	if len(argv) == 0 {
		return nil, &CommandError{Kind: KindOtherIO, Err: errors.New("empty argv")}
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	inv := &Invocation{
		Argv:     argv,
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		Duration: time.Since(start),
	}

	if err == nil {
		return inv, nil
	}

	// Timeout wins over the secondary errors the kill produces.
	if cctx.Err() == context.DeadlineExceeded {
		inv.ExitCode = -1
		return nil, &CommandError{Kind: KindTimeout, Invocation: inv, Err: cctx.Err()}
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return nil, &CommandError{Kind: KindNotFound, Invocation: inv, Err: err}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		inv.ExitCode = exitCodeFromWait(err)
		return nil, &CommandError{Kind: KindNonZeroExit, Invocation: inv, Err: err}
	}

	inv.ExitCode = -1
	return nil, &CommandError{Kind: KindOtherIO, Invocation: inv, Err: err}
}

// exitCodeFromWait extracts the exit code from a Wait() error.
// Signal exits are reported as 128 + signal number.
func exitCodeFromWait(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			if status.Signaled() {
				return 128 + int(status.Signal())
			}
			return status.ExitStatus()
		}
	}

	// Unknown error, assume exit code 1
	return 1
}

// CommandString renders an argv as a single shell-style line for logs.
func CommandString(argv []string) string {
	return strings.Join(argv, " ")
}
