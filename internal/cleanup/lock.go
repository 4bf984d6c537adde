package cleanup

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning is returned when the lock is held by another instance.
var ErrAlreadyRunning = errors.New("another instance is already running")

// RunLock guards against concurrent runs against the same target.
// Two supervisors racing the same OBS instance would double-toggle the
// replay buffer, so only one run may proceed at a time.
type RunLock struct {
	path string
	lock *flock.Flock
}

// NewRunLock creates a lock backed by the file at path.
func NewRunLock(path string) *RunLock {
	return &RunLock{
		path: path,
		lock: flock.New(path),
	}
}

// Path returns the lock file location.
func (l *RunLock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking. ErrAlreadyRunning means another
// run holds it.
func (l *RunLock) Acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock %s: %w", l.path, err)
	}
	if !ok {
		return ErrAlreadyRunning
	}
	return nil
}

// Release drops the lock. Safe to call after a failed Acquire.
func (l *RunLock) Release() error {
	return l.lock.Unlock()
}
