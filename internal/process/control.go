package process

import (
	"context"
	"log/slog"
	"time"
)

// Controller issues the one-shot control command once the target is ready.
// Exactly one attempt is made per run; failures are terminal for the caller.
type Controller struct {
	argv    []string
	timeout time.Duration
	logger  *slog.Logger
}

// NewController creates a controller for the given command.
func NewController(argv []string, timeout time.Duration, logger *slog.Logger) *Controller {
	return &Controller{
		argv:    argv,
		timeout: timeout,
		logger:  logger,
	}
}

// Run invokes the control command once. On failure the returned error is a
// *CommandError whose Invocation (when present) carries exit code and stderr
// for diagnostics.
func (c *Controller) Run(ctx context.Context) (*Invocation, error) {
	c.logger.Info("control_command_starting",
		"command", CommandString(c.argv),
	)

	inv, err := Invoke(ctx, c.argv, c.timeout)
	if err != nil {
		var cmdErr *CommandError
		if e, ok := err.(*CommandError); ok {
			cmdErr = e
		}
		attrs := []any{
			"kind", ErrorKind(err).String(),
			"error", err,
		}
		if cmdErr != nil && cmdErr.Invocation != nil {
			attrs = append(attrs,
				"exit_code", cmdErr.Invocation.ExitCode,
				"stderr", cmdErr.Invocation.Stderr,
			)
		}
		c.logger.Error("control_command_failed", attrs...)
		return nil, err
	}

	c.logger.Info("control_command_succeeded",
		"duration", inv.Duration.String(),
	)
	if inv.Stdout != "" {
		c.logger.Info("control_command_output", "stdout", inv.Stdout)
	}
	if inv.Stderr != "" {
		// Command succeeded but still wrote to stderr.
		c.logger.Warn("control_command_stderr", "stderr", inv.Stderr)
	}

	return inv, nil
}
