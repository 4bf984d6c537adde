package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors and inconsistencies.
// Returns nil if valid, or an error describing every problem found.
func Validate(cfg *Config) error {
	var errs []error

	for _, c := range []struct {
		field string
		argv  []string
	}{
		{"launch_command", cfg.LaunchCommand},
		{"probe_command", cfg.ProbeCommand},
		{"control_command", cfg.ControlCommand},
	} {
		if err := validateArgv(c.argv); err != nil {
			errs = append(errs, ValidationError{Field: c.field, Message: err.Error()})
		}
	}

	if cfg.SettleDelay <= 0 {
		errs = append(errs, ValidationError{Field: "settle_delay", Message: "must be positive"})
	}
	if cfg.PollInterval <= 0 {
		errs = append(errs, ValidationError{Field: "poll_interval", Message: "must be positive"})
	}
	if cfg.ReadyDeadline <= 0 {
		errs = append(errs, ValidationError{Field: "ready_deadline", Message: "must be positive"})
	}
	if cfg.ProbeTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "probe_timeout", Message: "must be positive"})
	}
	if cfg.ControlTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "control_timeout", Message: "must be positive"})
	}

	// A deadline shorter than the poll interval can never see a second probe.
	if cfg.ReadyDeadline > 0 && cfg.PollInterval > 0 && cfg.ReadyDeadline < cfg.PollInterval {
		errs = append(errs, ValidationError{
			Field:   "ready_deadline",
			Message: fmt.Sprintf("must be >= poll_interval (%v), got %v", cfg.PollInterval, cfg.ReadyDeadline),
		})
	}

	if !cfg.SkipCleanup && cfg.CleanupDir != "" && cfg.CleanupPrefix == "" {
		errs = append(errs, ValidationError{
			Field:   "cleanup_prefix",
			Message: "must not be empty when cleanup is enabled (would match every file)",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.LogFormat] {
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf("must be 'json' or 'text' (got %q)", cfg.LogFormat),
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// validateArgv checks that an argv has a non-blank executable.
func validateArgv(argv []string) error {
	if len(argv) == 0 {
		return errors.New("command is required")
	}
	if strings.TrimSpace(argv[0]) == "" {
		return errors.New("executable must not be blank")
	}
	return nil
}
