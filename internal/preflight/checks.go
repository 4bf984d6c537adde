// Package preflight provides startup validation checks.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
)

// Check represents the result of a single preflight check.
type Check struct {
	Name    string // Name of the check
	Passed  bool   // Whether the check passed
	Warning bool   // True if it's a warning (non-fatal)
	Message string // Additional context
}

// Result holds the results of all preflight checks.
type Result struct {
	Checks []Check
	Passed bool
}

// String returns a human-readable summary of the check.
func (c Check) String() string {
	status := "✓"
	if !c.Passed {
		status = "✗"
	} else if c.Warning {
		status = "⚠"
	}
	return fmt.Sprintf("  %s %s: %s", status, c.Name, c.Message)
}

// RunAll executes all preflight checks. The three command argvs are checked
// for a resolvable executable; the cleanup dir is checked as a warning only,
// since a machine the target never ran on has no config dir yet.
func RunAll(launchArgv, probeArgv, controlArgv []string, cleanupDir string) *Result {
	result := &Result{
		Checks: make([]Check, 0, 4),
		Passed: true,
	}

	for _, tc := range []struct {
		name string
		argv []string
	}{
		{"launch_command", launchArgv},
		{"probe_command", probeArgv},
		{"control_command", controlArgv},
	} {
		check := checkExecutable(tc.name, tc.argv)
		result.Checks = append(result.Checks, check)
		if !check.Passed {
			result.Passed = false
		}
	}

	result.Checks = append(result.Checks, checkCleanupDir(cleanupDir))

	return result
}

// checkExecutable verifies the command's binary resolves on PATH.
func checkExecutable(name string, argv []string) Check {
	if len(argv) == 0 {
		return Check{
			Name:    name,
			Passed:  false,
			Message: "no command configured",
		}
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return Check{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("%s not found on PATH: %v", argv[0], err),
		}
	}

	return Check{
		Name:    name,
		Passed:  true,
		Message: fmt.Sprintf("%s (%s)", argv[0], path),
	}
}

// checkCleanupDir reports whether the marker cleanup dir exists.
func checkCleanupDir(dir string) Check {
	if dir == "" {
		return Check{
			Name:    "cleanup_dir",
			Passed:  true,
			Warning: true,
			Message: "not configured (cleanup skipped)",
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		return Check{
			Name:    "cleanup_dir",
			Passed:  true,
			Warning: true,
			Message: fmt.Sprintf("%s missing (cleanup will be a no-op)", dir),
		}
	}
	if !info.IsDir() {
		return Check{
			Name:    "cleanup_dir",
			Passed:  false,
			Message: fmt.Sprintf("%s is not a directory", dir),
		}
	}

	return Check{
		Name:    "cleanup_dir",
		Passed:  true,
		Message: dir,
	}
}

// PrintResults prints the preflight check results to stdout.
func PrintResults(result *Result) {
	fmt.Println("Preflight checks:")
	for _, check := range result.Checks {
		fmt.Println(check.String())
		if !check.Passed {
			fmt.Printf("    Fix: %s\n", suggestFix(check.Name))
		}
	}
	fmt.Println()
}

// suggestFix returns a suggestion for fixing a failed check.
func suggestFix(name string) string {
	switch name {
	case "launch_command":
		return "install flatpak and the OBS Studio flatpak, or point -launch-cmd at your install"
	case "probe_command", "control_command":
		return "install obs-cmd (cargo install obs-cmd) or adjust the command flags"
	case "cleanup_dir":
		return "point -cleanup-dir at the OBS config directory"
	default:
		return "see documentation"
	}
}
