package preflight

import (
	"strings"
	"testing"
)

func TestCheck_String(t *testing.T) {
	t.Run("passed", func(t *testing.T) {
		c := Check{Name: "test_check", Passed: true, Message: "all good"}
		s := c.String()
		if !strings.Contains(s, "✓") {
			t.Error("Passed check should have ✓")
		}
		if !strings.Contains(s, "all good") {
			t.Error("Should contain message")
		}
	})

	t.Run("failed", func(t *testing.T) {
		c := Check{Name: "test_check", Passed: false, Message: "missing"}
		if s := c.String(); !strings.Contains(s, "✗") {
			t.Errorf("Failed check should have ✗: %q", s)
		}
	})

	t.Run("warning", func(t *testing.T) {
		c := Check{Name: "test_check", Passed: true, Warning: true, Message: "heads up"}
		s := c.String()
		if !strings.Contains(s, "⚠") {
			t.Error("Warning check should have ⚠")
		}
		if !strings.Contains(s, "heads up") {
			t.Error("Should contain message")
		}
	})
}

func TestRunAll_AllToolsPresent(t *testing.T) {
	// sh and echo exist everywhere this test runs.
	result := RunAll(
		[]string{"sh", "-c", "true"},
		[]string{"echo", "info"},
		[]string{"echo", "toggle"},
		t.TempDir(),
	)

	if !result.Passed {
		for _, c := range result.Checks {
			t.Logf("%s", c.String())
		}
		t.Fatal("expected all checks to pass")
	}
	if len(result.Checks) != 4 {
		t.Errorf("checks = %d, want 4", len(result.Checks))
	}
}

func TestRunAll_MissingTool(t *testing.T) {
	result := RunAll(
		[]string{"definitely-not-a-real-binary-12345"},
		[]string{"echo"},
		[]string{"echo"},
		"",
	)

	if result.Passed {
		t.Error("result should fail when the launch binary is missing")
	}

	found := false
	for _, check := range result.Checks {
		if check.Name == "launch_command" {
			found = true
			if check.Passed {
				t.Error("launch_command check should fail")
			}
			if !strings.Contains(check.Message, "not found") {
				t.Errorf("message should mention 'not found': %s", check.Message)
			}
		}
	}
	if !found {
		t.Error("expected launch_command check in results")
	}
}

func TestRunAll_EmptyCommand(t *testing.T) {
	result := RunAll(nil, []string{"echo"}, []string{"echo"}, "")

	if result.Passed {
		t.Error("empty launch command should fail preflight")
	}
	if result.Checks[0].Passed {
		t.Error("launch_command check should fail for an empty argv")
	}
}

func TestCheckCleanupDir(t *testing.T) {
	t.Run("missing is warning only", func(t *testing.T) {
		c := checkCleanupDir(t.TempDir() + "/nope")
		if !c.Passed || !c.Warning {
			t.Errorf("missing dir should pass with warning, got passed=%t warning=%t", c.Passed, c.Warning)
		}
	})

	t.Run("unconfigured is warning only", func(t *testing.T) {
		c := checkCleanupDir("")
		if !c.Passed || !c.Warning {
			t.Errorf("empty dir should pass with warning, got passed=%t warning=%t", c.Passed, c.Warning)
		}
	})

	t.Run("existing dir passes", func(t *testing.T) {
		c := checkCleanupDir(t.TempDir())
		if !c.Passed || c.Warning {
			t.Errorf("existing dir should pass cleanly, got passed=%t warning=%t", c.Passed, c.Warning)
		}
	})
}

func TestSuggestFix(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{"launch_command", "flatpak"},
		{"probe_command", "obs-cmd"},
		{"control_command", "obs-cmd"},
		{"cleanup_dir", "-cleanup-dir"},
		{"unknown", "documentation"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fix := suggestFix(tc.name)
			if !strings.Contains(fix, tc.expected) {
				t.Errorf("suggestFix(%q) = %q, should contain %q", tc.name, fix, tc.expected)
			}
		})
	}
}

// TestPrintResults just verifies no panic - output goes to stdout
func TestPrintResults(t *testing.T) {
	result := &Result{
		Checks: []Check{
			{Name: "test1", Passed: true, Message: "ok"},
			{Name: "launch_command", Passed: false, Message: "missing"},
		},
		Passed: false,
	}

	PrintResults(result)
}
