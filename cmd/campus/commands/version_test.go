// ABOUTME: Tests for the version command
// ABOUTME: Verifies output content and SetVersion wiring
package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCmd_Output(t *testing.T) {
	SetVersion("1.2.3", "abc1234", "2026-01-01")
	defer SetVersion("dev", "none", "unknown")

	cmd := NewVersionCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Failed to run version: %v", err)
	}

	out := output.String()
	for _, want := range []string{"1.2.3", "abc1234", "2026-01-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("Version output missing %q: %s", want, out)
		}
	}
}

func TestVersionCmd_Defaults(t *testing.T) {
	cmd := NewVersionCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Failed to run version: %v", err)
	}

	if !strings.Contains(output.String(), "Campus Assistant") {
		t.Errorf("Expected product name in output, got %s", output.String())
	}
}
