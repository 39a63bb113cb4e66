package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestDoctorAllChecksPass(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("WTMAN_WRAPPED", "1")

	bin := filepath.Join(home, ".wtman", "bin", "wtman")
	if err := os.MkdirAll(filepath.Dir(bin), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := runCommand(t, "doctor")
	if err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "All checks passed.") {
		t.Fatalf("doctor output = %q", out)
	}
}

func TestDoctorReportsMissingWrapper(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("WTMAN_WRAPPED", "")

	out, err := runCommand(t, "doctor")
	if err == nil {
		t.Fatalf("doctor passed with no wrapper and no binary:\n%s", out)
	}
	if !strings.Contains(out, "shell wrapper active") {
		t.Fatalf("doctor did not flag the wrapper: %q", out)
	}
	if !strings.Contains(out, "wtman binary discoverable") {
		t.Fatalf("doctor did not flag the missing binary: %q", out)
	}
}
