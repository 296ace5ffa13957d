package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestEndToEndWorkflow drives a built binary. Set ZONEALARM_BIN to its path.
func TestEndToEndWorkflow(t *testing.T) {
	bin := os.Getenv("ZONEALARM_BIN")
	if bin == "" {
		t.Skip("ZONEALARM_BIN not set, skipping end-to-end test")
	}
	if _, err := os.Stat(bin); err != nil {
		t.Fatalf("binary not found at %s: %v", bin, err)
	}

	tempDir := t.TempDir()
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "XDG_CONFIG_HOME=") && !strings.HasPrefix(e, "HOME=") {
			env = append(env, e)
		}
	}
	env = append(env,
		fmt.Sprintf("XDG_CONFIG_HOME=%s", tempDir),
		fmt.Sprintf("HOME=%s", tempDir),
	)

	base := []string{
		"--config", filepath.Join(tempDir, "config.yaml"),
		"--store", filepath.Join(tempDir, "zonealarm.db"),
	}

	run := func(args ...string) (string, int) {
		t.Helper()
		cmd := exec.Command(bin, append(append([]string{}, base...), args...)...)
		cmd.Env = env
		var out bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &out
		err := cmd.Run()
		var exitErr *exec.ExitError
		switch {
		case err == nil:
			return out.String(), 0
		case errors.As(err, &exitErr):
			return out.String(), exitErr.ExitCode()
		default:
			t.Fatalf("failed to run %v: %v", args, err)
			return "", -1
		}
	}

	steps := []struct {
		name     string
		args     []string
		wantCode int
		want     string
	}{
		{"init", []string{"init"}, 0, "Initialized"},
		{"add overnight", []string{"rule", "add", "recurring", "--zone", "lobby", "--days", "mon,tue", "--start", "22:00", "--end", "07:00"}, 0, "Added rule"},
		{"duplicate", []string{"rule", "add", "recurring", "--zone", "lobby", "--days", "tue,mon", "--start", "22:00", "--end", "07:00"}, 2, "DUPLICATE"},
		{"conflict", []string{"rule", "add", "recurring", "--zone", "lobby", "--days", "mon", "--start", "06:00", "--end", "23:00"}, 2, "CONFLICTING"},
		{"check supersede", []string{"rule", "check", "recurring", "--zone", "lobby", "--days", "mon,tue", "--start", "21:00", "--end", "08:00"}, 0, "SUPERSEDED"},
		{"supersede", []string{"rule", "add", "recurring", "--zone", "lobby", "--days", "mon,tue", "--start", "21:00", "--end", "08:00", "--yes"}, 0, "Added rule"},
		{"one-time", []string{"rule", "add", "once", "--zone", "garage", "--start", "2099-01-01T22:00", "--end", "2099-01-02T06:00"}, 0, "Added rule"},
		{"zones", []string{"zone", "list"}, 0, "garage"},
		{"armed", []string{"armed", "--zone", "lobby", "--at", "2026-10-20T01:00"}, 0, "is armed at"},
		{"validate", []string{"validate"}, 0, "No conflicts"},
		{"backup", []string{"backup", "create"}, 0, "Backup created"},
	}

	for _, step := range steps {
		out, code := run(step.args...)
		if code != step.wantCode {
			t.Fatalf("%s: expected exit code %d, got %d\n%s", step.name, step.wantCode, code, out)
		}
		if !strings.Contains(out, step.want) {
			t.Errorf("%s: expected %q in output\n%s", step.name, step.want, out)
		}
	}

	out, _ := run("rule", "list", "--zone", "lobby")
	if strings.Contains(out, "22:00") || !strings.Contains(out, "21:00") {
		t.Errorf("expected only the superseding rule in lobby, got\n%s", out)
	}
}
