package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/aidanlsb/jot/internal/testutil"
)

// cliResult captures one in-process run of the CLI.
type cliResult struct {
	Stdout string
	Stderr string
	Err    error
}

// MustSucceed fails the test if the command returned an error.
func (r cliResult) MustSucceed(t *testing.T) cliResult {
	t.Helper()
	if r.Err != nil {
		t.Fatalf("expected command to succeed, got: %v\nstdout:\n%s\nstderr:\n%s", r.Err, r.Stdout, r.Stderr)
	}
	return r
}

// MustFail fails the test if the command succeeded.
func (r cliResult) MustFail(t *testing.T) cliResult {
	t.Helper()
	if r.Err == nil {
		t.Fatalf("expected command to fail\nstdout:\n%s", r.Stdout)
	}
	return r
}

func (r cliResult) AssertStdout(t *testing.T, want string) {
	t.Helper()
	if r.Stdout != want {
		t.Errorf("stdout mismatch\n got: %q\nwant: %q", r.Stdout, want)
	}
}

func (r cliResult) AssertStdoutContains(t *testing.T, substr string) {
	t.Helper()
	if !strings.Contains(r.Stdout, substr) {
		t.Errorf("expected stdout to contain %q, got:\n%s", substr, r.Stdout)
	}
}

func (r cliResult) AssertStderrContains(t *testing.T, substr string) {
	t.Helper()
	if !strings.Contains(r.Stderr, substr) {
		t.Errorf("expected stderr to contain %q, got:\n%s", substr, r.Stderr)
	}
}

// jsonResult is the decoded --json envelope.
type jsonResult struct {
	OK       bool                   `json:"ok"`
	Data     map[string]interface{} `json:"data"`
	Error    *ErrorInfo             `json:"error"`
	Warnings []Warning              `json:"warnings"`
	Meta     *Meta                  `json:"meta"`
}

func (r cliResult) JSON(t *testing.T) jsonResult {
	t.Helper()
	var out jsonResult
	if err := json.Unmarshal([]byte(r.Stdout), &out); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nraw:\n%s", err, r.Stdout)
	}
	return out
}

// runCLI runs jot against home with stdin as input. Styling is disabled and
// user-level environment is cleared so output is plain and deterministic.
func runCLI(t *testing.T, home *testutil.TestHome, stdin string, args ...string) cliResult {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	t.Setenv("JOT_HOME", "")
	t.Setenv("JOT_ACCENT", "")
	if _, ok := os.LookupEnv("EDITOR"); !ok {
		t.Setenv("EDITOR", "")
	}

	var stdout, stderr bytes.Buffer
	app := NewApp(strings.NewReader(stdin), &stdout, &stderr)
	err := app.Run(context.Background(), append([]string{"--home", home.Path}, args...))
	return cliResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Err:    err,
	}
}

// fakeEditor installs a shell script as $EDITOR. The script receives the
// temp file path as $1.
func fakeEditor(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("editor scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-editor")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write editor script: %v", err)
	}
	t.Setenv("EDITOR", path)
	return path
}
