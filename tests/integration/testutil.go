// Package integration drives the built stockroom binary through piped
// menu input.
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var (
	// stockroomBin is the path to the built stockroom binary.
	stockroomBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv provides an isolated config and data directory per test.
type TestEnv struct {
	t         *testing.T
	ConfigDir string
	DataDir   string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build stockroom: %v", buildErr)
	}
	if stockroomBin == "" {
		t.Fatal("stockroom binary not built")
	}

	tempDir := t.TempDir()
	return &TestEnv{
		t:         t,
		ConfigDir: filepath.Join(tempDir, "config"),
		DataDir:   filepath.Join(tempDir, "data"),
	}
}

// CmdResult holds the result of a stockroom execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes stockroom with menu input lines piped to stdin.
func (e *TestEnv) Run(input []string, args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(stockroomBin, allArgs...)
	cmd.Env = append(os.Environ(), "STOCKROOM_DATA_DIR=", "NO_COLOR=1")

	stdin := ""
	if len(input) > 0 {
		stdin = strings.Join(input, "\n") + "\n"
	}
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			e.t.Fatalf("failed to run stockroom: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRun executes stockroom and fails the test on a non-zero exit.
func (e *TestEnv) MustRun(input []string, args ...string) CmdResult {
	e.t.Helper()
	result := e.Run(input, args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("stockroom %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// DataFile returns the path of a file inside the data directory.
func (e *TestEnv) DataFile(name string) string {
	return filepath.Join(e.DataDir, name)
}

// WriteDataFile seeds the data directory with content.
func (e *TestEnv) WriteDataFile(name, content string) {
	e.t.Helper()
	if err := os.MkdirAll(e.DataDir, 0o755); err != nil {
		e.t.Fatalf("failed to create data dir: %v", err)
	}
	if err := os.WriteFile(e.DataFile(name), []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write %s: %v", name, err)
	}
}

// ReadDataFile returns the content of a file inside the data directory.
func (e *TestEnv) ReadDataFile(name string) string {
	e.t.Helper()
	data, err := os.ReadFile(e.DataFile(name))
	if err != nil {
		e.t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}
