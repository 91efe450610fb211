// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package process runs external tools on behalf of setup-server and xenz.
//
// Every boundary collaborator (git, docker, certbot, gh, apt) is invoked
// through the Manager interface so that command construction can be tested
// without touching the host. Two execution modes are supported:
//
//   - Run: captures stdout/stderr for commands whose output is parsed
//     (certbot certificates, docker compose ps).
//   - RunInteractive: wires the child to the operator's terminal for
//     commands that stream or prompt (compose up --build, gh auth login,
//     docker compose logs -f).
//
// No timeout is applied to any call. A hang in an underlying tool hangs
// the caller; cancellation is the operator interrupting the foreground
// child. This matches the tool's single-operator usage model.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ErrToolNotFound is returned when the requested binary is not on PATH.
var ErrToolNotFound = errors.New("tool not found")

// Spec describes a single external command invocation.
type Spec struct {
	// Name is the binary to run (resolved via PATH).
	Name string

	// Args are the arguments, excluding the binary name.
	Args []string

	// Dir is the working directory. Empty means the caller's cwd.
	Dir string

	// Env contains extra environment variables appended to os.Environ().
	Env map[string]string
}

// CommandLine renders the invocation for logs and error messages.
func (s Spec) CommandLine() string {
	if len(s.Args) == 0 {
		return s.Name
	}
	return s.Name + " " + strings.Join(s.Args, " ")
}

// Result holds the outcome of a captured command run.
type Result struct {
	// ExitCode is the process exit code (-1 if the process never ran).
	ExitCode int

	// Stdout contains captured standard output.
	Stdout string

	// Stderr contains captured standard error.
	Stderr string

	// Duration is how long the command took.
	Duration time.Duration
}

// Manager defines the interface for external command execution.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use, although xenz itself
// runs operations strictly sequentially.
type Manager interface {
	// Run executes the command and captures its output.
	// A non-zero exit returns the Result alongside a *CommandError.
	Run(ctx context.Context, spec Spec) (*Result, error)

	// RunInteractive executes the command attached to the operator's
	// terminal. Output is not captured.
	RunInteractive(ctx context.Context, spec Spec) error

	// LookPath reports whether the binary is available, returning its
	// resolved path or ErrToolNotFound.
	LookPath(name string) (string, error)
}

// DefaultManager implements Manager using os/exec.
type DefaultManager struct{}

// NewManager creates the default process manager.
func NewManager() *DefaultManager {
	return &DefaultManager{}
}

// Compile-time interface check.
var _ Manager = (*DefaultManager)(nil)

// Run executes the command and captures its output.
//
// # Description
//
// Builds the command from the Spec, appends Spec.Env to the inherited
// environment, and waits for completion. On a non-zero exit the Result
// is still populated (callers often want stderr) and the error is a
// *CommandError carrying the exit code and trimmed stderr.
//
// # Inputs
//
//   - ctx: cancellation only; no deadline is imposed here
//   - spec: the command to run
//
// # Outputs
//
//   - *Result: captured output, never nil unless the binary failed to start
//   - error: *CommandError on non-zero exit, wrapped start error otherwise
func (m *DefaultManager) Run(ctx context.Context, spec Spec) (*Result, error) {
	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = buildEnv(spec.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		ExitCode: exitCode(cmd, err),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		return result, NewCommandError(spec.CommandLine(), result.ExitCode, result.Stderr, err)
	}
	return result, nil
}

// RunInteractive executes the command attached to the terminal.
//
// # Description
//
// Stdin, stdout and stderr are inherited from the current process so the
// child can stream output and prompt the operator (device-flow logins,
// log follows). Interrupting the child is the only cancellation path.
func (m *DefaultManager) RunInteractive(ctx context.Context, spec Spec) error {
	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = buildEnv(spec.Env)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return NewCommandError(spec.CommandLine(), exitCode(cmd, err), "", err)
	}
	return nil
}

// LookPath resolves a binary on PATH.
func (m *DefaultManager) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return path, nil
}

// buildEnv merges extra variables onto the inherited environment.
func buildEnv(extra map[string]string) []string {
	env := os.Environ()
	for k, v := range extra {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}

// exitCode extracts the exit code after Run returns.
func exitCode(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}
