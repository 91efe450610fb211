// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package bootstrap runs the host-preparation sequence: a fixed list of
// idempotent steps, each a "check if present, install if absent" pair
// over the system package manager.
package bootstrap

import (
	"context"
	"time"

	"github.com/FarshadGhanbari/setup-server/pkg/logging"
	"github.com/FarshadGhanbari/setup-server/pkg/process"
)

// Step is one unit of host preparation.
type Step struct {
	// Name identifies the step in the summary.
	Name string

	// Check reports whether the step's outcome is already present; a
	// true result skips Install.
	Check func(ctx context.Context) bool

	// Install performs the step.
	Install func(ctx context.Context) error
}

// Status classifies a step's outcome in the summary.
type Status int

const (
	StatusInstalled Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusSkipped:
		return "already present"
	case StatusFailed:
		return "FAILED"
	default:
		return "unknown"
	}
}

// StepResult records one step's outcome for the final summary.
type StepResult struct {
	Name     string
	Status   Status
	Err      error
	Duration time.Duration
}

// Runner executes a step list in order.
//
// # Description
//
// A failed step stops the sequence — later steps usually depend on
// earlier ones — but the results collected so far are always returned,
// so the caller can print a summary of what did get installed. Partial
// success is surfaced, not hidden.
type Runner struct {
	steps []Step
	log   *logging.Logger
}

// NewRunner creates a Runner over the given steps.
func NewRunner(steps []Step, log *logging.Logger) *Runner {
	return &Runner{steps: steps, log: log}
}

// Run executes the steps. The returned results cover every step that
// ran (or was skipped); err is the first step failure, nil when all
// passed.
func (r *Runner) Run(ctx context.Context) ([]StepResult, error) {
	results := make([]StepResult, 0, len(r.steps))

	for _, step := range r.steps {
		start := time.Now()

		if step.Check != nil && step.Check(ctx) {
			r.log.Info("step already satisfied", "step", step.Name)
			results = append(results, StepResult{
				Name: step.Name, Status: StatusSkipped, Duration: time.Since(start),
			})
			continue
		}

		r.log.Info("running step", "step", step.Name)
		if err := step.Install(ctx); err != nil {
			r.log.Error("step failed", "step", step.Name, "error", err)
			results = append(results, StepResult{
				Name: step.Name, Status: StatusFailed, Err: err, Duration: time.Since(start),
			})
			return results, err
		}

		r.log.Info("step complete", "step", step.Name, "duration", time.Since(start))
		results = append(results, StepResult{
			Name: step.Name, Status: StatusInstalled, Duration: time.Since(start),
		})
	}
	return results, nil
}

// toolPresent reports whether a binary is on PATH.
func toolPresent(proc process.Manager, name string) bool {
	_, err := proc.LookPath(name)
	return err == nil
}

// runAll executes commands in order, stopping at the first failure.
func runAll(ctx context.Context, proc process.Manager, cmds ...process.Spec) error {
	for _, spec := range cmds {
		res, err := proc.Run(ctx, spec)
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return process.NewCommandError(spec.CommandLine(), res.ExitCode, res.Stderr, nil)
		}
	}
	return nil
}
