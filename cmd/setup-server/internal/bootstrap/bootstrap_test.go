// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FarshadGhanbari/setup-server/pkg/logging"
	"github.com/FarshadGhanbari/setup-server/pkg/process"
)

func quietLogger() *logging.Logger {
	return logging.New(logging.Config{Quiet: true})
}

func TestRunner_AllStepsPass(t *testing.T) {
	var ran []string
	steps := []Step{
		{
			Name:    "first",
			Check:   func(ctx context.Context) bool { return false },
			Install: func(ctx context.Context) error { ran = append(ran, "first"); return nil },
		},
		{
			Name:    "second",
			Check:   func(ctx context.Context) bool { return true },
			Install: func(ctx context.Context) error { ran = append(ran, "second"); return nil },
		},
	}

	results, err := NewRunner(steps, quietLogger()).Run(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, StatusInstalled, results[0].Status)
	assert.Equal(t, StatusSkipped, results[1].Status)
	// A satisfied check skips the install entirely.
	assert.Equal(t, []string{"first"}, ran)
}

func TestRunner_FailureStopsButKeepsResults(t *testing.T) {
	boom := errors.New("apt exploded")
	var thirdRan bool
	steps := []Step{
		{
			Name:    "ok",
			Install: func(ctx context.Context) error { return nil },
		},
		{
			Name:    "broken",
			Install: func(ctx context.Context) error { return boom },
		},
		{
			Name:    "never reached",
			Install: func(ctx context.Context) error { thirdRan = true; return nil },
		},
	}

	results, err := NewRunner(steps, quietLogger()).Run(context.Background())

	assert.ErrorIs(t, err, boom)
	// The summary still covers everything that ran before the failure.
	require.Len(t, results, 2)
	assert.Equal(t, StatusInstalled, results[0].Status)
	assert.Equal(t, StatusFailed, results[1].Status)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.False(t, thirdRan)
}

func TestDockerStepCheckNeedsRunningDaemon(t *testing.T) {
	// Binary present but daemon unreachable: the check must fail so the
	// install path runs.
	proc := &process.FakeManager{
		Handler: func(spec process.Spec) (*process.Result, error) {
			return &process.Result{ExitCode: 1, Stderr: "Cannot connect to the Docker daemon"}, nil
		},
	}
	step := dockerStep(proc)

	assert.False(t, step.Check(context.Background()))
}

func TestDefaultStepsOrder(t *testing.T) {
	steps := DefaultSteps(&process.FakeManager{})

	require.Len(t, steps, 5)
	assert.Contains(t, steps[0].Name, "Base packages")
	assert.Contains(t, steps[1].Name, "Docker")
	assert.Contains(t, steps[2].Name, "GitHub CLI")
	assert.Contains(t, steps[3].Name, "Certbot")
	assert.Contains(t, steps[4].Name, "xenz")
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "installed", StatusInstalled.String())
	assert.Equal(t, "already present", StatusSkipped.String())
	assert.Equal(t, "FAILED", StatusFailed.String())
}
