// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gitcli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FarshadGhanbari/setup-server/pkg/process"
)

func TestRemoteURL(t *testing.T) {
	c := New(&process.FakeManager{}, "github.com", "FarshadGhanbari")

	assert.Equal(t, "https://github.com/FarshadGhanbari/myapp.git", c.RemoteURL("myapp"))
}

func TestClone(t *testing.T) {
	proc := &process.FakeManager{}
	c := New(proc, "github.com", "FarshadGhanbari")

	err := c.Clone(context.Background(), "myapp", "/home/ops/myapp")

	require.NoError(t, err)
	call := proc.LastCall()
	assert.Equal(t, "git", call.Name)
	assert.Equal(t, []string{"clone", "https://github.com/FarshadGhanbari/myapp.git", "/home/ops/myapp"}, call.Args)
}

func TestCloneNonZeroExit(t *testing.T) {
	proc := &process.FakeManager{
		Handler: func(spec process.Spec) (*process.Result, error) {
			return &process.Result{ExitCode: 128, Stderr: "fatal: repository not found"}, nil
		},
	}
	c := New(proc, "github.com", "FarshadGhanbari")

	err := c.Clone(context.Background(), "missing", "/tmp/missing")

	require.Error(t, err)
	var cmdErr *process.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 128, cmdErr.ExitCode)
	assert.Contains(t, cmdErr.Stderr, "repository not found")
}

func TestPullRunsInProjectDir(t *testing.T) {
	proc := &process.FakeManager{}
	c := New(proc, "github.com", "FarshadGhanbari")

	err := c.Pull(context.Background(), "/home/ops/myapp")

	require.NoError(t, err)
	call := proc.LastCall()
	assert.Equal(t, "git", call.Name)
	assert.Equal(t, []string{"pull"}, call.Args)
	assert.Equal(t, "/home/ops/myapp", call.Dir)
}
