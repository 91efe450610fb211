// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package process

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_CommandLine(t *testing.T) {
	assert.Equal(t, "docker", Spec{Name: "docker"}.CommandLine())
	assert.Equal(t, "git pull --ff-only",
		Spec{Name: "git", Args: []string{"pull", "--ff-only"}}.CommandLine())
}

func TestDefaultManager_Run_CapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	m := NewManager()
	result, err := m.Run(context.Background(), Spec{
		Name: "sh",
		Args: []string{"-c", "echo out; echo err >&2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
}

func TestDefaultManager_Run_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	m := NewManager()
	result, err := m.Run(context.Background(), Spec{
		Name: "sh",
		Args: []string{"-c", "echo boom >&2; exit 3"},
	})
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 3, result.ExitCode)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "boom", cmdErr.Stderr)
}

func TestDefaultManager_Run_ExtraEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	m := NewManager()
	result, err := m.Run(context.Background(), Spec{
		Name: "sh",
		Args: []string{"-c", "printf %s \"$XENZ_TEST_VAR\""},
		Env:  map[string]string{"XENZ_TEST_VAR": "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", result.Stdout)
}

func TestDefaultManager_LookPath_Missing(t *testing.T) {
	m := NewManager()
	_, err := m.LookPath("definitely-not-a-real-binary-xenz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrToolNotFound))
}

func TestCommandError_Formatting(t *testing.T) {
	underlying := errors.New("exit status 1")

	withStderr := NewCommandError("certbot renew", 1, "  rate limited\n", underlying)
	assert.Equal(t, "certbot renew (exit 1): rate limited", withStderr.Error())
	assert.True(t, withStderr.HasStderr())
	assert.Equal(t, underlying, errors.Unwrap(withStderr))

	withoutStderr := NewCommandError("gh auth login", 130, "", underlying)
	assert.Equal(t, "gh auth login (exit 130): exit status 1", withoutStderr.Error())
	assert.False(t, withoutStderr.HasStderr())
}

func TestFakeManager_RecordsCalls(t *testing.T) {
	fake := &FakeManager{
		Handler: func(spec Spec) (*Result, error) {
			return &Result{ExitCode: 0, Stdout: "ok"}, nil
		},
	}

	result, err := fake.Run(context.Background(), Spec{Name: "git", Args: []string{"pull"}})
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Stdout)

	require.Len(t, fake.Calls(), 1)
	assert.Equal(t, "git pull", fake.LastCall().CommandLine())
}

func TestFakeManager_MissingTools(t *testing.T) {
	fake := &FakeManager{MissingTools: map[string]bool{"certbot": true}}

	_, err := fake.LookPath("certbot")
	assert.True(t, errors.Is(err, ErrToolNotFound))

	path, err := fake.LookPath("docker")
	require.NoError(t, err)
	assert.Equal(t, "docker", path)
}
