// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package gitcli wraps the git binary for the two operations the
// lifecycle needs: cloning a project from the fixed remote owner and
// pulling an existing checkout.
package gitcli

import (
	"context"
	"fmt"

	"github.com/FarshadGhanbari/setup-server/pkg/process"
)

// Client invokes git against a fixed remote host and owner. Network
// failures are surfaced as-is; there is no retry.
type Client struct {
	proc  process.Manager
	host  string
	owner string
}

// New creates a Client. host is the bare hostname ("github.com") and
// owner the account every project repository lives under.
func New(proc process.Manager, host, owner string) *Client {
	return &Client{proc: proc, host: host, owner: owner}
}

// RemoteURL returns the https clone URL for the named project.
func (c *Client) RemoteURL(name string) string {
	return fmt.Sprintf("https://%s/%s/%s.git", c.host, c.owner, name)
}

// Clone fetches the named project repository into destDir.
func (c *Client) Clone(ctx context.Context, name, destDir string) error {
	res, err := c.proc.Run(ctx, process.Spec{
		Name: "git",
		Args: []string{"clone", c.RemoteURL(name), destDir},
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return process.NewCommandError("git clone", res.ExitCode, res.Stderr, nil)
	}
	return nil
}

// Pull updates the checkout at dir to the latest upstream state.
func (c *Client) Pull(ctx context.Context, dir string) error {
	res, err := c.proc.Run(ctx, process.Spec{
		Name: "git",
		Args: []string{"pull"},
		Dir:  dir,
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return process.NewCommandError("git pull", res.ExitCode, res.Stderr, nil)
	}
	return nil
}
