// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ghcli wraps the GitHub CLI for authentication. The device
// flow is gh's own interactive dance; this package only launches it.
package ghcli

import (
	"context"
	"fmt"
	"strings"

	"github.com/FarshadGhanbari/setup-server/pkg/process"
)

type Client struct {
	proc process.Manager
}

func New(proc process.Manager) *Client {
	return &Client{proc: proc}
}

// CheckInstalled verifies the gh binary is on PATH.
func (c *Client) CheckInstalled() error {
	if _, err := c.proc.LookPath("gh"); err != nil {
		return fmt.Errorf("gh is not installed: %w", err)
	}
	return nil
}

// Login runs gh's interactive device-flow authentication.
func (c *Client) Login(ctx context.Context) error {
	return c.proc.RunInteractive(ctx, process.Spec{
		Name: "gh",
		Args: []string{"auth", "login"},
	})
}

// Status reports whether gh currently holds valid credentials, with
// gh's own status text for display.
func (c *Client) Status(ctx context.Context) (bool, string, error) {
	res, err := c.proc.Run(ctx, process.Spec{Name: "gh", Args: []string{"auth", "status"}})
	if err != nil {
		return false, "", err
	}
	out := res.Stdout
	if strings.TrimSpace(out) == "" {
		out = res.Stderr
	}
	return res.ExitCode == 0, strings.TrimSpace(out), nil
}
