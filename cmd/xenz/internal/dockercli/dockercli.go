// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package dockercli wraps the docker binary and its compose plugin.
//
// Compose operations always target the production descriptor by its
// fixed filename in the project root; administrative operations (disk
// usage, pruning) run against the engine directly.
package dockercli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/FarshadGhanbari/setup-server/pkg/process"
)

// Client shells out to docker. Long-running calls such as builds have
// no timeout; interrupting the foreground command is the only way out.
type Client struct {
	proc        process.Manager
	composeFile string
}

// New creates a Client targeting the given compose descriptor filename
// (resolved relative to each project directory).
func New(proc process.Manager, composeFile string) *Client {
	return &Client{proc: proc, composeFile: composeFile}
}

// CheckInstalled verifies the docker binary is on PATH.
func (c *Client) CheckInstalled() error {
	if _, err := c.proc.LookPath("docker"); err != nil {
		return fmt.Errorf("docker is not installed: %w", err)
	}
	return nil
}

// composeArgs prefixes args with the compose subcommand and descriptor.
func (c *Client) composeArgs(dir string, args ...string) []string {
	base := []string{"compose", "-f", filepath.Join(dir, c.composeFile)}
	return append(base, args...)
}

// BuildUp rebuilds images and (re)starts the stack rooted at dir,
// detached, removing containers for services no longer in the
// descriptor.
func (c *Client) BuildUp(ctx context.Context, dir string) error {
	return c.runCompose(ctx, dir, "up", "-d", "--build", "--remove-orphans")
}

// Down stops and removes the stack's containers.
func (c *Client) Down(ctx context.Context, dir string) error {
	return c.runCompose(ctx, dir, "down")
}

// Restart restarts the stack's running containers.
func (c *Client) Restart(ctx context.Context, dir string) error {
	return c.runCompose(ctx, dir, "restart")
}

// PS returns the stack's container listing as docker prints it.
func (c *Client) PS(ctx context.Context, dir string) (string, error) {
	return c.captureCompose(ctx, dir, "ps")
}

// Logs streams the stack's logs to the terminal until interrupted.
func (c *Client) Logs(ctx context.Context, dir string, follow bool) error {
	args := []string{"logs"}
	if follow {
		args = append(args, "-f")
	}
	return c.proc.RunInteractive(ctx, process.Spec{
		Name: "docker",
		Args: c.composeArgs(dir, args...),
		Dir:  dir,
	})
}

// Exec attaches an interactive shell command inside a service
// container.
func (c *Client) Exec(ctx context.Context, dir, service string, cmd ...string) error {
	args := append([]string{"exec", service}, cmd...)
	return c.proc.RunInteractive(ctx, process.Spec{
		Name: "docker",
		Args: c.composeArgs(dir, args...),
		Dir:  dir,
	})
}

// SystemDF returns engine-wide disk usage as docker prints it.
func (c *Client) SystemDF(ctx context.Context) (string, error) {
	return c.capture(ctx, "system", "df")
}

// PruneReport summarizes one prune pass.
type PruneReport struct {
	// Target names what was pruned ("images", "volumes", ...).
	Target string

	// Output is docker's own reclaim summary.
	Output string

	// Err is set when that prune failed; the batch continues anyway.
	Err error
}

// PruneAll prunes dangling images, unused volumes, unused networks and
// the build cache, in that order. Each prune is independent: a failure
// is recorded in its report and the rest still run.
func (c *Client) PruneAll(ctx context.Context) []PruneReport {
	targets := []struct {
		name string
		args []string
	}{
		{"images", []string{"image", "prune", "-f"}},
		{"volumes", []string{"volume", "prune", "-f"}},
		{"networks", []string{"network", "prune", "-f"}},
		{"build cache", []string{"builder", "prune", "-f"}},
	}

	reports := make([]PruneReport, 0, len(targets))
	for _, t := range targets {
		out, err := c.capture(ctx, t.args...)
		reports = append(reports, PruneReport{Target: t.name, Output: out, Err: err})
	}
	return reports
}

// runCompose runs a compose subcommand in dir, surfacing non-zero
// exits as CommandError.
func (c *Client) runCompose(ctx context.Context, dir string, args ...string) error {
	res, err := c.proc.Run(ctx, process.Spec{
		Name: "docker",
		Args: c.composeArgs(dir, args...),
		Dir:  dir,
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return process.NewCommandError("docker compose "+args[0], res.ExitCode, res.Stderr, nil)
	}
	return nil
}

// captureCompose runs a compose subcommand and returns its stdout.
func (c *Client) captureCompose(ctx context.Context, dir string, args ...string) (string, error) {
	res, err := c.proc.Run(ctx, process.Spec{
		Name: "docker",
		Args: c.composeArgs(dir, args...),
		Dir:  dir,
	})
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", process.NewCommandError("docker compose "+args[0], res.ExitCode, res.Stderr, nil)
	}
	return res.Stdout, nil
}

// capture runs a plain docker subcommand and returns its stdout.
func (c *Client) capture(ctx context.Context, args ...string) (string, error) {
	res, err := c.proc.Run(ctx, process.Spec{Name: "docker", Args: args})
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", process.NewCommandError("docker "+args[0], res.ExitCode, res.Stderr, nil)
	}
	return res.Stdout, nil
}
