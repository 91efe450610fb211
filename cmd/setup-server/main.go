// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// setup-server prepares a fresh Linux host: installs Docker, the
// GitHub CLI and Certbot, and lays out the xenz state directory. Safe
// to re-run; every step checks before it installs.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/FarshadGhanbari/setup-server/cmd/setup-server/internal/bootstrap"
	"github.com/FarshadGhanbari/setup-server/cmd/xenz/config"
	"github.com/FarshadGhanbari/setup-server/pkg/logging"
	"github.com/FarshadGhanbari/setup-server/pkg/process"
	"github.com/FarshadGhanbari/setup-server/pkg/ux"
)

func main() {
	logger := buildLogger()
	defer logger.Close()

	ux.Title("Server Setup")

	proc := process.NewManager()
	runner := bootstrap.NewRunner(bootstrap.DefaultSteps(proc), logger)

	results, err := runner.Run(context.Background())

	// The summary prints even when a step failed: the operator needs
	// to know what did get installed before the stop.
	printSummary(results)

	if err != nil {
		ux.Fail("Setup stopped early: %v", err)
		os.Exit(1)
	}
	ux.Success("Server is ready. Run `xenz` for the operations menu.")
}

func buildLogger() *logging.Logger {
	cfg := logging.Config{
		Level:   logging.LevelInfo,
		Service: "setup-server",
		Quiet:   true,
	}
	// Without a resolvable home the logger still works, stderr-only.
	if paths, err := config.ResolvePaths(); err == nil {
		cfg.LogDir = paths.LogDir
	}
	return logging.New(cfg).With("run_id", uuid.NewString())
}

func printSummary(results []bootstrap.StepResult) {
	fmt.Println()
	ux.Title("Summary")
	for _, r := range results {
		line := fmt.Sprintf("%-42s %s", r.Name, r.Status)
		switch r.Status {
		case bootstrap.StatusFailed:
			ux.Fail("%s (%v)", line, r.Err)
		case bootstrap.StatusSkipped:
			ux.Info("%s", line)
		default:
			ux.Success("%s", line)
		}
	}
}
