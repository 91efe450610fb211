// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FarshadGhanbari/setup-server/pkg/ux"
)

func runDockerPS(cmd *cobra.Command, args []string) {
	dir, err := application.projectDir()
	if err != nil {
		fail(err)
		return
	}
	out, err := application.docker.PS(context.Background(), dir)
	if err != nil {
		fail(err)
		return
	}
	fmt.Print(out)
}

func runDockerLogs(cmd *cobra.Command, args []string) {
	dir, err := application.projectDir()
	if err != nil {
		fail(err)
		return
	}
	if err := application.docker.Logs(context.Background(), dir, followLog); err != nil {
		fail(err)
	}
}

func runDockerExec(cmd *cobra.Command, args []string) {
	dir, err := application.projectDir()
	if err != nil {
		fail(err)
		return
	}
	if err := application.docker.Exec(context.Background(), dir, execService, args...); err != nil {
		fail(err)
	}
}

func runDockerRestart(cmd *cobra.Command, args []string) {
	dir, err := application.projectDir()
	if err != nil {
		fail(err)
		return
	}
	if err := application.docker.Restart(context.Background(), dir); err != nil {
		fail(err)
		return
	}
	ux.Success("Stack restarted")
}

func runDockerDown(cmd *cobra.Command, args []string) {
	dir, err := application.projectDir()
	if err != nil {
		fail(err)
		return
	}
	if err := application.docker.Down(context.Background(), dir); err != nil {
		fail(err)
		return
	}
	ux.Success("Stack stopped")
}

func runDockerDF(cmd *cobra.Command, args []string) {
	out, err := application.docker.SystemDF(context.Background())
	if err != nil {
		fail(err)
		return
	}
	fmt.Print(out)
}

func runDockerPrune(cmd *cobra.Command, args []string) {
	dockerPrune()
}

// dockerPrune runs every prune target and reports each outcome; one
// failed target does not hide the others.
func dockerPrune() {
	reports := application.docker.PruneAll(context.Background())
	for _, r := range reports {
		if r.Err != nil {
			ux.Warn("Pruning %s failed: %v", r.Target, r.Err)
			continue
		}
		ux.Success("Pruned %s", r.Target)
		if r.Output != "" {
			fmt.Print(r.Output)
		}
	}
}
