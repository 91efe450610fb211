// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/FarshadGhanbari/setup-server/cmd/xenz/config"
	"github.com/FarshadGhanbari/setup-server/pkg/logging"
)

// application is the wired dependency graph, built once in main before
// cobra dispatches. Command handlers reach it through this variable.
var application *app

func main() {
	paths, err := config.ResolvePaths()
	if err != nil {
		log.Fatalf("Error resolving install root: %v", err)
	}

	logger := logging.New(logging.Config{
		Level:   logging.LevelInfo,
		LogDir:  paths.LogDir,
		Service: "xenz",
		Quiet:   true,
	})
	defer logger.Close()

	// Every invocation gets a run id so one session's events can be
	// pulled out of the shared log file.
	logger = logger.With("run_id", uuid.NewString())

	application, err = newApp(logger)
	if err != nil {
		log.Fatalf("Error initializing: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
