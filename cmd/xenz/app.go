// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	"github.com/FarshadGhanbari/setup-server/cmd/xenz/config"
	"github.com/FarshadGhanbari/setup-server/cmd/xenz/internal/certbot"
	"github.com/FarshadGhanbari/setup-server/cmd/xenz/internal/dockercli"
	"github.com/FarshadGhanbari/setup-server/cmd/xenz/internal/ghcli"
	"github.com/FarshadGhanbari/setup-server/cmd/xenz/internal/gitcli"
	"github.com/FarshadGhanbari/setup-server/cmd/xenz/internal/project"
	"github.com/FarshadGhanbari/setup-server/pkg/logging"
	"github.com/FarshadGhanbari/setup-server/pkg/process"
	"github.com/FarshadGhanbari/setup-server/pkg/ux"
)

// app bundles every wired collaborator the commands dispatch to. One
// instance is built per invocation in main.
type app struct {
	cfg     *config.XenzConfig
	paths   config.Paths
	log     *logging.Logger
	proc    process.Manager
	prompt  *ux.Prompter
	manager *project.Manager
	docker  *dockercli.Client
	certbot *certbot.Client
	gh      *ghcli.Client
	git     *gitcli.Client
}

// newApp resolves paths, loads (or creates) the config file, and wires
// the full dependency graph.
func newApp(log *logging.Logger) (*app, error) {
	paths, err := config.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("resolving install root: %w", err)
	}
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := &config.Global

	proc := process.NewManager()
	docker := dockercli.New(proc, cfg.Compose.File)
	git := gitcli.New(proc, cfg.GitHub.Host, cfg.GitHub.Owner)

	manager := project.NewManager(project.Options{
		Store:   project.NewFileStore(paths.PointerFile),
		Git:     git,
		Builder: docker,
		Catalog: project.NewCatalog(paths.BackupDir, proc),
		Paths:   paths,
		Logger:  log,
	})

	return &app{
		cfg:     cfg,
		paths:   paths,
		log:     log,
		proc:    proc,
		prompt:  ux.NewPrompter(os.Stdin, os.Stdout),
		manager: manager,
		docker:  docker,
		certbot: certbot.New(proc, cfg.Certbot.Email),
		gh:      ghcli.New(proc),
		git:     git,
	}, nil
}

// projectDir resolves the active project's directory, the precondition
// shared by every docker-facing command.
func (a *app) projectDir() (string, error) {
	name, err := a.manager.Current()
	if err != nil {
		return "", err
	}
	return a.paths.ProjectDir(name), nil
}
