// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/FarshadGhanbari/setup-server/cmd/xenz/config"
	"github.com/FarshadGhanbari/setup-server/pkg/process"
)

// DefaultSteps is the standard host-preparation sequence for a fresh
// Debian/Ubuntu server: base packages, Docker engine with the compose
// plugin, GitHub CLI, Certbot, then the xenz state layout.
func DefaultSteps(proc process.Manager) []Step {
	return []Step{
		basePackagesStep(proc),
		dockerStep(proc),
		githubCLIStep(proc),
		certbotStep(proc),
		xenzStateStep(),
	}
}

func apt(args ...string) process.Spec {
	return process.Spec{
		Name: "apt-get",
		Args: args,
		Env:  map[string]string{"DEBIAN_FRONTEND": "noninteractive"},
	}
}

func basePackagesStep(proc process.Manager) Step {
	return Step{
		Name: "Base packages (curl, git, tar, gnupg)",
		Check: func(ctx context.Context) bool {
			for _, tool := range []string{"curl", "git", "tar", "gpg"} {
				if !toolPresent(proc, tool) {
					return false
				}
			}
			return true
		},
		Install: func(ctx context.Context) error {
			return runAll(ctx, proc,
				apt("update"),
				apt("install", "-y", "ca-certificates", "curl", "git", "tar", "gnupg"),
			)
		},
	}
}

func dockerStep(proc process.Manager) Step {
	return Step{
		Name: "Docker engine + compose plugin",
		Check: func(ctx context.Context) bool {
			if !toolPresent(proc, "docker") {
				return false
			}
			// The binary alone is not enough; the daemon must answer.
			res, err := proc.Run(ctx, process.Spec{Name: "docker", Args: []string{"info"}})
			return err == nil && res.ExitCode == 0
		},
		Install: func(ctx context.Context) error {
			if err := runAll(ctx, proc,
				apt("update"),
				apt("install", "-y", "docker.io", "docker-compose-v2"),
				process.Spec{Name: "systemctl", Args: []string{"enable", "--now", "docker"}},
			); err != nil {
				return err
			}
			if user := os.Getenv("SUDO_USER"); user != "" {
				return runAll(ctx, proc,
					process.Spec{Name: "usermod", Args: []string{"-aG", "docker", user}},
				)
			}
			return nil
		},
	}
}

func githubCLIStep(proc process.Manager) Step {
	return Step{
		Name: "GitHub CLI",
		Check: func(ctx context.Context) bool {
			return toolPresent(proc, "gh")
		},
		Install: func(ctx context.Context) error {
			return runAll(ctx, proc,
				apt("update"),
				apt("install", "-y", "gh"),
			)
		},
	}
}

func certbotStep(proc process.Manager) Step {
	return Step{
		Name: "Certbot",
		Check: func(ctx context.Context) bool {
			return toolPresent(proc, "certbot")
		},
		Install: func(ctx context.Context) error {
			return runAll(ctx, proc,
				apt("install", "-y", "certbot"),
			)
		},
	}
}

// xenzStateStep lays out the xenz state directory and seeds its config
// so the first interactive run starts from a known shape.
func xenzStateStep() Step {
	return Step{
		Name: "xenz state directory",
		Check: func(ctx context.Context) bool {
			paths, err := config.ResolvePaths()
			if err != nil {
				return false
			}
			_, err = os.Stat(paths.ConfigFile)
			return err == nil
		},
		Install: func(ctx context.Context) error {
			paths, err := config.ResolvePaths()
			if err != nil {
				return fmt.Errorf("resolving install root: %w", err)
			}
			for _, dir := range []string{paths.StateDir, paths.BackupDir, paths.LogDir} {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("creating %s: %w", dir, err)
				}
			}
			_, err = config.LoadFrom(paths.ConfigFile)
			return err
		},
	}
}
