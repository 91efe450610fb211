// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
)

// EnvInstallRoot relocates project directories and xenz state when set.
// Earlier revisions of the tool hardcoded $HOME; the override is the
// later-revision behavior and also what the tests use.
const EnvInstallRoot = "XENZ_HOME"

// StateDirName is the directory under the install root holding the
// pointer file, backups and logs.
const StateDirName = ".xenz"

type XenzConfig struct {
	// GitHub: where projects are cloned from
	GitHub GitHubConfig `yaml:"github"`

	// Compose: the orchestration descriptor xenz always targets
	Compose ComposeConfig `yaml:"compose"`

	// Certbot: certificate issuance defaults
	Certbot CertbotConfig `yaml:"certbot"`
}

type GitHubConfig struct {
	Host  string `yaml:"host"`  // e.g. github.com
	Owner string `yaml:"owner"` // fixed owner all projects are cloned from
}

type ComposeConfig struct {
	// File is the compose descriptor looked up in the project root.
	File string `yaml:"file"` // e.g. prod.docker-compose.yml
}

type CertbotConfig struct {
	Email string `yaml:"email,omitempty"`
}

// Paths holds every filesystem location xenz touches, resolved once at
// startup from the install root.
type Paths struct {
	// InstallRoot is where project directories live ($HOME unless
	// EnvInstallRoot overrides it).
	InstallRoot string

	// StateDir is {InstallRoot}/.xenz.
	StateDir string

	// PointerFile is the single-line file naming the active project.
	PointerFile string

	// BackupDir holds backup-<timestamp>.tar.gz archives.
	BackupDir string

	// LogDir holds the append-only operation log.
	LogDir string

	// ConfigFile is the yaml config location.
	ConfigFile string
}

// ResolvePaths computes the path layout from the environment.
//
// # Description
//
// Uses EnvInstallRoot when set, otherwise the user's home directory.
// Both project directories and all xenz state live under the same
// root, so relocating the root relocates everything together.
func ResolvePaths() (Paths, error) {
	root := os.Getenv(EnvInstallRoot)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		root = home
	}
	return PathsAt(root), nil
}

// PathsAt computes the path layout rooted at an explicit directory.
func PathsAt(root string) Paths {
	stateDir := filepath.Join(root, StateDirName)
	return Paths{
		InstallRoot: root,
		StateDir:    stateDir,
		PointerFile: filepath.Join(stateDir, "project"),
		BackupDir:   filepath.Join(stateDir, "backups"),
		LogDir:      filepath.Join(stateDir, "logs"),
		ConfigFile:  filepath.Join(stateDir, "xenz.yaml"),
	}
}

// ProjectDir returns the directory of a named project under the root.
func (p Paths) ProjectDir(name string) string {
	return filepath.Join(p.InstallRoot, name)
}

func DefaultConfig() XenzConfig {
	return XenzConfig{
		GitHub: GitHubConfig{
			Host:  "github.com",
			Owner: "FarshadGhanbari",
		},
		Compose: ComposeConfig{
			File: "prod.docker-compose.yml",
		},
		Certbot: CertbotConfig{},
	}
}
