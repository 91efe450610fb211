// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// Global is a singleton instance
	Global XenzConfig
	once   sync.Once
)

// Load ensures the config is loaded into the Global variable
func Load() error {
	var err error
	once.Do(func() {
		err = loadInternal()
	})
	return err
}

func loadInternal() error {
	paths, err := ResolvePaths()
	if err != nil {
		return fmt.Errorf("could not resolve the install root: %w", err)
	}
	cfg, err := LoadFrom(paths.ConfigFile)
	if err != nil {
		return err
	}
	Global = cfg
	return nil
}

// LoadFrom reads the config at an explicit path, creating it with
// defaults on first run. Exported for tests and for setup-server,
// which seeds the config before xenz ever runs.
func LoadFrom(configPath string) (XenzConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("First run detected, creating the config at %s\n", configPath)
		if err := createDefault(configPath); err != nil {
			return XenzConfig{}, err
		}
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return XenzConfig{}, fmt.Errorf("failed to read the config file: %w", err)
	}
	var cfg XenzConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return XenzConfig{}, fmt.Errorf("failed to parse the config file: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// applyDefaults fills fields an older or hand-edited config may omit.
func applyDefaults(cfg *XenzConfig) {
	def := DefaultConfig()
	if cfg.GitHub.Host == "" {
		cfg.GitHub.Host = def.GitHub.Host
	}
	if cfg.GitHub.Owner == "" {
		cfg.GitHub.Owner = def.GitHub.Owner
	}
	if cfg.Compose.File == "" {
		cfg.Compose.File = def.Compose.File
	}
}

func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	defaultCfg := DefaultConfig()
	data, err := yaml.Marshal(defaultCfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
