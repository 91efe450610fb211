// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// nameRegex validates project names. Names become directory names and
// remote repository names, so the charset is deliberately tight.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateName rejects anything outside [a-zA-Z0-9_-]+ before any
// external call is made with it.
func ValidateName(name string) error {
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q must match [a-zA-Z0-9_-]+", ErrInvalidName, name)
	}
	return nil
}

// Store defines access to the project pointer — the single piece of
// process-wide state naming the one project xenz manages.
//
// # Description
//
// The pointer is created on install (the only creation site), read by
// every operation needing a project directory, and never deleted by any
// action; a subsequent install overwrites it. Implementations back it
// with a single-writer file or, for tests, plain memory.
type Store interface {
	// Current returns the active project name, or ErrNoProject if no
	// pointer exists.
	Current() (string, error)

	// Set records the active project name, overwriting any previous
	// pointer.
	Set(name string) error
}

// FileStore persists the pointer as a single line in a fixed-path file.
//
// # Thread Safety
//
// FileStore does no locking. Concurrent xenz invocations from two
// terminals can race on the pointer; the tool serves a single human
// operator on a single host and accepts that window.
type FileStore struct {
	path string
}

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a store over the given pointer file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Current reads the pointer file.
func (s *FileStore) Current() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", ErrNoProject
	}
	if err != nil {
		return "", fmt.Errorf("reading project pointer: %w", err)
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", ErrNoProject
	}
	return name, nil
}

// Set writes the pointer file, creating the state directory if needed.
func (s *FileStore) Set(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(name+"\n"), 0644); err != nil {
		return fmt.Errorf("writing project pointer: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu   sync.Mutex
	name string
}

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// Current returns the stored name or ErrNoProject.
func (s *MemoryStore) Current() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.name == "" {
		return "", ErrNoProject
	}
	return s.name, nil
}

// Set records the name.
func (s *MemoryStore) Set(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	return nil
}
