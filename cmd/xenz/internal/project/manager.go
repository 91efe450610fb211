// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/FarshadGhanbari/setup-server/cmd/xenz/config"
	"github.com/FarshadGhanbari/setup-server/pkg/logging"
)

// ==============================================================================
// Collaborator interfaces
// ==============================================================================

// GitClient clones and pulls project repositories.
type GitClient interface {
	// Clone fetches the named project repository into destDir.
	Clone(ctx context.Context, name, destDir string) error

	// Pull updates the checkout at dir to the latest upstream state.
	Pull(ctx context.Context, dir string) error
}

// Builder builds and starts a project's containers from its compose
// descriptor.
type Builder interface {
	// BuildUp rebuilds and (re)starts the stack rooted at dir.
	BuildUp(ctx context.Context, dir string) error
}

// ==============================================================================
// Manager
// ==============================================================================

// Manager implements the project lifecycle: install, update, backup,
// restore, list and delete-all over a single pointer-tracked project.
//
// # Description
//
// State is entirely filesystem-based: the pointer file names the active
// project, the project directory holds its checkout, and the backup
// directory holds timestamped archives. The filesystem is the source of
// truth; nothing is cached between calls.
//
// # Thread Safety
//
// Manager is not safe for concurrent use. Operations run sequentially
// in a single interactive session.
type Manager struct {
	store   Store
	git     GitClient
	builder Builder
	catalog *Catalog
	paths   config.Paths
	log     *logging.Logger
	now     func() time.Time
}

// Options configures a Manager. Now defaults to time.Now when nil.
type Options struct {
	Store   Store
	Git     GitClient
	Builder Builder
	Catalog *Catalog
	Paths   config.Paths
	Logger  *logging.Logger
	Now     func() time.Time
}

// NewManager wires a Manager from its collaborators.
func NewManager(opts Options) *Manager {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	return &Manager{
		store:   opts.Store,
		git:     opts.Git,
		builder: opts.Builder,
		catalog: opts.Catalog,
		paths:   opts.Paths,
		log:     log,
		now:     now,
	}
}

// Current returns the active project name, or ErrNoProject.
func (m *Manager) Current() (string, error) {
	return m.store.Current()
}

// Install clones the named project, records it as the active project,
// and builds its containers.
//
// # Description
//
// The pointer is written only after a successful clone; a clone failure
// leaves no state behind. A build failure after the clone is surfaced
// but the pointer stays — the project counts as installed and recovery
// is re-running update, not re-cloning.
func (m *Manager) Install(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		m.log.Error("install rejected", "project", name, "error", err)
		return err
	}

	dir := m.paths.ProjectDir(name)
	if _, err := os.Stat(dir); err == nil {
		m.log.Error("install rejected", "project", name, "error", "directory exists")
		return fmt.Errorf("%w: %s", ErrProjectExists, dir)
	}

	if err := m.git.Clone(ctx, name, dir); err != nil {
		m.log.Error("clone failed", "project", name, "error", err)
		return fmt.Errorf("%w: %v", ErrCloneFailed, err)
	}

	if err := m.store.Set(name); err != nil {
		return err
	}
	m.log.Info("project installed", "project", name, "dir", dir)

	if err := m.builder.BuildUp(ctx, dir); err != nil {
		m.log.Error("initial build failed", "project", name, "error", err)
		return fmt.Errorf("%w: %v", ErrBuildFailed, err)
	}
	m.log.Info("project built and started", "project", name)
	return nil
}

// Update pulls the latest source for the active project and rebuilds
// its containers, taking a best-effort backup first.
//
// A backup failure is logged as a warning and does not abort the
// update; an urgent update beats a safety copy.
func (m *Manager) Update(ctx context.Context) error {
	name, dir, err := m.requireProject()
	if err != nil {
		return err
	}

	if _, backupErr := m.Backup(ctx); backupErr != nil {
		m.log.Warn("pre-update backup failed, continuing", "project", name, "error", backupErr)
	}

	if err := m.git.Pull(ctx, dir); err != nil {
		m.log.Error("pull failed", "project", name, "error", err)
		return fmt.Errorf("%w: %v", ErrPullFailed, err)
	}
	if err := m.builder.BuildUp(ctx, dir); err != nil {
		m.log.Error("rebuild failed", "project", name, "error", err)
		return fmt.Errorf("%w: %v", ErrBuildFailed, err)
	}
	m.log.Info("project updated", "project", name)
	return nil
}

// Backup archives the active project directory into the backup
// directory and returns the created archive.
//
// The archive name carries the wall clock to second resolution; two
// backups within the same second collide and the later one overwrites
// the earlier.
func (m *Manager) Backup(ctx context.Context) (*Backup, error) {
	name, _, err := m.requireProject()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(m.paths.BackupDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating backup directory: %v", ErrArchiveFailed, err)
	}

	fileName := fmt.Sprintf("%s%s%s", backupPrefix, m.now().Format("20060102-150405"), backupSuffix)
	destPath := filepath.Join(m.paths.BackupDir, fileName)

	if err := createArchive(m.paths.InstallRoot, name, destPath); err != nil {
		m.log.Error("backup failed", "project", name, "archive", fileName, "error", err)
		return nil, err
	}

	b := Backup{Name: fileName, Path: destPath, Size: MetadataUnknown, ModTime: MetadataUnknown}
	m.catalog.probe(ctx, &b)
	m.log.Info("backup created", "project", name, "archive", fileName, "size", b.Size)
	return &b, nil
}

// List returns all backups in chronological order.
func (m *Manager) List(ctx context.Context) ([]Backup, error) {
	return m.catalog.List(ctx)
}

// Restore extracts the given backup into the install root, overwriting
// the project directory in place.
//
// Restore is destructive and non-transactional: a failure mid-extract
// can leave a partially overwritten directory with no rollback. The
// caller is responsible for confirming with the operator first.
func (m *Manager) Restore(ctx context.Context, b Backup) error {
	if err := extractArchive(b.Path, m.paths.InstallRoot); err != nil {
		m.log.Error("restore failed", "archive", b.Name, "error", err)
		return err
	}
	m.log.Info("backup restored", "archive", b.Name)
	return nil
}

// SelectBackup resolves a 1-indexed selection against the current
// backup list. Returns ErrNoBackups when the list is empty and
// ErrInvalidSelection when the index is out of range.
func (m *Manager) SelectBackup(ctx context.Context, index int) (*Backup, error) {
	backups, err := m.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 {
		return nil, ErrNoBackups
	}
	if index < 1 || index > len(backups) {
		return nil, fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidSelection, index, len(backups))
	}
	return &backups[index-1], nil
}

// DeleteResult reports the outcome of DeleteAll.
type DeleteResult struct {
	// Deleted counts archives successfully removed.
	Deleted int

	// Failed counts archives whose removal failed.
	Failed int

	// FreedSize is the formatted aggregate size of the set before
	// deletion.
	FreedSize string
}

// DeleteAll removes every backup archive, tolerating individual
// failures: one archive that will not delete does not stop the batch.
//
// The caller is responsible for the DELETE confirmation token before
// invoking this.
func (m *Manager) DeleteAll(ctx context.Context) (*DeleteResult, error) {
	backups, err := m.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 {
		return nil, ErrNoBackups
	}

	res := &DeleteResult{FreedSize: TotalSize(backups)}
	for _, b := range backups {
		if err := os.Remove(b.Path); err != nil {
			m.log.Warn("failed to delete backup", "archive", b.Name, "error", err)
			res.Failed++
			continue
		}
		res.Deleted++
	}
	m.log.Info("backups deleted", "deleted", res.Deleted, "failed", res.Failed, "freed", res.FreedSize)
	return res, nil
}

// requireProject resolves the pointer and verifies the project
// directory still exists, the shared precondition of every mutating
// operation.
func (m *Manager) requireProject() (name, dir string, err error) {
	name, err = m.store.Current()
	if err != nil {
		if errors.Is(err, ErrNoProject) {
			return "", "", ErrNoProject
		}
		return "", "", err
	}
	dir = m.paths.ProjectDir(name)
	if _, statErr := os.Stat(dir); statErr != nil {
		return "", "", fmt.Errorf("%w: %s", ErrProjectDirMissing, dir)
	}
	return name, dir, nil
}
