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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FarshadGhanbari/setup-server/cmd/xenz/config"
	"github.com/FarshadGhanbari/setup-server/pkg/logging"
	"github.com/FarshadGhanbari/setup-server/pkg/process"
)

// fakeGit materializes a small checkout on Clone so later operations
// have a real directory to archive.
type fakeGit struct {
	cloneErr error
	pullErr  error
	cloned   []string
	pulled   []string
}

func (g *fakeGit) Clone(_ context.Context, name, destDir string) error {
	if g.cloneErr != nil {
		return g.cloneErr
	}
	g.cloned = append(g.cloned, name)
	if err := os.MkdirAll(filepath.Join(destDir, "src"), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(destDir, "prod.docker-compose.yml"), []byte("services: {}\n"), 0644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(destDir, "src", "main.txt"), []byte("v1\n"), 0644)
}

func (g *fakeGit) Pull(_ context.Context, dir string) error {
	if g.pullErr != nil {
		return g.pullErr
	}
	g.pulled = append(g.pulled, dir)
	return nil
}

type fakeBuilder struct {
	err   error
	calls []string
}

func (b *fakeBuilder) BuildUp(_ context.Context, dir string) error {
	b.calls = append(b.calls, dir)
	return b.err
}

type managerFixture struct {
	mgr     *Manager
	store   *MemoryStore
	git     *fakeGit
	builder *fakeBuilder
	paths   config.Paths
	clock   *time.Time
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()
	paths := config.PathsAt(t.TempDir())
	now := time.Date(2025, 1, 2, 3, 15, 0, 0, time.UTC)
	f := &managerFixture{
		store:   &MemoryStore{},
		git:     &fakeGit{},
		builder: &fakeBuilder{},
		paths:   paths,
		clock:   &now,
	}
	f.mgr = NewManager(Options{
		Store:   f.store,
		Git:     f.git,
		Builder: f.builder,
		Catalog: NewCatalog(paths.BackupDir, &process.FakeManager{}),
		Paths:   paths,
		Logger:  logging.New(logging.Config{Quiet: true}),
		Now:     func() time.Time { return *f.clock },
	})
	return f
}

func (f *managerFixture) install(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, f.mgr.Install(context.Background(), name))
}

func TestManager_InstallThenCurrent(t *testing.T) {
	f := newManagerFixture(t)

	f.install(t, "myapp")

	name, err := f.mgr.Current()
	require.NoError(t, err)
	assert.Equal(t, "myapp", name)
	assert.DirExists(t, f.paths.ProjectDir("myapp"))
	assert.Equal(t, []string{f.paths.ProjectDir("myapp")}, f.builder.calls)
}

func TestManager_InstallInvalidName(t *testing.T) {
	f := newManagerFixture(t)

	err := f.mgr.Install(context.Background(), "bad name!")

	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Empty(t, f.git.cloned)
}

func TestManager_InstallAlreadyExists(t *testing.T) {
	f := newManagerFixture(t)
	f.install(t, "myapp")

	err := f.mgr.Install(context.Background(), "myapp")

	assert.ErrorIs(t, err, ErrProjectExists)
	// First install's pointer and directory are untouched.
	name, getErr := f.mgr.Current()
	require.NoError(t, getErr)
	assert.Equal(t, "myapp", name)
	assert.Equal(t, []string{"myapp"}, f.git.cloned)
}

func TestManager_InstallCloneFailedWritesNoPointer(t *testing.T) {
	f := newManagerFixture(t)
	f.git.cloneErr = errors.New("remote unreachable")

	err := f.mgr.Install(context.Background(), "myapp")

	assert.ErrorIs(t, err, ErrCloneFailed)
	_, getErr := f.mgr.Current()
	assert.ErrorIs(t, getErr, ErrNoProject)
}

func TestManager_InstallBuildFailureKeepsPointer(t *testing.T) {
	f := newManagerFixture(t)
	f.builder.err = errors.New("compose build exploded")

	err := f.mgr.Install(context.Background(), "myapp")

	assert.ErrorIs(t, err, ErrBuildFailed)
	// The project still counts as installed; recovery is update, not reclone.
	name, getErr := f.mgr.Current()
	require.NoError(t, getErr)
	assert.Equal(t, "myapp", name)
}

func TestManager_UpdateNoProject(t *testing.T) {
	f := newManagerFixture(t)

	err := f.mgr.Update(context.Background())

	assert.ErrorIs(t, err, ErrNoProject)
}

func TestManager_UpdateDirMissing(t *testing.T) {
	f := newManagerFixture(t)
	f.install(t, "myapp")
	require.NoError(t, os.RemoveAll(f.paths.ProjectDir("myapp")))

	err := f.mgr.Update(context.Background())

	assert.ErrorIs(t, err, ErrProjectDirMissing)
}

func TestManager_UpdatePullsAndRebuilds(t *testing.T) {
	f := newManagerFixture(t)
	f.install(t, "myapp")

	require.NoError(t, f.mgr.Update(context.Background()))

	assert.Equal(t, []string{f.paths.ProjectDir("myapp")}, f.git.pulled)
	assert.Len(t, f.builder.calls, 2) // install build + update rebuild

	// Update also took a backup first.
	backups, err := f.mgr.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestManager_UpdateProceedsWhenBackupFails(t *testing.T) {
	f := newManagerFixture(t)
	f.install(t, "myapp")
	// Occupy the backup directory path with a file so archiving cannot
	// create it.
	require.NoError(t, os.MkdirAll(f.paths.StateDir, 0755))
	require.NoError(t, os.WriteFile(f.paths.BackupDir, []byte("in the way"), 0644))

	err := f.mgr.Update(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{f.paths.ProjectDir("myapp")}, f.git.pulled)
}

func TestManager_UpdatePullFailed(t *testing.T) {
	f := newManagerFixture(t)
	f.install(t, "myapp")
	f.git.pullErr = errors.New("merge conflict")

	err := f.mgr.Update(context.Background())

	assert.ErrorIs(t, err, ErrPullFailed)
	assert.Len(t, f.builder.calls, 1) // no rebuild after a failed pull
}

func TestManager_BackupRestoreRoundTrip(t *testing.T) {
	f := newManagerFixture(t)
	f.install(t, "myapp")
	srcFile := filepath.Join(f.paths.ProjectDir("myapp"), "src", "main.txt")

	b, err := f.mgr.Backup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "backup-20250102-031500.tar.gz", b.Name)

	// Clobber the tree, then restore it.
	require.NoError(t, os.WriteFile(srcFile, []byte("corrupted\n"), 0644))
	require.NoError(t, f.mgr.Restore(context.Background(), *b))

	data, err := os.ReadFile(srcFile)
	require.NoError(t, err)
	assert.Equal(t, "v1\n", string(data))
}

func TestManager_BackupSameSecondOverwrites(t *testing.T) {
	f := newManagerFixture(t)
	f.install(t, "myapp")

	_, err := f.mgr.Backup(context.Background())
	require.NoError(t, err)
	_, err = f.mgr.Backup(context.Background())
	require.NoError(t, err)

	// Identical wall clock collapses both into one archive.
	backups, err := f.mgr.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestManager_BackupDistinctSeconds(t *testing.T) {
	f := newManagerFixture(t)
	f.install(t, "myapp")

	for i := 0; i < 3; i++ {
		_, err := f.mgr.Backup(context.Background())
		require.NoError(t, err)
		*f.clock = f.clock.Add(time.Second)
	}

	backups, err := f.mgr.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, backups, 3)
}

func TestManager_BackupNoProject(t *testing.T) {
	f := newManagerFixture(t)

	_, err := f.mgr.Backup(context.Background())

	assert.ErrorIs(t, err, ErrNoProject)
}

func TestManager_SelectBackup(t *testing.T) {
	f := newManagerFixture(t)
	f.install(t, "myapp")
	_, err := f.mgr.Backup(context.Background())
	require.NoError(t, err)

	b, err := f.mgr.SelectBackup(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "backup-20250102-031500.tar.gz", b.Name)

	_, err = f.mgr.SelectBackup(context.Background(), 2)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, err = f.mgr.SelectBackup(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestManager_SelectBackupNoBackups(t *testing.T) {
	f := newManagerFixture(t)

	_, err := f.mgr.SelectBackup(context.Background(), 1)

	assert.ErrorIs(t, err, ErrNoBackups)
}

func TestManager_DeleteAll(t *testing.T) {
	f := newManagerFixture(t)
	f.install(t, "myapp")
	for i := 0; i < 2; i++ {
		_, err := f.mgr.Backup(context.Background())
		require.NoError(t, err)
		*f.clock = f.clock.Add(time.Second)
	}

	res, err := f.mgr.DeleteAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, res.Deleted)
	assert.Equal(t, 0, res.Failed)
	assert.NotEmpty(t, res.FreedSize)

	backups, err := f.mgr.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestManager_DeleteAllNoBackups(t *testing.T) {
	f := newManagerFixture(t)

	_, err := f.mgr.DeleteAll(context.Background())

	assert.ErrorIs(t, err, ErrNoBackups)
}
