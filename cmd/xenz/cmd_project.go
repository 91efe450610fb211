// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FarshadGhanbari/setup-server/cmd/xenz/internal/project"
	"github.com/FarshadGhanbari/setup-server/pkg/ux"
)

// fail prints the error and exits non-zero, except for a cancelled
// prompt, which is a quiet status-0 return to the shell.
func fail(err error) {
	if project.IsBenign(err) {
		return
	}
	ux.Fail("%v", err)
	os.Exit(1)
}

func runInstall(cmd *cobra.Command, args []string) {
	if err := installProject(args[0]); err != nil {
		fail(err)
	}
}

func installProject(name string) error {
	ux.Info("Cloning %s from %s", name, application.git.RemoteURL(name))
	if err := application.manager.Install(context.Background(), name); err != nil {
		return err
	}
	ux.Success("Project %s installed and running", name)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) {
	if err := updateProject(); err != nil {
		fail(err)
	}
}

func updateProject() error {
	name, err := application.manager.Current()
	if err != nil {
		return err
	}
	ux.Info("Updating %s", name)
	if err := application.manager.Update(context.Background()); err != nil {
		return err
	}
	ux.Success("Project %s updated", name)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) {
	if err := showStatus(); err != nil {
		fail(err)
	}
}

func showStatus() error {
	name, err := application.manager.Current()
	if errors.Is(err, project.ErrNoProject) {
		ux.Warn("No project installed yet")
		return nil
	}
	if err != nil {
		return err
	}
	ux.Title(fmt.Sprintf("Project: %s", name))
	fmt.Printf("Directory: %s\n", application.paths.ProjectDir(name))

	out, err := application.docker.PS(context.Background(), application.paths.ProjectDir(name))
	if err != nil {
		ux.Warn("Could not query containers: %v", err)
		return nil
	}
	fmt.Print(out)
	return nil
}

func runBackupNow(cmd *cobra.Command, args []string) {
	if err := backupNow(); err != nil {
		fail(err)
	}
}

func backupNow() error {
	b, err := application.manager.Backup(context.Background())
	if err != nil {
		return err
	}
	ux.Success("Backup created: %s (%s)", b.Name, b.Size)
	return nil
}

func runBackupList(cmd *cobra.Command, args []string) {
	if err := listBackups(); err != nil {
		fail(err)
	}
}

func listBackups() error {
	backups, err := application.manager.List(context.Background())
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		ux.Warn("No backups found")
		return nil
	}
	ux.Title("Backups")
	for i, b := range backups {
		fmt.Printf("%2d) %s  %10s  %s\n", i+1, b.Name, b.Size, b.ModTime)
	}
	fmt.Printf("Total: %d archives, %s\n", len(backups), project.TotalSize(backups))
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) {
	if err := restoreBackup(); err != nil {
		fail(err)
	}
}

func restoreBackup() error {
	ctx := context.Background()
	backups, err := application.manager.List(ctx)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return project.ErrNoBackups
	}

	options := make([]string, len(backups))
	for i, b := range backups {
		options[i] = fmt.Sprintf("%s  %10s  %s", b.Name, b.Size, b.ModTime)
	}
	idx, err := application.prompt.Select("Select a backup to restore", options)
	if err != nil {
		return fmt.Errorf("%w: %v", project.ErrInvalidSelection, err)
	}
	if idx < 0 {
		return project.ErrCancelled
	}
	chosen := backups[idx]

	if !application.prompt.Confirm(fmt.Sprintf("Restore %s? This overwrites the project directory", chosen.Name)) {
		ux.Warn("Restore cancelled")
		return project.ErrCancelled
	}
	if err := application.manager.Restore(ctx, chosen); err != nil {
		return err
	}
	ux.Success("Restored %s", chosen.Name)
	return nil
}

func runBackupDeleteAll(cmd *cobra.Command, args []string) {
	if err := deleteAllBackups(); err != nil {
		fail(err)
	}
}

func deleteAllBackups() error {
	ctx := context.Background()
	backups, err := application.manager.List(ctx)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return project.ErrNoBackups
	}

	ux.Warn("This deletes %d backup archives (%s) permanently", len(backups), project.TotalSize(backups))
	if !application.prompt.ConfirmToken("Type DELETE to confirm", "DELETE") {
		ux.Warn("Deletion cancelled")
		return project.ErrCancelled
	}

	res, err := application.manager.DeleteAll(ctx)
	if err != nil {
		return err
	}
	ux.Success("Deleted %d archives, freed %s", res.Deleted, res.FreedSize)
	if res.Failed > 0 {
		ux.Warn("%d archives could not be deleted", res.Failed)
	}
	return nil
}

func runGHLogin(cmd *cobra.Command, args []string) {
	if err := ghLogin(); err != nil {
		fail(err)
	}
}

func ghLogin() error {
	if err := application.gh.CheckInstalled(); err != nil {
		return err
	}
	if ok, out, err := application.gh.Status(context.Background()); err == nil && ok {
		ux.Info("Already authenticated:")
		fmt.Println(out)
		return nil
	}
	return application.gh.Login(context.Background())
}
