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

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/FarshadGhanbari/setup-server/cmd/xenz/internal/project"
	"github.com/FarshadGhanbari/setup-server/pkg/ux"
)

// menuAction identifies one menu entry.
type menuAction int

const (
	actionInstall menuAction = iota
	actionUpdate
	actionBackupNow
	actionBackupList
	actionRestore
	actionDeleteAll
	actionDockerPS
	actionDockerDF
	actionDockerPrune
	actionDockerLogs
	actionSSLIssue
	actionSSLRenew
	actionSSLList
	actionStats
	actionViewLog
	actionGHLogin
	actionExit
)

// runRoot is the bare `xenz` invocation: the interactive menu on a
// terminal, the usage text otherwise.
func runRoot(cmd *cobra.Command, args []string) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		_ = cmd.Help()
		return
	}
	runMenu()
}

// runMenu loops the main menu until Exit. A cancelled prompt inside an
// action returns here silently; action failures are reported and the
// menu continues.
func runMenu() {
	for {
		action, err := promptMenu()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return
			}
			ux.Fail("%v", err)
			return
		}
		if action == actionExit {
			return
		}
		if err := dispatch(action); err != nil && !project.IsBenign(err) {
			ux.Fail("%v", err)
		}
		fmt.Println()
	}
}

func promptMenu() (menuAction, error) {
	var action menuAction
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[menuAction]().
			Title("xenz — server operations").
			Options(
				huh.NewOption("Install project", actionInstall),
				huh.NewOption("Update project", actionUpdate),
				huh.NewOption("Backup now", actionBackupNow),
				huh.NewOption("List backups", actionBackupList),
				huh.NewOption("Restore backup", actionRestore),
				huh.NewOption("Delete all backups", actionDeleteAll),
				huh.NewOption("Docker status", actionDockerPS),
				huh.NewOption("Docker disk usage", actionDockerDF),
				huh.NewOption("Docker prune", actionDockerPrune),
				huh.NewOption("Container logs", actionDockerLogs),
				huh.NewOption("Issue certificate", actionSSLIssue),
				huh.NewOption("Renew certificates", actionSSLRenew),
				huh.NewOption("List certificates", actionSSLList),
				huh.NewOption("System stats", actionStats),
				huh.NewOption("View xenz log", actionViewLog),
				huh.NewOption("GitHub login", actionGHLogin),
				huh.NewOption("Exit", actionExit),
			).
			Value(&action),
	))
	if err := form.Run(); err != nil {
		return actionExit, err
	}
	return action, nil
}

func dispatch(action menuAction) error {
	switch action {
	case actionInstall:
		name, err := promptInput("Project name", "Letters, digits, dashes and underscores only")
		if err != nil {
			return err
		}
		return installProject(name)
	case actionUpdate:
		return updateProject()
	case actionBackupNow:
		return backupNow()
	case actionBackupList:
		return listBackups()
	case actionRestore:
		return restoreBackup()
	case actionDeleteAll:
		return deleteAllBackups()
	case actionDockerPS:
		return showStatus()
	case actionDockerDF:
		out, err := application.docker.SystemDF(context.Background())
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	case actionDockerPrune:
		dockerPrune()
		return nil
	case actionDockerLogs:
		dir, err := application.projectDir()
		if err != nil {
			return err
		}
		return application.docker.Logs(context.Background(), dir, true)
	case actionSSLIssue:
		domain, err := promptInput("Domain", "A fully qualified domain name, e.g. app.example.com")
		if err != nil {
			return err
		}
		return issueCertificate(domain)
	case actionSSLRenew:
		return renewCertificates()
	case actionSSLList:
		return listCertificates()
	case actionStats:
		showStats()
		return nil
	case actionViewLog:
		return showLog(application.log.LogFilePath(), false)
	case actionGHLogin:
		return ghLogin()
	}
	return nil
}

// promptInput asks for one line of text; aborting the prompt maps to
// the cancelled sentinel so the menu resumes quietly.
func promptInput(title, description string) (string, error) {
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(title).Description(description).Value(&value),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", project.ErrCancelled
		}
		return "", err
	}
	return value, nil
}
