// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	followLog   bool
	execService string

	rootCmd = &cobra.Command{
		Use:   "xenz",
		Short: "A cli to manage a dockerized project on this server",
		Long: `Xenz manages the lifecycle of one dockerized project: install,
				update, backup and restore, plus TLS certificates and routine
				Docker administration. Run with no arguments for the
				interactive menu.`,
		Run: runRoot, // Defined in menu.go
	}

	// --- Project Lifecycle ---
	installCmd = &cobra.Command{
		Use:   "install [project_name]",
		Short: "Clone a project, record it as active, and start its containers",
		Args:  cobra.ExactArgs(1),
		Run:   runInstall, // Defined in cmd_project.go
	}
	updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Pull the latest source and rebuild (backs up first, best effort)",
		Run:   runUpdate, // Defined in cmd_project.go
	}
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the active project and its containers",
		Run:   runStatus, // Defined in cmd_project.go
	}

	// --- Backups ---
	backupCmd = &cobra.Command{
		Use:   "backup",
		Short: "Manage project backups",
	}
	backupNowCmd = &cobra.Command{
		Use:   "now",
		Short: "Archive the project directory",
		Run:   runBackupNow, // Defined in cmd_project.go
	}
	backupListCmd = &cobra.Command{
		Use:   "list",
		Short: "List backup archives with size and date",
		Run:   runBackupList, // Defined in cmd_project.go
	}
	backupRestoreCmd = &cobra.Command{
		Use:   "restore",
		Short: "Pick a backup and extract it over the project directory",
		Run:   runBackupRestore, // Defined in cmd_project.go
	}
	backupDeleteAllCmd = &cobra.Command{
		Use:   "delete-all",
		Short: "DANGER: Delete every backup archive",
		Run:   runBackupDeleteAll, // Defined in cmd_project.go
	}

	// --- Docker Administration ---
	dockerCmd = &cobra.Command{
		Use:   "docker",
		Short: "Inspect and clean up the Docker engine and stack",
	}
	dockerPSCmd = &cobra.Command{
		Use:   "ps",
		Short: "Show the stack's containers",
		Run:   runDockerPS, // Defined in cmd_docker.go
	}
	dockerLogsCmd = &cobra.Command{
		Use:   "logs",
		Short: "Stream the stack's container logs",
		Run:   runDockerLogs, // Defined in cmd_docker.go
	}
	dockerExecCmd = &cobra.Command{
		Use:   "exec [command...]",
		Short: "Run a command inside a service container",
		Args:  cobra.MinimumNArgs(1),
		Run:   runDockerExec, // Defined in cmd_docker.go
	}
	dockerRestartCmd = &cobra.Command{
		Use:   "restart",
		Short: "Restart the stack's containers",
		Run:   runDockerRestart, // Defined in cmd_docker.go
	}
	dockerDownCmd = &cobra.Command{
		Use:   "down",
		Short: "Stop and remove the stack's containers",
		Run:   runDockerDown, // Defined in cmd_docker.go
	}
	dockerDFCmd = &cobra.Command{
		Use:   "df",
		Short: "Show engine-wide disk usage",
		Run:   runDockerDF, // Defined in cmd_docker.go
	}
	dockerPruneCmd = &cobra.Command{
		Use:   "prune",
		Short: "Prune dangling images, unused volumes, networks and build cache",
		Run:   runDockerPrune, // Defined in cmd_docker.go
	}

	// --- TLS Certificates ---
	sslCmd = &cobra.Command{
		Use:   "ssl",
		Short: "Issue, renew and list TLS certificates",
	}
	sslIssueCmd = &cobra.Command{
		Use:   "issue [domain]",
		Short: "Obtain a certificate for a domain (standalone authenticator)",
		Args:  cobra.ExactArgs(1),
		Run:   runSSLIssue, // Defined in cmd_ssl.go
	}
	sslRenewCmd = &cobra.Command{
		Use:   "renew",
		Short: "Renew every certificate that is due",
		Run:   runSSLRenew, // Defined in cmd_ssl.go
	}
	sslListCmd = &cobra.Command{
		Use:   "list",
		Short: "List certificates with domains and expiry",
		Run:   runSSLList, // Defined in cmd_ssl.go
	}

	// --- Utilities ---
	ghLoginCmd = &cobra.Command{
		Use:   "gh-login",
		Short: "Authenticate the GitHub CLI (device flow)",
		Run:   runGHLogin, // Defined in cmd_project.go
	}
	logCmd = &cobra.Command{
		Use:   "log",
		Short: "Show the xenz event log",
		Run:   runLog, // Defined in cmd_log.go
	}
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show host CPU, memory, disk and uptime",
		Run:   runStats, // Defined in cmd_stats.go
	}
)

func init() {
	dockerLogsCmd.Flags().BoolVarP(&followLog, "follow", "f", false, "keep streaming new log output")
	dockerExecCmd.Flags().StringVarP(&execService, "service", "s", "app", "service container to run in")
	logCmd.Flags().BoolVarP(&followLog, "follow", "f", false, "keep streaming new log lines")

	backupCmd.AddCommand(backupNowCmd, backupListCmd, backupRestoreCmd, backupDeleteAllCmd)
	dockerCmd.AddCommand(dockerPSCmd, dockerLogsCmd, dockerExecCmd, dockerRestartCmd,
		dockerDownCmd, dockerDFCmd, dockerPruneCmd)
	sslCmd.AddCommand(sslIssueCmd, sslRenewCmd, sslListCmd)

	rootCmd.AddCommand(installCmd, updateCmd, statusCmd, backupCmd, dockerCmd,
		sslCmd, ghLoginCmd, logCmd, statsCmd)
}
