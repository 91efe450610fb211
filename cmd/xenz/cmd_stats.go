// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FarshadGhanbari/setup-server/cmd/xenz/internal/sysinfo"
	"github.com/FarshadGhanbari/setup-server/pkg/ux"
)

func runStats(cmd *cobra.Command, args []string) {
	showStats()
}

func showStats() {
	ux.Info("Sampling host resources...")
	snap := sysinfo.Collect(context.Background(), application.paths.InstallRoot)

	ux.Title("Server Stats")
	if _, bad := snap.Errs["cpu"]; !bad {
		fmt.Printf("CPU:    %.1f%%\n", snap.CPUPercent)
	}
	if _, bad := snap.Errs["memory"]; !bad {
		fmt.Printf("Memory: %s / %s (%.1f%%)\n",
			sysinfo.FormatBytes(snap.MemUsed), sysinfo.FormatBytes(snap.MemTotal), snap.MemPercent)
	}
	if _, bad := snap.Errs["disk"]; !bad {
		fmt.Printf("Disk:   %s / %s (%.1f%%)\n",
			sysinfo.FormatBytes(snap.DiskUsed), sysinfo.FormatBytes(snap.DiskTotal), snap.DiskPercent)
	}
	if _, bad := snap.Errs["uptime"]; !bad {
		fmt.Printf("Uptime: %s\n", sysinfo.FormatUptime(snap.Uptime))
	}
	for probe, err := range snap.Errs {
		ux.Warn("Could not read %s: %v", probe, err)
	}
}
