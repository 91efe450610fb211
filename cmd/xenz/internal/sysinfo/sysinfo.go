// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package sysinfo collects host resource figures for the stats view.
package sysinfo

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Snapshot is one point-in-time reading of host resources. A field's
// zero value with the matching error set means that probe failed;
// probes are independent so a broken one does not blank the rest.
type Snapshot struct {
	CPUPercent  float64
	MemUsed     uint64
	MemTotal    uint64
	MemPercent  float64
	DiskUsed    uint64
	DiskTotal   uint64
	DiskPercent float64
	Uptime      time.Duration

	// Errs collects per-probe failures, keyed by probe name.
	Errs map[string]error
}

// Collect gathers a Snapshot. The CPU reading samples utilization over
// a short interval, so the call blocks for about a second.
func Collect(ctx context.Context, diskPath string) *Snapshot {
	s := &Snapshot{Errs: map[string]error{}}

	if percents, err := cpu.PercentWithContext(ctx, time.Second, false); err != nil {
		s.Errs["cpu"] = err
	} else if len(percents) > 0 {
		s.CPUPercent = percents[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		s.Errs["memory"] = err
	} else {
		s.MemUsed = vm.Used
		s.MemTotal = vm.Total
		s.MemPercent = vm.UsedPercent
	}

	if du, err := disk.UsageWithContext(ctx, diskPath); err != nil {
		s.Errs["disk"] = err
	} else {
		s.DiskUsed = du.Used
		s.DiskTotal = du.Total
		s.DiskPercent = du.UsedPercent
	}

	if up, err := host.UptimeWithContext(ctx); err != nil {
		s.Errs["uptime"] = err
	} else {
		s.Uptime = time.Duration(up) * time.Second
	}

	return s
}

// FormatBytes renders a byte count with a binary-unit suffix.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// FormatUptime renders an uptime as days/hours/minutes.
func FormatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
