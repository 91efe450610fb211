// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/FarshadGhanbari/setup-server/pkg/process"
)

// MetadataUnknown is displayed when every probe for a backup's size or
// modification time fails. The backup stays listed and restorable.
const MetadataUnknown = "N/A"

// backupPrefix and backupSuffix frame the timestamped archive names
// written by Manager.Backup ("backup-20060102-150405.tar.gz").
const (
	backupPrefix = "backup-"
	backupSuffix = ".tar.gz"
)

// Backup describes one archive in the backup directory.
//
// Size and ModTime are display strings, not numbers: when metadata
// cannot be read they carry MetadataUnknown while the entry remains
// selectable for restore.
type Backup struct {
	// Name is the bare file name, e.g. "backup-20250102-031500.tar.gz".
	Name string

	// Path is the absolute path to the archive.
	Path string

	// Size is a human-readable size ("1.24 MB") or MetadataUnknown.
	Size string

	// ModTime is the formatted modification time or MetadataUnknown.
	ModTime string

	// bytes is the raw size when known, used for aggregation.
	bytes int64
	known bool
}

// Catalog lists and probes the backup directory.
//
// # Description
//
// Listing never fails on bad metadata: each entry's size and mtime are
// resolved through a chain of probes (os.Stat, GNU stat, BSD stat, ls
// parsing) and degrade to MetadataUnknown when all fail.
type Catalog struct {
	dir  string
	proc process.Manager
}

// NewCatalog creates a catalog over dir, using proc for the fallback
// metadata probes.
func NewCatalog(dir string, proc process.Manager) *Catalog {
	return &Catalog{dir: dir, proc: proc}
}

// List returns all backup archives in the directory sorted by name,
// which for the timestamped naming scheme is chronological order. A
// missing directory yields an empty list, not an error.
func (c *Catalog) List(ctx context.Context) ([]Backup, error) {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var backups []Backup
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		b := Backup{
			Name:    name,
			Path:    filepath.Join(c.dir, name),
			Size:    MetadataUnknown,
			ModTime: MetadataUnknown,
		}
		c.probe(ctx, &b)
		backups = append(backups, b)
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].Name < backups[j].Name })
	return backups, nil
}

// TotalSize sums the known sizes of the given backups and formats the
// aggregate. Entries with unknown size contribute zero.
func TotalSize(backups []Backup) string {
	var total int64
	for _, b := range backups {
		if b.known {
			total += b.bytes
		}
	}
	return HumanSize(total)
}

// probe fills b.Size and b.ModTime, trying each source in order and
// stopping at the first that answers.
func (c *Catalog) probe(ctx context.Context, b *Backup) {
	if fi, err := os.Stat(b.Path); err == nil {
		b.setMetadata(fi.Size(), fi.ModTime())
		return
	}
	if size, mtime, ok := c.probeStat(ctx, b.Path, "-c", "%s %Y"); ok {
		b.setMetadata(size, mtime)
		return
	}
	if size, mtime, ok := c.probeStat(ctx, b.Path, "-f", "%z %m"); ok {
		b.setMetadata(size, mtime)
		return
	}
	if size, ok := c.probeLs(ctx, b.Path); ok {
		b.bytes = size
		b.known = true
		b.Size = HumanSize(size)
		return
	}
	// All probes failed; the entry keeps MetadataUnknown fields.
}

// probeStat runs stat with the given format flag and parses
// "<size> <epoch>" from stdout. Covers both GNU (-c) and BSD (-f)
// variants.
func (c *Catalog) probeStat(ctx context.Context, path, flag, format string) (int64, time.Time, bool) {
	res, err := c.proc.Run(ctx, process.Spec{Name: "stat", Args: []string{flag, format, path}})
	if err != nil || res.ExitCode != 0 {
		return 0, time.Time{}, false
	}
	fields := strings.Fields(strings.TrimSpace(res.Stdout))
	if len(fields) != 2 {
		return 0, time.Time{}, false
	}
	size, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, time.Time{}, false
	}
	epoch, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, time.Time{}, false
	}
	return size, time.Unix(epoch, 0), true
}

// probeLs falls back to parsing the size column of `ls -l`.
func (c *Catalog) probeLs(ctx context.Context, path string) (int64, bool) {
	res, err := c.proc.Run(ctx, process.Spec{Name: "ls", Args: []string{"-l", path}})
	if err != nil || res.ExitCode != 0 {
		return 0, false
	}
	fields := strings.Fields(strings.TrimSpace(res.Stdout))
	if len(fields) < 5 {
		return 0, false
	}
	size, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return 0, false
	}
	return size, true
}

func (b *Backup) setMetadata(size int64, mtime time.Time) {
	b.bytes = size
	b.known = true
	b.Size = HumanSize(size)
	b.ModTime = mtime.Format("2006-01-02 15:04:05")
}

// HumanSize renders bytes in the coarsest unit with a non-zero amount:
// GB when at least 1 GB, MB when at least 1 MB, otherwise KB.
func HumanSize(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(mb))
	default:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(kb))
	}
}
