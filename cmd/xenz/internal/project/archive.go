// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package project

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ==============================================================================
// Archive helpers
// ==============================================================================
//
// Backups are plain tar.gz archives. Every entry is stored relative to
// the install root so that the project directory name itself is the top
// level of the archive ("myapp/", "myapp/docker-compose.yml", ...).
// Extraction reverses that: entries land back under the install root,
// recreating the project directory in place.

// createArchive writes a gzipped tarball of baseDir/name to destPath.
// Entry names are prefixed with the project name so the round trip
// create-then-extract restores the directory exactly where it was.
func createArchive(baseDir, name, destPath string) error {
	srcDir := filepath.Join(baseDir, name)
	info, err := os.Stat(srcDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProjectDirMissing, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrProjectDirMissing, srcDir)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrArchiveFailed, destPath, err)
	}
	defer out.Close()

	gzw := gzip.NewWriter(out)
	tw := tar.NewWriter(gzw)

	walkErr := filepath.Walk(srcDir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(baseDir, path)
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(fi, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if fi.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if !fi.Mode().IsRegular() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if walkErr != nil {
		tw.Close()
		gzw.Close()
		return fmt.Errorf("%w: %v", ErrArchiveFailed, walkErr)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrArchiveFailed, err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrArchiveFailed, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrArchiveFailed, err)
	}
	return nil
}

// extractArchive unpacks archivePath into baseDir. Entries whose
// cleaned path would escape baseDir are rejected.
func extractArchive(archivePath, baseDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrExtractFailed, archivePath, err)
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtractFailed, err)
		}

		target, err := safeJoin(baseDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)); err != nil {
				return fmt.Errorf("%w: %v", ErrExtractFailed, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("%w: %v", ErrExtractFailed, err)
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode))
			if err != nil {
				return fmt.Errorf("%w: %v", ErrExtractFailed, err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return fmt.Errorf("%w: %v", ErrExtractFailed, err)
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("%w: %v", ErrExtractFailed, err)
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("%w: %v", ErrExtractFailed, err)
			}
			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return fmt.Errorf("%w: %v", ErrExtractFailed, err)
			}
		default:
			// Skip sockets, devices and other special entries.
		}
	}
	return nil
}

// safeJoin joins name under baseDir and rejects path traversal.
func safeJoin(baseDir, name string) (string, error) {
	target := filepath.Join(baseDir, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(baseDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: entry %q escapes destination", ErrExtractFailed, name)
	}
	return target, nil
}
