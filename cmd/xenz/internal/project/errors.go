// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package project

import (
	"errors"
)

// Sentinel errors for the project lifecycle.
//
// The taxonomy mirrors how failures are handled:
//
//   - validation errors are rejected before any external call
//   - state errors are checked before mutating actions
//   - step errors wrap the failing tool's own error, surfaced distinctly
//     so the operator knows whether to retry a pull or a build
//   - ErrCancelled is a benign outcome, not a failure
var (
	// Validation
	ErrInvalidName = errors.New("invalid project name")

	// State
	ErrNoProject         = errors.New("no project installed")
	ErrProjectExists     = errors.New("project already exists")
	ErrProjectDirMissing = errors.New("project directory missing")

	// Operation steps
	ErrCloneFailed   = errors.New("clone failed")
	ErrPullFailed    = errors.New("pull failed")
	ErrBuildFailed   = errors.New("build failed")
	ErrArchiveFailed = errors.New("archive creation failed")
	ErrExtractFailed = errors.New("archive extraction failed")

	// Backups
	ErrNoBackups        = errors.New("no backups found")
	ErrInvalidSelection = errors.New("invalid backup selection")

	// Operator declined a confirmation. Callers return to the menu.
	ErrCancelled = errors.New("cancelled by operator")
)

// IsBenign reports whether the error is an operator cancellation rather
// than a real failure. The menu loop uses this to skip error rendering.
func IsBenign(err error) bool {
	return errors.Is(err, ErrCancelled)
}
