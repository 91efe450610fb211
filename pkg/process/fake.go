// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package process

import (
	"context"
	"sync"
)

// FakeManager is a recording Manager for tests.
//
// # Description
//
// FakeManager records every Spec it receives and answers from a handler
// function, letting wrapper tests assert on exact command construction
// without executing anything. A nil handler answers every call with a
// successful empty Result.
//
// # Thread Safety
//
// Safe for concurrent use.
type FakeManager struct {
	// Handler produces the response for each captured run.
	// Optional; nil means success with empty output.
	Handler func(spec Spec) (*Result, error)

	// InteractiveErr is returned by every RunInteractive call.
	InteractiveErr error

	// MissingTools contains binary names LookPath should report as absent.
	MissingTools map[string]bool

	mu    sync.Mutex
	calls []Spec
}

// Compile-time interface check.
var _ Manager = (*FakeManager)(nil)

// Run records the spec and answers from the handler.
func (f *FakeManager) Run(_ context.Context, spec Spec) (*Result, error) {
	f.record(spec)
	if f.Handler != nil {
		return f.Handler(spec)
	}
	return &Result{ExitCode: 0}, nil
}

// RunInteractive records the spec and returns InteractiveErr.
func (f *FakeManager) RunInteractive(_ context.Context, spec Spec) error {
	f.record(spec)
	return f.InteractiveErr
}

// LookPath consults MissingTools, resolving everything else to itself.
func (f *FakeManager) LookPath(name string) (string, error) {
	if f.MissingTools[name] {
		return "", ErrToolNotFound
	}
	return name, nil
}

// Calls returns a copy of every recorded spec in order.
func (f *FakeManager) Calls() []Spec {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Spec, len(f.calls))
	copy(out, f.calls)
	return out
}

// LastCall returns the most recent spec, or a zero Spec if none.
func (f *FakeManager) LastCall() Spec {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return Spec{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *FakeManager) record(spec Spec) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, spec)
}
