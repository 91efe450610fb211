// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks for operator confirmation on destructive actions.
//
// # Description
//
// Prompter wraps an input/output pair so confirmation flows can be
// tested with scripted input. Two confirmation strengths exist:
//
//   - Confirm: a single y/Y keystroke, used before restoring a backup.
//   - ConfirmToken: a literal token (e.g. "DELETE") typed in full, used
//     before deleting the whole backup set. Anything else — including
//     lowercase "delete" or a bare "y" — declines.
//
// Declining is never an error; callers treat it as a cancelled outcome
// and return to the menu.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm asks a yes/no question, accepting only y or Y.
//
// # Outputs
//
//   - bool: true if the operator typed y or Y; false for anything
//     else, including an empty line or EOF.
func (p *Prompter) Confirm(question string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y"
}

// ConfirmToken asks the operator to type an exact token.
//
// # Description
//
// The comparison is case-sensitive and exact after trimming the line
// ending. Used for irreversible operations where a single keystroke is
// too easy to fat-finger.
//
// # Example
//
//	if !prompter.ConfirmToken("This deletes every backup. Type DELETE to proceed", "DELETE") {
//	    return ErrCancelled
//	}
func (p *Prompter) ConfirmToken(question, token string) bool {
	fmt.Fprintf(p.out, "%s: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.TrimRight(line, "\r\n") == token
}

// Select asks for a 1-indexed choice from a numbered list, with 0 as
// an explicit cancel entry.
//
// # Description
//
// Renders each option on its own numbered line, then "0) Cancel", and
// reads a single line. Returns the zero-based index of the chosen
// option, or:
//
//   - (-1, nil) when the operator cancels
//   - (-1, error) when the input is not a number in range
//
// The caller re-prompts or reports the invalid selection; the prompt
// itself never loops.
func (p *Prompter) Select(title string, options []string) (int, error) {
	fmt.Fprintln(p.out, title)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprintln(p.out, "  0) Cancel")
	fmt.Fprint(p.out, "Choice: ")

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return -1, nil
	}
	answer := strings.TrimSpace(line)

	var n int
	if _, err := fmt.Sscanf(answer, "%d", &n); err != nil {
		return -1, fmt.Errorf("invalid selection %q", answer)
	}
	if n == 0 {
		return -1, nil
	}
	if n < 1 || n > len(options) {
		return -1, fmt.Errorf("selection %d out of range 1-%d", n, len(options))
	}
	return n - 1, nil
}
