// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling and prompts for xenz.
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// xenz color palette - server-room greens and amber warnings
var (
	ColorGreenBright  = lipgloss.Color("#4AE28B") // Bright green - success, highlights
	ColorGreenPrimary = lipgloss.Color("#2FBF71") // Primary green - main brand color
	ColorGreenDeep    = lipgloss.Color("#1E8E53") // Deep green - borders, accents
	ColorSlate        = lipgloss.Color("#4A5A64") // Slate - muted text
	ColorAmber        = lipgloss.Color("#F4D03F") // Amber - warnings
	ColorRed          = lipgloss.Color("#E74C3C") // Red - errors, destructive prompts
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	Box       lipgloss.Style
	DangerBox lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorGreenBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorGreenPrimary),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorSlate),
	Success:   lipgloss.NewStyle().Foreground(ColorGreenBright),
	Warning:   lipgloss.NewStyle().Foreground(ColorAmber),
	Error:     lipgloss.NewStyle().Foreground(ColorRed),
	Highlight: lipgloss.NewStyle().Foreground(ColorGreenBright).Bold(true),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorGreenDeep).
		Padding(0, 1),
	DangerBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorRed).
		Padding(0, 1),
}

// Success prints a success line with a check mark.
func Success(format string, args ...any) {
	fmt.Fprintln(os.Stdout, Styles.Success.Render("✓ ")+fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func Warn(format string, args ...any) {
	fmt.Fprintln(os.Stdout, Styles.Warning.Render("⚠ ")+fmt.Sprintf(format, args...))
}

// Fail prints an error line.
func Fail(format string, args ...any) {
	fmt.Fprintln(os.Stdout, Styles.Error.Render("✗ ")+fmt.Sprintf(format, args...))
}

// Info prints a neutral informational line.
func Info(format string, args ...any) {
	fmt.Fprintln(os.Stdout, fmt.Sprintf(format, args...))
}

// Title prints a section heading.
func Title(text string) {
	fmt.Fprintln(os.Stdout, Styles.Title.Render(text))
}
