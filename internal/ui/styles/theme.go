// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	HeaderInfo  lipgloss.Style

	// ==========================================================================
	// MESSAGES
	// ==========================================================================

	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	UserText       lipgloss.Style
	AssistantText  lipgloss.Style
	ErrorText      lipgloss.Style
	SourceLine     lipgloss.Style
	StatusGlyph    lipgloss.Style
	StatusErr      lipgloss.Style
	Timestamp      lipgloss.Style
	DegradedBadge  lipgloss.Style

	// ==========================================================================
	// INPUT AND SPINNER
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	Spinner        lipgloss.Style
	ThinkingText   lipgloss.Style

	// ==========================================================================
	// STATUS BAR
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	ModeBadge    lipgloss.Style
}

// NewTheme builds the theme for the current terminal.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderBrand = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)
	t.HeaderInfo = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.UserLabel = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)
	t.AssistantLabel = lipgloss.NewStyle().
		Foreground(Wheat).
		Bold(true)
	t.UserText = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.AssistantText = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose)
	t.SourceLine = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)
	t.StatusGlyph = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.StatusErr = lipgloss.NewStyle().
		Foreground(Rose)
	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.DegradedBadge = lipgloss.NewStyle().
		Foreground(Amber)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)
	t.Spinner = lipgloss.NewStyle().
		Foreground(Gold)
	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.ModeBadge = lipgloss.NewStyle().
		Foreground(Wheat)

	return t
}

// Resize records the current terminal dimensions.
func (t *Theme) Resize(width, height int) {
	t.Width = width
	t.Height = height
}
