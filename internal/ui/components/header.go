// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the wuchat TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/wuchat-tui/internal/ui/styles"
	"github.com/jeranaias/wuchat-tui/internal/util"
)

// Header renders the top bar: brand on the left, session info on the
// right.
func Header(t *styles.Theme, sessionShort string, width int) string {
	brand := t.HeaderBrand.Render("wuchat")
	sub := t.HeaderInfo.Render(" · Wichita State virtual guide")
	left := brand + sub

	right := t.HeaderInfo.Render(sessionShort)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return t.Header.Width(width).Render(util.Truncate(left, width-2))
	}
	return t.Header.Width(width).Render(left + util.PadRight("", gap) + right)
}
