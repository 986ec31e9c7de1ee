// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/wuchat-tui/internal/ui/styles"
	"github.com/jeranaias/wuchat-tui/internal/util"
)

// Shortcut is one key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom bar: conversation phase on the left,
// shortcuts on the right. Shortcuts drop off when the terminal is narrow.
func StatusBar(t *styles.Theme, mode string, shortcuts []Shortcut, width int) string {
	left := t.ModeBadge.Render(mode)

	var parts []string
	for _, s := range shortcuts {
		parts = append(parts, t.ShortcutKey.Render(s.Key)+" "+t.ShortcutDesc.Render(s.Desc))
	}
	right := strings.Join(parts, "  ")

	for len(parts) > 0 && lipgloss.Width(left)+lipgloss.Width(right)+3 > width {
		parts = parts[:len(parts)-1]
		right = strings.Join(parts, "  ")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return t.StatusBar.Width(width).Render(left + util.PadRight("", gap) + right)
}
