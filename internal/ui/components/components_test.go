// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/wuchat-tui/internal/ui/styles"
)

func TestHeader(t *testing.T) {
	theme := styles.NewTheme()

	out := Header(theme, "session_17_abc…", 80)
	if !strings.Contains(out, "wuchat") {
		t.Error("header should contain the brand")
	}
	if !strings.Contains(out, "session_17_abc") {
		t.Error("header should contain the session ID")
	}

	// Narrow terminals drop the session info instead of overflowing.
	narrow := Header(theme, "session_17_abc…", 14)
	if strings.Count(narrow, "\n") > 0 {
		t.Error("narrow header must stay on one line")
	}
}

func TestStatusBar_DropsShortcutsWhenNarrow(t *testing.T) {
	theme := styles.NewTheme()
	shortcuts := []Shortcut{
		{Key: "enter", Desc: "send"},
		{Key: "ctrl+l", Desc: "clear"},
		{Key: "ctrl+c", Desc: "quit"},
	}

	wide := StatusBar(theme, "chatting", shortcuts, 120)
	if !strings.Contains(wide, "enter") || !strings.Contains(wide, "quit") {
		t.Error("wide status bar should show all shortcuts")
	}

	narrow := StatusBar(theme, "chatting", shortcuts, 24)
	if strings.Contains(narrow, "quit") {
		t.Error("narrow status bar should drop trailing shortcuts")
	}
	if !strings.Contains(narrow, "chatting") {
		t.Error("mode label must survive narrowing")
	}
}
