// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatui is the bubbletea chat interface.
package chatui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/wuchat-tui/internal/chat"
	"github.com/jeranaias/wuchat-tui/internal/config"
	"github.com/jeranaias/wuchat-tui/internal/ui/styles"
)

// State is the UI phase.
type State int

const (
	// StateReady accepts input.
	StateReady State = iota

	// StateWaiting has a question in flight; input is locked.
	StateWaiting
)

// Model is the root bubbletea model for the chat screen.
type Model struct {
	engine *chat.Engine
	theme  *styles.Theme

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model
	renderer *glamour.TermRenderer

	state  State
	width  int
	height int
	ready  bool

	// cancelAsk aborts the in-flight request; nil when idle.
	cancelAsk context.CancelFunc

	// note is a transient status line ("copied", "exported ...").
	note string

	showSources bool
	markdown    bool
}

// New creates the chat screen around an engine.
func New(engine *chat.Engine, cfg *config.Config) Model {
	input := textinput.New()
	input.Placeholder = "Ask about admissions, programs, events, campus life..."
	input.Prompt = ""
	input.CharLimit = 2000
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	theme := styles.NewTheme()
	spin.Style = theme.Spinner

	return Model{
		engine:      engine,
		theme:       theme,
		input:       input,
		spin:        spin,
		showSources: cfg.UI.ShowSources,
		markdown:    cfg.UI.Markdown,
	}
}

// Init starts the blink cursor.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// resize lays the screen out for new terminal dimensions and rebuilds the
// markdown renderer at the matching wrap width.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.Resize(width, height)

	// Header, input box (3 with border), status bar, thinking line.
	contentHeight := height - 6
	if contentHeight < 1 {
		contentHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = contentHeight
	}
	m.input.Width = width - 6

	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		m.renderer = renderer
	}

	m.refresh()
}

// refresh re-renders the conversation into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderConversation())
	if atBottom {
		m.viewport.GotoBottom()
	}
}
