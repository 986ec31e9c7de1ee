// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatui

import (
	"context"
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/wuchat-tui/internal/chat"
	"github.com/jeranaias/wuchat-tui/internal/export"
)

// Update is the bubbletea message loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != StateWaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case SentTickMsg:
		m.engine.MarkSent(msg.ID, msg.Epoch)
		m.refresh()
		return m, nil

	case AnswerMsg:
		if msg.Message == nil {
			// Discarded by the engine after a reset or abort.
			return m, nil
		}
		m.state = StateReady
		m.cancelAsk = nil
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil

	case NoteExpiredMsg:
		m.note = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.abortInFlight()
		return m, tea.Quit

	case "esc":
		if m.state == StateWaiting {
			m.abortInFlight()
			m.state = StateReady
			m.note = "request canceled"
			m.refresh()
			return m, noteExpiryCmd()
		}
		m.input.Reset()
		return m, nil

	case "ctrl+l":
		return m.reset()

	case "ctrl+y":
		return m.copyLastAnswer()

	case "enter":
		return m.submit(m.input.Value())

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.state == StateWaiting {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// abortInFlight cancels the pending request, if any.
func (m *Model) abortInFlight() {
	if m.cancelAsk != nil {
		m.cancelAsk()
		m.cancelAsk = nil
	}
	m.engine.Abort()
}

// =============================================================================
// ACTIONS
// =============================================================================

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	text = strings.TrimSpace(text)

	// Slash commands act on the UI rather than the conversation.
	switch {
	case text == "/quit":
		m.abortInFlight()
		return m, tea.Quit
	case text == "/clear":
		return m.reset()
	case text == "/retry":
		m.input.Reset()
		last := m.engine.LastQuestion()
		if last == "" {
			m.note = "nothing to retry"
			return m, noteExpiryCmd()
		}
		return m.submit(last)
	case strings.HasPrefix(text, "/export"):
		return m.exportTranscript(strings.TrimSpace(strings.TrimPrefix(text, "/export")))
	}

	turn, err := m.engine.Submit(text)
	switch {
	case errors.Is(err, chat.ErrEmptyInput):
		return m, nil
	case errors.Is(err, chat.ErrBusy):
		m.note = "still thinking, hang on"
		return m, noteExpiryCmd()
	case err != nil:
		m.note = err.Error()
		return m, noteExpiryCmd()
	}

	m.input.Reset()
	cmds := []tea.Cmd{sentTickCmd(turn.User.ID, turn.Epoch)}

	if turn.NeedsBackend {
		ctx, cancel := context.WithCancel(context.Background())
		m.cancelAsk = cancel
		m.state = StateWaiting
		cmds = append(cmds,
			askCmd(ctx, m.engine, turn.Epoch, turn.User.Content),
			m.spin.Tick,
		)
	}

	m.refresh()
	m.viewport.GotoBottom()
	return m, tea.Batch(cmds...)
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	m.abortInFlight()
	m.engine.Reset()
	m.state = StateReady
	m.input.Reset()
	m.note = "conversation cleared"
	m.refresh()
	m.viewport.GotoTop()
	return m, noteExpiryCmd()
}

func (m Model) copyLastAnswer() (tea.Model, tea.Cmd) {
	var content string
	for _, msg := range m.engine.Messages() {
		if !msg.IsUser {
			content = msg.Content
		}
	}
	if content == "" {
		m.note = "nothing to copy"
		return m, noteExpiryCmd()
	}
	if err := clipboard.WriteAll(content); err != nil {
		m.note = "clipboard unavailable"
	} else {
		m.note = "answer copied"
	}
	return m, noteExpiryCmd()
}

func (m Model) exportTranscript(path string) (tea.Model, tea.Cmd) {
	m.input.Reset()
	if path == "" {
		path = "wuchat-transcript.md"
	}
	if err := export.Write(m.engine.Snapshot(), path, export.FormatForPath(path)); err != nil {
		m.note = "export failed: " + err.Error()
	} else {
		m.note = "exported to " + path
	}
	return m, noteExpiryCmd()
}
