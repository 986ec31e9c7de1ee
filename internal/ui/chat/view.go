// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatui

import (
	"strings"

	"github.com/jeranaias/wuchat-tui/internal/model"
	"github.com/jeranaias/wuchat-tui/internal/ui/components"
	"github.com/jeranaias/wuchat-tui/internal/util"
)

// View renders the whole screen.
func (m Model) View() string {
	if !m.ready {
		return "starting wuchat..."
	}

	var b strings.Builder
	b.WriteString(components.Header(m.theme, m.engine.Identity().Short(), m.width))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.state == StateWaiting {
		b.WriteString(m.spin.View() + m.theme.ThinkingText.Render(" wuchat is thinking..."))
	} else if m.note != "" {
		b.WriteString(m.theme.ThinkingText.Render(m.note))
	}
	b.WriteString("\n")

	b.WriteString(m.theme.InputContainer.Width(m.width - 2).Render(
		m.theme.InputPrompt.Render("❯ ") + m.input.View(),
	))
	b.WriteString("\n")

	b.WriteString(components.StatusBar(m.theme, m.modeLabel(), shortcuts, m.width))
	return b.String()
}

var shortcuts = []components.Shortcut{
	{Key: "enter", Desc: "send"},
	{Key: "ctrl+l", Desc: "clear"},
	{Key: "ctrl+y", Desc: "copy"},
	{Key: "esc", Desc: "cancel"},
	{Key: "ctrl+c", Desc: "quit"},
}

func (m Model) modeLabel() string {
	switch m.engine.Mode().String() {
	case "chatting":
		if name := m.engine.UserName(); name != "" {
			return "chatting as " + name
		}
		return "chatting"
	default:
		return "getting acquainted"
	}
}

// =============================================================================
// CONVERSATION RENDERING
// =============================================================================

func (m *Model) renderConversation() string {
	var b strings.Builder
	for i, msg := range m.engine.Messages() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
	}
	return b.String()
}

func (m *Model) renderMessage(msg *model.Message) string {
	var b strings.Builder

	// Speaker line: name, relative time, delivery status.
	if msg.IsUser {
		b.WriteString(m.theme.UserLabel.Render("You"))
	} else {
		b.WriteString(m.theme.AssistantLabel.Render("wuchat"))
	}
	b.WriteString(" " + m.theme.Timestamp.Render(util.TimeAgo(msg.Timestamp)))
	if msg.IsUser || msg.Status == model.StatusError {
		glyphStyle := m.theme.StatusGlyph
		if msg.Status == model.StatusError {
			glyphStyle = m.theme.StatusErr
		}
		b.WriteString(" " + glyphStyle.Render(msg.Status.Glyph()))
	}
	b.WriteString("\n")

	b.WriteString(m.renderBody(msg))

	if !msg.IsUser && m.showSources && msg.SourceURL != "" {
		b.WriteString(m.theme.SourceLine.Render("Source: "+msg.SourceURL) + "\n")
	}
	if !msg.IsUser && msg.Status != model.StatusError && msg.Confidence > 0 && msg.Confidence <= 0.5 {
		b.WriteString(m.theme.DegradedBadge.Render("low confidence answer") + "\n")
	}
	return b.String()
}

func (m *Model) renderBody(msg *model.Message) string {
	if msg.Status == model.StatusError && !msg.IsUser {
		return m.theme.ErrorText.Render(msg.Content) + "\n"
	}
	if msg.IsUser {
		return m.theme.UserText.Render(msg.Content) + "\n"
	}
	if m.markdown && m.renderer != nil {
		if out, err := m.renderer.Render(msg.Content); err == nil {
			return strings.TrimRight(out, "\n") + "\n"
		}
	}
	return m.theme.AssistantText.Render(msg.Content) + "\n"
}
