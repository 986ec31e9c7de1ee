// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/wuchat-tui/internal/chat"
	"github.com/jeranaias/wuchat-tui/internal/model"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// AnswerMsg carries a resolved backend reply. Message is nil when the
// result arrived after a reset or abort and was discarded by the engine.
type AnswerMsg struct {
	Message *model.Message
	Epoch   uint64
}

// SentTickMsg fires the scheduled sending→sent transition for one user
// message. The epoch fences it against resets.
type SentTickMsg struct {
	ID    string
	Epoch uint64
}

// NoteExpiredMsg clears the transient status note.
type NoteExpiredMsg struct{}

// =============================================================================
// COMMANDS
// =============================================================================

// sentDelay is how long a user message stays in the sending state before
// the UI promotes it.
const sentDelay = 500 * time.Millisecond

// askCmd resolves a backend turn off the UI goroutine.
func askCmd(ctx context.Context, engine *chat.Engine, epoch uint64, question string) tea.Cmd {
	return func() tea.Msg {
		return AnswerMsg{
			Message: engine.Resolve(ctx, epoch, question),
			Epoch:   epoch,
		}
	}
}

// sentTickCmd schedules the sent transition for a user message.
func sentTickCmd(id string, epoch uint64) tea.Cmd {
	return tea.Tick(sentDelay, func(time.Time) tea.Msg {
		return SentTickMsg{ID: id, Epoch: epoch}
	})
}

// noteExpiryCmd clears the status note after a short delay.
func noteExpiryCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return NoteExpiredMsg{}
	})
}
