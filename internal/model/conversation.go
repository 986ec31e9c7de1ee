// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// MaxMessages caps the in-memory log. Old messages are pruned from the
// front once the cap is exceeded.
const MaxMessages = 1000

// =============================================================================
// CONVERSATION
// =============================================================================

// Conversation is the append-only message log for one session.
type Conversation struct {
	ID        string
	Messages  []*Message
	CreatedAt time.Time
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        generateID("conv_"),
		Messages:  make([]*Message, 0, 16),
		CreatedAt: time.Now(),
	}
}

// Add appends a message and prunes the log if it grew past MaxMessages.
func (c *Conversation) Add(m *Message) {
	c.Messages = append(c.Messages, m)
	if len(c.Messages) > MaxMessages {
		c.Messages = c.Messages[len(c.Messages)-MaxMessages:]
	}
}

// Last returns the most recent message, or nil when the log is empty.
func (c *Conversation) Last() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// LastUser returns the most recent user message, or nil.
func (c *Conversation) LastUser() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].IsUser {
			return c.Messages[i]
		}
	}
	return nil
}

// LastAssistant returns the most recent assistant message, or nil.
func (c *Conversation) LastAssistant() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if !c.Messages[i].IsUser {
			return c.Messages[i]
		}
	}
	return nil
}

// Find returns the message with the given ID, or nil.
func (c *Conversation) Find(id string) *Message {
	for _, m := range c.Messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Len returns the number of messages in the log.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// IsEmpty reports whether the log has no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Clear drops all messages and assigns a fresh conversation ID.
func (c *Conversation) Clear() {
	c.ID = generateID("conv_")
	c.Messages = c.Messages[:0]
	c.CreatedAt = time.Now()
}

// Clone returns a deep copy of the conversation. Used when a snapshot must
// outlive the live log, such as export.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		ID:        c.ID,
		Messages:  make([]*Message, len(c.Messages)),
		CreatedAt: c.CreatedAt,
	}
	for i, m := range c.Messages {
		cp := *m
		clone.Messages[i] = &cp
	}
	return clone
}

// =============================================================================
// CONTEXT WINDOW
// =============================================================================

// HistoryEntry is the role/content pair replayed to the backend so it can
// resolve follow-up questions.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History returns up to n of the most recent messages as role/content
// pairs, oldest first.
func (c *Conversation) History(n int) []HistoryEntry {
	if n <= 0 {
		return nil
	}
	start := len(c.Messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]HistoryEntry, 0, len(c.Messages)-start)
	for _, m := range c.Messages[start:] {
		out = append(out, HistoryEntry{Role: m.Role(), Content: m.Content})
	}
	return out
}
