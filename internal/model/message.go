// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// MESSAGE STATUS
// =============================================================================

// Status tracks a message through its delivery lifecycle.
type Status int

const (
	// StatusSending means the message has been handed to the transport
	// but not yet acknowledged.
	StatusSending Status = iota

	// StatusSent means the transport accepted the message.
	StatusSent

	// StatusDelivered means the assistant produced a reply for it, or the
	// message itself is an assistant reply.
	StatusDelivered

	// StatusError means the request behind this message failed.
	StatusError
)

// String returns the lowercase wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusSending:
		return "sending"
	case StatusSent:
		return "sent"
	case StatusDelivered:
		return "delivered"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Glyph returns the single-cell indicator rendered next to a message.
func (s Status) Glyph() string {
	switch s {
	case StatusSending:
		return "○"
	case StatusSent:
		return "✓"
	case StatusDelivered:
		return "✓✓"
	case StatusError:
		return "✗"
	default:
		return "?"
	}
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message is a single entry in the conversation log.
type Message struct {
	ID        string
	Content   string
	IsUser    bool
	Timestamp time.Time
	Status    Status

	// Confidence and source metadata for assistant replies.
	// Zero values for user messages.
	Confidence  float64
	SourceURL   string
	SourceQuote string
}

// NewUserMessage creates a user message in the sending state.
func NewUserMessage(content string) *Message {
	return &Message{
		ID:        generateID("msg_"),
		Content:   content,
		IsUser:    true,
		Timestamp: time.Now(),
		Status:    StatusSending,
	}
}

// NewAssistantMessage creates a delivered assistant message.
func NewAssistantMessage(content string) *Message {
	return &Message{
		ID:        generateID("msg_"),
		Content:   content,
		IsUser:    false,
		Timestamp: time.Now(),
		Status:    StatusDelivered,
	}
}

// NewErrorMessage creates an assistant-side message carrying a failure
// explanation.
func NewErrorMessage(content string) *Message {
	m := NewAssistantMessage(content)
	m.Status = StatusError
	return m
}

// Role returns the wire role used when the message is replayed as
// conversation context.
func (m *Message) Role() string {
	if m.IsUser {
		return "user"
	}
	return "assistant"
}

// Preview returns the first maxLen runes of the content, with an ellipsis
// when truncated. Safe for multi-byte text.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

// generateID creates a random message identifier with the given prefix.
func generateID(prefix string) string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// Fall back to a timestamp-derived ID. Collisions within a single
		// session are the only concern here.
		return prefix + hex.EncodeToString([]byte(time.Now().Format("150405.000")))
	}
	return prefix + hex.EncodeToString(b)
}
