// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	m := NewUserMessage("hello")

	if !m.IsUser {
		t.Error("NewUserMessage should set IsUser")
	}
	if m.Status != StatusSending {
		t.Errorf("new user message status = %v, want sending", m.Status)
	}
	if !strings.HasPrefix(m.ID, "msg_") {
		t.Errorf("message ID %q should have msg_ prefix", m.ID)
	}
	if m.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestNewAssistantMessage(t *testing.T) {
	m := NewAssistantMessage("reply")

	if m.IsUser {
		t.Error("assistant message should not set IsUser")
	}
	if m.Status != StatusDelivered {
		t.Errorf("assistant message status = %v, want delivered", m.Status)
	}
	if m.Role() != "assistant" {
		t.Errorf("Role() = %q, want assistant", m.Role())
	}
}

func TestMessageIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		m := NewUserMessage("x")
		if seen[m.ID] {
			t.Fatalf("duplicate message ID %q", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusSending, "sending"},
		{StatusSent, "sent"},
		{StatusDelivered, "delivered"},
		{StatusError, "error"},
		{Status(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.status.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMessage_Preview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{"short content unchanged", "hi", 10, "hi"},
		{"long content truncated", "hello world", 6, "hello…"},
		{"multibyte safe", "héllo wörld", 6, "héllo…"},
		{"exact length unchanged", "hello", 5, "hello"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := &Message{Content: tc.content}
			if got := m.Preview(tc.maxLen); got != tc.want {
				t.Errorf("Preview(%d) = %q, want %q", tc.maxLen, got, tc.want)
			}
		})
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_AddAndLast(t *testing.T) {
	c := NewConversation()

	if !c.IsEmpty() {
		t.Error("new conversation should be empty")
	}

	u := NewUserMessage("question")
	a := NewAssistantMessage("answer")
	c.Add(u)
	c.Add(a)

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if c.Last() != a {
		t.Error("Last() should return the assistant message")
	}
	if c.LastUser() != u {
		t.Error("LastUser() should return the user message")
	}
	if c.LastAssistant() != a {
		t.Error("LastAssistant() should return the assistant message")
	}
	if c.Find(u.ID) != u {
		t.Error("Find() should locate messages by ID")
	}
}

func TestConversation_Clear(t *testing.T) {
	c := NewConversation()
	oldID := c.ID
	c.Add(NewUserMessage("x"))

	c.Clear()

	if !c.IsEmpty() {
		t.Error("Clear() should empty the log")
	}
	if c.ID == oldID {
		t.Error("Clear() should assign a fresh conversation ID")
	}

	// Clearing twice is harmless.
	c.Clear()
	if !c.IsEmpty() {
		t.Error("second Clear() should leave the log empty")
	}
}

func TestConversation_Pruning(t *testing.T) {
	c := NewConversation()
	for i := 0; i < MaxMessages+10; i++ {
		c.Add(NewUserMessage("m"))
	}
	if c.Len() != MaxMessages {
		t.Errorf("Len() after overflow = %d, want %d", c.Len(), MaxMessages)
	}
}

func TestConversation_History(t *testing.T) {
	c := NewConversation()
	c.Add(NewUserMessage("one"))
	c.Add(NewAssistantMessage("two"))
	c.Add(NewUserMessage("three"))

	h := c.History(2)
	if len(h) != 2 {
		t.Fatalf("History(2) returned %d entries", len(h))
	}
	if h[0].Role != "assistant" || h[0].Content != "two" {
		t.Errorf("History(2)[0] = %+v, want assistant/two", h[0])
	}
	if h[1].Role != "user" || h[1].Content != "three" {
		t.Errorf("History(2)[1] = %+v, want user/three", h[1])
	}

	if got := c.History(10); len(got) != 3 {
		t.Errorf("History(10) returned %d entries, want all 3", len(got))
	}
	if got := c.History(0); got != nil {
		t.Error("History(0) should return nil")
	}
}

func TestConversation_Clone(t *testing.T) {
	c := NewConversation()
	c.Add(NewUserMessage("original"))

	clone := c.Clone()
	clone.Messages[0].Content = "mutated"

	if c.Messages[0].Content != "original" {
		t.Error("mutating a clone should not affect the source conversation")
	}
}
