// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"regexp"
	"testing"
)

var idPattern = regexp.MustCompile(`^(session|user)_\d+_[a-z0-9]{9}$`)

func TestNew_Format(t *testing.T) {
	id := New()

	if !idPattern.MatchString(id.SessionID) {
		t.Errorf("SessionID %q does not match expected format", id.SessionID)
	}
	if !idPattern.MatchString(id.UserID) {
		t.Errorf("UserID %q does not match expected format", id.UserID)
	}
	if id.IsZero() {
		t.Error("generated identity should not be zero")
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := New()
		if seen[id.SessionID] {
			t.Fatalf("duplicate session ID %q", id.SessionID)
		}
		seen[id.SessionID] = true
	}
}

func TestManager_Reset(t *testing.T) {
	m := NewManager()
	before := m.Identity()

	after := m.Reset()

	if after.SessionID == before.SessionID {
		t.Error("Reset() should generate a new session ID")
	}
	if after.UserID == before.UserID {
		t.Error("Reset() should generate a new user ID")
	}
	if m.Identity() != after {
		t.Error("Identity() should return the post-reset pair")
	}

	// Resetting again keeps producing fresh pairs.
	again := m.Reset()
	if again.SessionID == after.SessionID {
		t.Error("second Reset() should generate another new session ID")
	}
	if m.Resets() != 2 {
		t.Errorf("Resets() = %d, want 2", m.Resets())
	}
}

func TestIdentity_Short(t *testing.T) {
	id := Identity{SessionID: "session_1712345678901_abcdefghi"}
	short := id.Short()
	if len([]rune(short)) > 19 {
		t.Errorf("Short() = %q, too long", short)
	}

	small := Identity{SessionID: "session_1_a"}
	if small.Short() != "session_1_a" {
		t.Errorf("Short() should not truncate short IDs, got %q", small.Short())
	}
}
