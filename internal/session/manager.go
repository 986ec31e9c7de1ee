// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager owns the current identity and session timing. All methods are
// safe for concurrent use; the chat engine and the UI both read from it.
type Manager struct {
	mu sync.Mutex

	identity  Identity
	startTime time.Time
	resets    int
}

// NewManager creates a manager with a freshly generated identity.
func NewManager() *Manager {
	return &Manager{
		identity:  New(),
		startTime: time.Now(),
	}
}

// Identity returns the current session/user ID pair.
func (m *Manager) Identity() Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

// Reset discards the current identity and generates a new pair. The old
// IDs are never reused. Returns the new identity.
func (m *Manager) Reset() Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identity = New()
	m.startTime = time.Now()
	m.resets++
	return m.identity
}

// StartTime returns when the current session began.
func (m *Manager) StartTime() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startTime
}

// Duration returns how long the current session has been active.
func (m *Manager) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.startTime)
}

// Resets returns how many times the session has been reset.
func (m *Manager) Resets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}
