// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// randomTailLen is the number of random characters appended after the
// timestamp in generated IDs.
const randomTailLen = 9

// Identity is the ephemeral session/user ID pair sent with every request.
// The backend uses it to correlate a conversation; it carries no account
// semantics.
type Identity struct {
	SessionID string
	UserID    string
}

// New generates a fresh identity pair. Both IDs embed the creation time in
// unix milliseconds plus a random tail, so they sort by age and never
// collide in practice.
func New() Identity {
	now := time.Now().UnixMilli()
	return Identity{
		SessionID: formatID("session", now),
		UserID:    formatID("user", now),
	}
}

// IsZero reports whether the identity has not been generated yet.
func (id Identity) IsZero() bool {
	return id.SessionID == "" && id.UserID == ""
}

// Short returns an abbreviated session ID for status displays.
func (id Identity) Short() string {
	const max = 18
	if len(id.SessionID) <= max {
		return id.SessionID
	}
	return id.SessionID[:max] + "…"
}

func formatID(prefix string, unixMillis int64) string {
	return prefix + "_" + formatInt(unixMillis) + "_" + randomTail()
}

// randomTail returns randomTailLen URL-safe alphanumeric characters drawn
// from a v4 UUID.
func randomTail() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return raw[:randomTailLen]
}

// formatInt renders a non-negative int64 without pulling in fmt.
func formatInt(n int64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
