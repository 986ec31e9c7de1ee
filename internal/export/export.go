// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders conversation transcripts to files.
package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/wuchat-tui/internal/model"
	"github.com/jeranaias/wuchat-tui/internal/util"
)

// Format selects the transcript rendering.
type Format int

const (
	FormatMarkdown Format = iota
	FormatJSON
)

// FormatForPath picks a format from the file extension. Markdown is the
// default.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatMarkdown
}

// Write renders the conversation in the given format and writes it
// atomically to path.
func Write(conv *model.Conversation, path string, format Format) error {
	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = JSON(conv)
	default:
		data = []byte(Markdown(conv))
	}
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(path, data, 0o644)
}

// =============================================================================
// MARKDOWN
// =============================================================================

// Markdown renders the transcript as a readable document.
func Markdown(conv *model.Conversation) string {
	var b strings.Builder
	b.WriteString("# wuchat transcript\n\n")
	b.WriteString("Exported: " + time.Now().Format(time.RFC3339) + "\n\n")

	for _, m := range conv.Messages {
		speaker := "wuchat"
		if m.IsUser {
			speaker = "You"
		}
		fmt.Fprintf(&b, "**%s** (%s):\n\n%s\n", speaker, m.Timestamp.Format("15:04"), m.Content)
		if m.SourceURL != "" {
			fmt.Fprintf(&b, "\n> Source: %s\n", m.SourceURL)
		}
		b.WriteString("\n---\n\n")
	}
	return b.String()
}

// =============================================================================
// JSON
// =============================================================================

type jsonMessage struct {
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	Confidence  float64   `json:"confidence,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	SourceQuote string    `json:"source_quote,omitempty"`
}

type jsonTranscript struct {
	ConversationID string        `json:"conversation_id"`
	CreatedAt      time.Time     `json:"created_at"`
	ExportedAt     time.Time     `json:"exported_at"`
	Messages       []jsonMessage `json:"messages"`
}

// JSON renders the transcript as a machine-readable document.
func JSON(conv *model.Conversation) ([]byte, error) {
	out := jsonTranscript{
		ConversationID: conv.ID,
		CreatedAt:      conv.CreatedAt,
		ExportedAt:     time.Now(),
		Messages:       make([]jsonMessage, 0, len(conv.Messages)),
	}
	for _, m := range conv.Messages {
		out.Messages = append(out.Messages, jsonMessage{
			ID:          m.ID,
			Role:        m.Role(),
			Content:     m.Content,
			Timestamp:   m.Timestamp,
			Status:      m.Status.String(),
			Confidence:  m.Confidence,
			SourceURL:   m.SourceURL,
			SourceQuote: m.SourceQuote,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
