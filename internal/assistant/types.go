// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import "github.com/jeranaias/wuchat-tui/internal/model"

// =============================================================================
// REQUEST
// =============================================================================

// AskContext carries the conversational context the backend uses to
// resolve follow-up questions.
type AskContext struct {
	UserName            string               `json:"user_name"`
	ConversationHistory []model.HistoryEntry `json:"conversation_history"`
}

// AskRequest is the wire body for POST /api/ask.
type AskRequest struct {
	Q         string     `json:"q"`
	UserID    string     `json:"user_id"`
	SessionID string     `json:"session_id"`
	Context   AskContext `json:"context"`
}

// =============================================================================
// CANONICAL RESULT
// =============================================================================

// ResultStatus is the canonical outcome of an ask.
type ResultStatus string

const (
	// StatusOK means the backend produced a usable answer.
	StatusOK ResultStatus = "success"

	// StatusError means the request failed; Answer.Text holds the
	// user-facing apology and ErrorMessage the diagnostic.
	StatusError ResultStatus = "error"
)

// AnswerFact is the normalized answer. Text is never empty on a StatusOK
// result; Confidence is always within [0, 1].
type AnswerFact struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// SourceRef points at the document the answer was drawn from. Both fields
// may be empty when the backend supplied no provenance.
type SourceRef struct {
	URL   string `json:"url"`
	Quote string `json:"quote"`
}

// Result is the canonical response every backend shape is normalized into.
// Downstream code only ever sees this.
type Result struct {
	Status       ResultStatus `json:"status"`
	Answer       AnswerFact   `json:"answer"`
	Source       SourceRef    `json:"source,omitempty"`
	Degraded     bool         `json:"degraded,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

// OK reports whether the result carries a usable answer.
func (r *Result) OK() bool {
	return r.Status == StatusOK
}

// HasSource reports whether the result carries document provenance.
func (r *Result) HasSource() bool {
	return r.Source.URL != "" || r.Source.Quote != ""
}

// clamp01 bounds a confidence value to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
