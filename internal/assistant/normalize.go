// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultSourceDomain is the site source files are resolved against when
// the backend returns bare document names.
const DefaultSourceDomain = "https://wichita.edu"

// noAnswerApology is returned when the backend explicitly reports it found
// nothing, with no error text of its own.
const noAnswerApology = "I apologize, but I couldn't find specific information about that. " +
	"Please try rephrasing your question or ask about admissions, programs, or campus life."

// =============================================================================
// SHAPE RULES
// =============================================================================

// The backend has shipped several response shapes over its lifetime and
// the deployed version is not knowable from the client. Rules are matched
// strictly in order; the first match wins. Unknown extra fields are
// ignored everywhere.
type shapeRule struct {
	name  string
	match func(p map[string]any) bool
	build func(p map[string]any, domain string) (*Result, error)
}

var shapeRules = []shapeRule{
	// Explicit "no results" outcome. Still a usable reply, just a low
	// confidence one.
	{
		name: "success-false",
		match: func(p map[string]any) bool {
			v, ok := p["success"].(bool)
			return ok && !v
		},
		build: func(p map[string]any, _ string) (*Result, error) {
			text := strings.TrimSpace(getString(p, "error"))
			if text == "" {
				text = noAnswerApology
			}
			return &Result{
				Status: StatusOK,
				Answer: AnswerFact{Text: text, Confidence: 0.1},
			}, nil
		},
	},

	// Explicit error envelope.
	{
		name: "status-error",
		match: func(p map[string]any) bool {
			return getString(p, "status") == "error"
		},
		build: func(p map[string]any, _ string) (*Result, error) {
			return nil, &BackendError{Message: getString(p, "error_message")}
		},
	},

	// Flat answer string with an optional sources array.
	{
		name: "answer-string",
		match: func(p map[string]any) bool {
			_, ok := p["answer"].(string)
			return ok
		},
		build: func(p map[string]any, domain string) (*Result, error) {
			text := strings.TrimSpace(getString(p, "answer"))
			if text == "" {
				return nil, ErrEmptyAnswer
			}
			res := &Result{
				Status: StatusOK,
				Answer: AnswerFact{Text: text, Confidence: 0.9},
			}
			if first, ok := firstSource(p); ok {
				res.Source = SourceRef{
					URL:   joinSource(domain, getString(first, "source_file")),
					Quote: getString(first, "text_snippet"),
				}
			}
			return res, nil
		},
	},

	// Success envelope with the answer nested under data.
	{
		name: "data-response",
		match: func(p map[string]any) bool {
			v, ok := p["success"].(bool)
			if !ok || !v {
				return false
			}
			data, ok := p["data"].(map[string]any)
			return ok && getString(data, "response") != ""
		},
		build: func(p map[string]any, _ string) (*Result, error) {
			data := p["data"].(map[string]any)
			response := getString(data, "response")
			confidence := 0.9
			if v, ok := data["confidence"].(float64); ok {
				confidence = v
			}
			return &Result{
				Status: StatusOK,
				Answer: AnswerFact{Text: response, Confidence: clamp01(confidence)},
				Source: SourceRef{
					URL:   getString(data, "source_url"),
					Quote: response,
				},
			}, nil
		},
	},

	// Already-canonical shape: answer is an object with its own text.
	{
		name: "answer-object",
		match: func(p map[string]any) bool {
			answer, ok := p["answer"].(map[string]any)
			if !ok {
				return false
			}
			_, ok = answer["text"].(string)
			return ok
		},
		build: func(p map[string]any, _ string) (*Result, error) {
			answer := p["answer"].(map[string]any)
			text := strings.TrimSpace(getString(answer, "text"))
			if text == "" {
				return nil, ErrEmptyAnswer
			}
			confidence := 0.9
			if v, ok := answer["confidence"].(float64); ok {
				confidence = v
			}
			res := &Result{
				Status: StatusOK,
				Answer: AnswerFact{Text: text, Confidence: clamp01(confidence)},
			}
			if source, ok := p["source"].(map[string]any); ok {
				res.Source = SourceRef{
					URL:   getString(source, "url"),
					Quote: getString(source, "quote"),
				}
			}
			return res, nil
		},
	},
}

// =============================================================================
// NORMALIZE
// =============================================================================

// Normalize folds a decoded backend payload into the canonical Result.
// domain resolves bare source file names into URLs; empty selects
// DefaultSourceDomain.
func Normalize(payload map[string]any, domain string) (*Result, error) {
	if domain == "" {
		domain = DefaultSourceDomain
	}
	for _, r := range shapeRules {
		if !r.match(payload) {
			continue
		}
		res, err := r.build(payload, domain)
		log.Debug().Str("rule", r.name).Err(err).Msg("normalized response")
		return res, err
	}
	return fallbackScan(payload)
}

// fallbackScan is the last resort for payloads no rule recognizes: pull
// answer text out of any of the known field positions, or surface the raw
// payload rather than show the user nothing.
func fallbackScan(payload map[string]any) (*Result, error) {
	var text string
	if data, ok := payload["data"].(map[string]any); ok {
		text = getString(data, "response")
	}
	if text == "" {
		text = getString(payload, "response")
	}
	if text == "" {
		if answer, ok := payload["answer"].(map[string]any); ok {
			text = getString(answer, "text")
		}
	}
	if text == "" {
		if len(payload) == 0 {
			return nil, ErrUnrecognizedShape
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		text = string(raw)
	}

	log.Debug().Str("rule", "fallback-scan").Msg("normalized response")
	return &Result{
		Status:   StatusOK,
		Answer:   AnswerFact{Text: text, Confidence: 0.5},
		Degraded: true,
	}, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// getString returns p[key] when it is a string, else "".
func getString(p map[string]any, key string) string {
	v, _ := p[key].(string)
	return v
}

// firstSource returns the first element of the payload's sources array.
func firstSource(p map[string]any) (map[string]any, bool) {
	sources, ok := p["sources"].([]any)
	if !ok || len(sources) == 0 {
		return nil, false
	}
	first, ok := sources[0].(map[string]any)
	return first, ok
}

// joinSource resolves a bare source file name against the site domain.
func joinSource(domain, file string) string {
	if file == "" {
		return ""
	}
	return strings.TrimSuffix(domain, "/") + "/" + strings.TrimPrefix(file, "/")
}
