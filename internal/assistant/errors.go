// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// =============================================================================
// ERROR TAXONOMY
// =============================================================================

// Sentinel errors for the failure categories the UI distinguishes. Wrap
// with fmt.Errorf("%w: ...") and test with errors.Is.
var (
	// ErrTimeout means the 60-second deadline elapsed before the backend
	// answered.
	ErrTimeout = errors.New("request timed out")

	// ErrNetworkUnavailable means the request never reached the backend
	// (refused connection, DNS failure, unreachable host).
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrForbidden means the backend rejected the request with 403,
	// usually an origin/CORS misconfiguration on the server side.
	ErrForbidden = errors.New("request forbidden")

	// ErrMalformedBody means the response was not the JSON the backend
	// contract promises.
	ErrMalformedBody = errors.New("malformed response body")

	// ErrEmptyAnswer means the backend answered with an empty or
	// whitespace-only answer text.
	ErrEmptyAnswer = errors.New("empty answer")

	// ErrUnrecognizedShape means no normalizer rule matched the payload
	// and the fallback scan found no usable text either.
	ErrUnrecognizedShape = errors.New("unrecognized response shape")
)

// HTTPError is a non-2xx, non-403 status from the backend.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend returned HTTP %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("backend returned HTTP %d", e.Status)
}

// BackendError is an explicit error envelope from the backend
// (status == "error" in the payload).
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return "backend reported an error"
	}
	return "backend reported an error: " + e.Message
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// IsTimeout reports whether the error is the deadline category.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// IsNetworkUnavailable reports whether the request never reached the
// backend.
func IsNetworkUnavailable(err error) bool {
	return errors.Is(err, ErrNetworkUnavailable)
}

// IsForbidden reports whether the backend rejected the request outright.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// classifyTransportError folds the raw error from the HTTP round trip into
// the taxonomy. Context cancellation passes through untouched so callers
// can tell an aborted request from a failed one.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
}

// =============================================================================
// USER-FACING FALLBACK
// =============================================================================

// Apology texts shown in place of an answer when a request fails. The
// wording is part of the product surface; the diagnostic detail goes to
// ErrorMessage instead.
const (
	timeoutApology = "The request timed out. The server is taking too long to respond. " +
		"Please try again with a simpler question or check if the backend is running properly."

	networkApology = "I'm sorry, I'm having trouble connecting to the server right now. " +
		"Please try again in a moment."

	forbiddenApology = "I'm having trouble connecting to the backend server. " +
		"Please check that the backend is running and configured to allow requests from this origin (CORS)."

	genericApology = "I'm sorry, there was an error processing your request. Please try again."
)

// FallbackResult converts any ask failure into the canonical error result.
// The chat log always receives a well-formed Result, never a bare error.
func FallbackResult(err error) *Result {
	text := genericApology
	switch {
	case IsTimeout(err):
		text = timeoutApology
	case IsNetworkUnavailable(err):
		text = networkApology
	case IsForbidden(err):
		text = forbiddenApology
	}
	return &Result{
		Status:       StatusError,
		Answer:       AnswerFact{Text: text, Confidence: 0},
		ErrorMessage: err.Error(),
	}
}
