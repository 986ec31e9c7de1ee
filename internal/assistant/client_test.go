// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/wuchat-tui/internal/logging"
)

func TestMain(m *testing.M) {
	logging.Disable()
	os.Exit(m.Run())
}

func testRequest() AskRequest {
	return AskRequest{
		Q:         "when is the fall deadline?",
		UserID:    "user_1_abc",
		SessionID: "session_1_abc",
	}
}

func TestClient_Ask_Success(t *testing.T) {
	var gotBody AskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/ask", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": "Nov 1"}`))
	}))
	defer srv.Close()

	payload, err := NewClient(srv.URL).Ask(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "Nov 1", payload["answer"])
	assert.Equal(t, "when is the fall deadline?", gotBody.Q)
	assert.Equal(t, "session_1_abc", gotBody.SessionID)
}

func TestClient_Ask_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Ask(context.Background(), testRequest())

	require.Error(t, err)
	assert.True(t, IsForbidden(err), "403 should classify as forbidden, got %v", err)
}

func TestClient_Ask_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Ask(context.Background(), testRequest())

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Contains(t, httpErr.Body, "boom")
}

func TestClient_Ask_NonJSONContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>proxy error page</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Ask(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrMalformedBody)
}

func TestClient_Ask_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Ask(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrMalformedBody)
}

func TestClient_Ask_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": "too late"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).WithTimeout(20 * time.Millisecond).Ask(context.Background(), testRequest())

	require.Error(t, err)
	assert.True(t, IsTimeout(err), "deadline overrun should classify as timeout, got %v", err)
}

func TestClient_Ask_NetworkUnavailable(t *testing.T) {
	// Nothing listens here.
	_, err := NewClient("http://127.0.0.1:1").Ask(context.Background(), testRequest())

	require.Error(t, err)
	assert.True(t, IsNetworkUnavailable(err), "refused connection should classify as network, got %v", err)
}

func TestClient_Ask_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := NewClient(srv.URL).Ask(ctx, testRequest())

	// A deliberate abort is not a failure category; it must stay
	// distinguishable from timeouts.
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsTimeout(err))
}

// =============================================================================
// FALLBACK RESULT TESTS
// =============================================================================

func TestFallbackResult_Categories(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"timeout", ErrTimeout, "timed out"},
		{"network", ErrNetworkUnavailable, "trouble connecting to the server"},
		{"forbidden", ErrForbidden, "CORS"},
		{"http error", &HTTPError{Status: 500}, "error processing your request"},
		{"malformed body", ErrMalformedBody, "error processing your request"},
		{"backend error", &BackendError{Message: "x"}, "error processing your request"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := FallbackResult(tc.err)

			assert.Equal(t, StatusError, res.Status)
			assert.Contains(t, res.Answer.Text, tc.contains)
			assert.Zero(t, res.Answer.Confidence)
			assert.NotEmpty(t, res.ErrorMessage)
		})
	}
}

func TestFallbackResult_PreservesDiagnostic(t *testing.T) {
	err := errors.New("connect: connection refused")
	res := FallbackResult(err)

	assert.Equal(t, "connect: connection refused", res.ErrorMessage)
}
