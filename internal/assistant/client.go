// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultBaseURL is where a locally run backend listens.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds a single ask. The backend does retrieval and
	// generation per question, so this is generous on purpose.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps how much of a response body is read.
	// PERFORMANCE: prevents memory exhaustion from a misbehaving backend.
	MaxResponseSize = 10 * 1024 * 1024

	askPath   = "/api/ask"
	userAgent = "wuchat-tui"
)

// Shared HTTP client with connection pooling. One backend, low request
// rate; a couple of idle connections is plenty.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	},
}

// =============================================================================
// CLIENT
// =============================================================================

// Client sends questions to the answer backend and returns the decoded
// payload. Normalization happens separately so the shape rules stay
// testable without a network.
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client for the given backend base URL. An empty URL
// selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		timeout:    DefaultTimeout,
		httpClient: sharedHTTPClient,
		// Pace rapid re-asks; the UI already serializes requests, this
		// guards the REPL and retry paths.
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
}

// WithTimeout overrides the per-request deadline.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.timeout = d
	}
	return c
}

// WithHTTPClient substitutes the underlying HTTP client. Used in tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the backend base URL the client targets.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL retargets the client. Applied by config hot reload; the
// next request picks it up.
func (c *Client) SetBaseURL(baseURL string) {
	if baseURL == "" {
		return
	}
	c.mu.Lock()
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	c.mu.Unlock()
}

// =============================================================================
// ASK
// =============================================================================

// Ask posts a question to /api/ask and returns the decoded JSON payload.
// Failures come back as taxonomy errors (ErrTimeout, ErrNetworkUnavailable,
// ErrForbidden, *HTTPError, ErrMalformedBody); a canceled ctx passes
// through as context.Canceled.
func (c *Client) Ask(ctx context.Context, req AskRequest) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, classifyTransportError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+askPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		classified := classifyTransportError(err)
		log.Debug().Err(classified).Dur("elapsed", time.Since(start)).Msg("ask transport failure")
		return nil, classified
	}
	defer resp.Body.Close()

	// Read the body exactly once; every later branch works from this copy.
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, classifyTransportError(err)
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("ask response")

	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, snippet(data))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: snippet(data)}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return nil, fmt.Errorf("%w: content type %q", ErrMalformedBody, contentType)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return payload, nil
}

// snippet truncates a response body for error messages.
func snippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	const max = 200
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
