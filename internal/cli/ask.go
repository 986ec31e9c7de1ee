// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command.
//
// Command: ask
// Short:   Ask a single question and print the answer
//
// Examples:
//   wuchat ask "when is the fall deadline?"
//   wuchat ask --json "library hours" | jq .answer.text
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/wuchat-tui/internal/assistant"
	"github.com/jeranaias/wuchat-tui/internal/config"
	"github.com/jeranaias/wuchat-tui/internal/session"
)

// HandleAsk runs the ask command. Exit code 0 for an answer, 1 for an
// error result.
func HandleAsk(args Args) int {
	cfg := config.Global()
	client := buildClient(cfg, args)

	id := session.New()
	req := assistant.AskRequest{
		Q:         args.Query,
		UserID:    id.UserID,
		SessionID: id.SessionID,
	}
	if args.Name != "" {
		req.Context.UserName = args.Name
	}

	res := resolve(context.Background(), client, cfg, req)

	if args.JSON {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			Fail(err)
		}
		fmt.Println(string(out))
	} else {
		fmt.Println(res.Answer.Text)
		if res.OK() && res.Source.URL != "" {
			fmt.Println("\nSource:", res.Source.URL)
		}
		if !res.OK() && res.ErrorMessage != "" {
			fmt.Fprintln(os.Stderr, "wuchat:", res.ErrorMessage)
		}
	}

	if res.OK() {
		return 0
	}
	return 1
}

// buildClient applies flag overrides on top of the config.
func buildClient(cfg *config.Config, args Args) *assistant.Client {
	baseURL := cfg.API.BaseURL
	if args.APIURL != "" {
		baseURL = args.APIURL
	}
	timeout := time.Duration(cfg.API.TimeoutSecs) * time.Second
	if args.Timeout > 0 {
		timeout = time.Duration(args.Timeout) * time.Second
	}
	return assistant.NewClient(baseURL).WithTimeout(timeout)
}

// resolve asks and normalizes, folding every failure into the canonical
// error result.
func resolve(ctx context.Context, client *assistant.Client, cfg *config.Config, req assistant.AskRequest) *assistant.Result {
	payload, err := client.Ask(ctx, req)
	if err != nil {
		return assistant.FallbackResult(err)
	}
	res, err := assistant.Normalize(payload, cfg.API.SourceDomain)
	if err != nil {
		return assistant.FallbackResult(err)
	}
	return res
}
