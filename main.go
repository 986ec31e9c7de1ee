// wuchat TUI - A terminal client for the Wichita State virtual assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/wuchat-tui/internal/assistant"
	"github.com/jeranaias/wuchat-tui/internal/chat"
	"github.com/jeranaias/wuchat-tui/internal/cli"
	"github.com/jeranaias/wuchat-tui/internal/config"
	"github.com/jeranaias/wuchat-tui/internal/logging"
	chatui "github.com/jeranaias/wuchat-tui/internal/ui/chat"
)

func main() {
	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.Fail(err)
	}

	switch cmd {
	case cli.CmdHelp:
		cli.Usage()
		return
	case cli.CmdVersion:
		cli.PrintVersion()
		return
	}

	setupLogging(cmd, args)

	switch cmd {
	case cli.CmdAsk:
		os.Exit(cli.HandleAsk(args))
	case cli.CmdChat:
		os.Exit(cli.HandleChat(args))
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(args))
	default:
		if err := runTUI(args); err != nil {
			cli.Fail(err)
		}
	}
}

// setupLogging routes logs away from the terminal the TUI owns.
func setupLogging(cmd cli.Command, args cli.Args) {
	if args.Quiet {
		logging.Disable()
		return
	}
	toFile := cmd == cli.CmdTUI
	if err := logging.Setup(config.Dir(), toFile, args.Verbose); err != nil {
		logging.Disable()
	}
}

func runTUI(args cli.Args) error {
	cfg := config.Global()

	baseURL := cfg.API.BaseURL
	if args.APIURL != "" {
		baseURL = args.APIURL
	}
	timeout := time.Duration(cfg.API.TimeoutSecs) * time.Second
	if args.Timeout > 0 {
		timeout = time.Duration(args.Timeout) * time.Second
	}
	client := assistant.NewClient(baseURL).WithTimeout(timeout)

	userName := args.Name
	if userName == "" {
		userName = cfg.Chat.UserName
	}
	engine := chat.NewEngine(client, chat.Options{
		HistoryWindow: cfg.Chat.HistoryWindow,
		SourceDomain:  cfg.API.SourceDomain,
		UserName:      userName,
	})

	// Config edits mid-session retarget the backend on the next request.
	// Flag overrides win, so skip the watcher when --api-url was given.
	if args.APIURL == "" {
		if watcher, err := config.Watch(func(c *config.Config) {
			client.SetBaseURL(c.API.BaseURL)
		}); err == nil {
			defer watcher.Close()
		}
	}

	p := tea.NewProgram(
		chatui.New(engine, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
