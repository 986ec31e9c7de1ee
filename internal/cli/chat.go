// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat REPL for plain terminals.
//
// Command: chat
// Short:   Interactive chat without the TUI
//
// Interactive commands:
//   /clear     Reset the conversation (new session identity)
//   /export    Write the transcript to wuchat-transcript.md
//   /quit      Exit
//   Ctrl+D     Exit
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/wuchat-tui/internal/chat"
	"github.com/jeranaias/wuchat-tui/internal/config"
	"github.com/jeranaias/wuchat-tui/internal/export"
	"github.com/jeranaias/wuchat-tui/internal/ui/styles"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(styles.Gold).Bold(true)
	brandStyle  = lipgloss.NewStyle().Foreground(styles.Wheat).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(styles.TextMuted)
	errStyle    = lipgloss.NewStyle().Foreground(styles.Rose)
)

// HandleChat runs the plain-terminal REPL.
func HandleChat(args Args) int {
	if !IsTTY() {
		fmt.Fprintln(os.Stderr, "wuchat: chat needs an interactive terminal, use `wuchat ask` for pipes")
		return 1
	}

	cfg := config.Global()
	engine := chat.NewEngine(buildClient(cfg, args), chat.Options{
		HistoryWindow: cfg.Chat.HistoryWindow,
		SourceDomain:  cfg.API.SourceDomain,
		UserName:      firstNonEmpty(args.Name, cfg.Chat.UserName),
	})

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	historyPath := filepath.Join(config.Dir(), "chat_history")
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer saveHistory(line, historyPath)

	// The engine seeded the welcome message; print it.
	printAssistant(engine.Messages()[len(engine.Messages())-1].Content)

	for {
		input, err := line.Prompt(promptStyle.Render("you> "))
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Println(mutedStyle.Render("bye 🌾"))
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "wuchat:", err)
			return 1
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch input {
		case "/quit", "/q":
			fmt.Println(mutedStyle.Render("bye 🌾"))
			return 0
		case "/clear", "/c":
			welcome := engine.Reset()
			fmt.Println(mutedStyle.Render("conversation cleared, new session started"))
			printAssistant(welcome.Content)
			continue
		case "/export":
			path := "wuchat-transcript.md"
			if err := export.Write(engine.Snapshot(), path, export.FormatMarkdown); err != nil {
				fmt.Println(errStyle.Render("export failed: " + err.Error()))
			} else {
				fmt.Println(mutedStyle.Render("exported to " + path))
			}
			continue
		}

		turn, err := engine.Submit(input)
		if err != nil {
			fmt.Println(errStyle.Render(err.Error()))
			continue
		}

		if turn.NeedsBackend {
			fmt.Println(mutedStyle.Render("thinking..."))
			reply := engine.Resolve(context.Background(), turn.Epoch, turn.User.Content)
			engine.MarkSent(turn.User.ID, turn.Epoch)
			if reply == nil {
				continue
			}
			printAssistant(reply.Content)
			if cfg.UI.ShowSources && reply.SourceURL != "" {
				fmt.Println(mutedStyle.Render("  source: " + reply.SourceURL))
			}
		} else {
			engine.MarkSent(turn.User.ID, turn.Epoch)
			printAssistant(turn.Reply.Content)
		}
	}
}

func printAssistant(text string) {
	width := TerminalWidth(100)
	fmt.Println(brandStyle.Render("wuchat> ") + wrap(text, width-8))
	fmt.Println()
}

// wrap breaks text at spaces to fit the terminal.
func wrap(text string, width int) string {
	if width < 20 {
		return text
	}
	words := strings.Fields(text)
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteString("\n        ")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}

func saveHistory(line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
