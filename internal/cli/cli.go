// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for wuchat.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	APIURL  string
	Timeout int // seconds
	Name    string
	Quiet   bool
	Verbose bool
	JSON    bool

	// Command-specific
	Query string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `wuchat - terminal client for the Wichita State virtual assistant

Usage:
  wuchat                  Start the chat TUI (default)
  wuchat ask "question"   Ask a single question and exit
  wuchat chat             Interactive chat in plain terminal mode
  wuchat config           Show the effective configuration
  wuchat version          Show version information
  wuchat help             Show this help

Flags:
  --api-url URL     Backend base URL (overrides config)
  --timeout SECS    Request timeout in seconds
  --name NAME       Your name (skips the introduction)
  --json            Machine-readable output (ask)
  -q, --quiet       Suppress log output
  -v, --verbose     Debug log output

Environment:
  WUCHAT_API_URL, WUCHAT_TIMEOUT_SECS, WUCHAT_USER_NAME, WUCHAT_THEME

Config file:
  ~/.config/wuchat/config.toml
`

// Usage prints the help text.
func Usage() {
	fmt.Print(usageText)
}

// PrintVersion prints build information.
func PrintVersion() {
	fmt.Printf("wuchat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse interprets os.Args-style input (without the program name).
func Parse(argv []string) (Command, Args, error) {
	args := Args{Timeout: 0}
	cmd := CmdTUI

	var positional []string
	for i := 0; i < len(argv); i++ {
		a := argv[i]
		switch {
		case a == "--api-url":
			v, err := flagValue(argv, &i, a)
			if err != nil {
				return cmd, args, err
			}
			args.APIURL = v
		case strings.HasPrefix(a, "--api-url="):
			args.APIURL = strings.TrimPrefix(a, "--api-url=")
		case a == "--timeout":
			v, err := flagValue(argv, &i, a)
			if err != nil {
				return cmd, args, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return cmd, args, fmt.Errorf("--timeout wants a positive number of seconds, got %q", v)
			}
			args.Timeout = n
		case a == "--name":
			v, err := flagValue(argv, &i, a)
			if err != nil {
				return cmd, args, err
			}
			args.Name = v
		case a == "--json":
			args.JSON = true
		case a == "-q" || a == "--quiet":
			args.Quiet = true
		case a == "-v" || a == "--verbose":
			args.Verbose = true
		case a == "-h" || a == "--help":
			return CmdHelp, args, nil
		case strings.HasPrefix(a, "-"):
			return cmd, args, fmt.Errorf("unknown flag %q", a)
		default:
			positional = append(positional, a)
		}
	}

	if len(positional) == 0 {
		return CmdTUI, args, nil
	}

	switch positional[0] {
	case "ask":
		cmd = CmdAsk
		args.Query = strings.Join(positional[1:], " ")
		if strings.TrimSpace(args.Query) == "" {
			return cmd, args, fmt.Errorf("ask needs a question, e.g. wuchat ask \"when is the fall deadline?\"")
		}
	case "chat":
		cmd = CmdChat
	case "config":
		cmd = CmdConfig
	case "version":
		cmd = CmdVersion
	case "help":
		cmd = CmdHelp
	default:
		return cmd, args, fmt.Errorf("unknown command %q, try wuchat help", positional[0])
	}
	args.Raw = positional[1:]
	return cmd, args, nil
}

func flagValue(argv []string, i *int, name string) (string, error) {
	if *i+1 >= len(argv) {
		return "", fmt.Errorf("%s needs a value", name)
	}
	*i++
	return argv[*i], nil
}

// Fail prints an error to stderr and exits nonzero.
func Fail(err error) {
	fmt.Fprintln(os.Stderr, "wuchat:", err)
	os.Exit(1)
}
