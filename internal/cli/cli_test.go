// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"no args is TUI", nil, CmdTUI},
		{"ask", []string{"ask", "library hours"}, CmdAsk},
		{"chat", []string{"chat"}, CmdChat},
		{"config", []string{"config"}, CmdConfig},
		{"version", []string{"version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"help flag", []string{"--help"}, CmdHelp},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, _, err := Parse(tc.argv)
			if err != nil {
				t.Fatalf("Parse(%v) error = %v", tc.argv, err)
			}
			if cmd != tc.want {
				t.Errorf("Parse(%v) = %v, want %v", tc.argv, cmd, tc.want)
			}
		})
	}
}

func TestParse_AskJoinsQuery(t *testing.T) {
	_, args, err := Parse([]string{"ask", "when", "is", "the", "deadline"})
	if err != nil {
		t.Fatal(err)
	}
	if args.Query != "when is the deadline" {
		t.Errorf("Query = %q", args.Query)
	}
}

func TestParse_AskRequiresQuery(t *testing.T) {
	if _, _, err := Parse([]string{"ask"}); err == nil {
		t.Error("ask without a question should error")
	}
}

func TestParse_Flags(t *testing.T) {
	cmd, args, err := Parse([]string{"--api-url", "https://ask.example.edu", "--timeout", "30", "--name", "Sam", "--json", "-q", "ask", "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if cmd != CmdAsk {
		t.Errorf("cmd = %v, want ask", cmd)
	}
	if args.APIURL != "https://ask.example.edu" {
		t.Errorf("APIURL = %q", args.APIURL)
	}
	if args.Timeout != 30 {
		t.Errorf("Timeout = %d", args.Timeout)
	}
	if args.Name != "Sam" {
		t.Errorf("Name = %q", args.Name)
	}
	if !args.JSON || !args.Quiet {
		t.Error("JSON and Quiet flags should be set")
	}
}

func TestParse_EqualsForm(t *testing.T) {
	_, args, err := Parse([]string{"--api-url=https://eq.example.edu"})
	if err != nil {
		t.Fatal(err)
	}
	if args.APIURL != "https://eq.example.edu" {
		t.Errorf("APIURL = %q", args.APIURL)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"unknown flag", []string{"--frobnicate"}},
		{"unknown command", []string{"dance"}},
		{"missing flag value", []string{"--api-url"}},
		{"bad timeout", []string{"--timeout", "soon"}},
		{"negative timeout", []string{"--timeout", "-5"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := Parse(tc.argv); err == nil {
				t.Errorf("Parse(%v) should error", tc.argv)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	out := wrap("one two three four five six seven eight nine ten", 20)
	for _, line := range splitLines(out) {
		if len(line) > 28 {
			t.Errorf("wrapped line too long: %q", line)
		}
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
