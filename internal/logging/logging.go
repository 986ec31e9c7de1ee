// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide structured logger.
//
// The TUI owns the terminal, so log output goes to a file under the
// config directory rather than stderr. One-shot CLI commands may log to
// stderr instead.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFileName = "wuchat.log"

// Setup routes the global logger. With toFile set, output goes to
// wuchat.log inside dir (created if needed); otherwise to stderr with a
// console writer. verbose enables debug level.
func Setup(dir string, toFile, verbose bool) error {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	var w io.Writer
	if toFile {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		w = f
	} else {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}

// Disable silences all logging. Used by tests and by --quiet.
func Disable() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}
