// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation engine: onboarding, message
// lifecycle, and dispatch to the answer backend.
//
// The engine is UI-agnostic. The TUI, the REPL, and the one-shot command
// all drive the same state machine.
package chat
