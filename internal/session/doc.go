// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides ephemeral session and user identity.
//
// Identity lives only for the lifetime of the process and is regenerated
// whenever the conversation is reset. Nothing here is ever persisted.
package session
