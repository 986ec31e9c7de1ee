// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant talks to the university answer backend.
//
// It owns the /api/ask transport, the error taxonomy for everything that
// can go wrong on the wire, and the normalizer that folds the backend's
// several historical response shapes into one canonical Result.
package assistant
