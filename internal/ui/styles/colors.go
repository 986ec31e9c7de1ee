// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the wuchat TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// BRAND COLORS
// =============================================================================

// Gold - Primary brand accent, user messages, highlights
var Gold = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFCD00"}

// GoldDeep - Darker gold for backgrounds
var GoldDeep = lipgloss.AdaptiveColor{Light: "#8B6508", Dark: "#7A6200"}

// Wheat - Secondary accent, assistant name, hints
var Wheat = lipgloss.AdaptiveColor{Light: "#92702A", Dark: "#E8D27C"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, failed messages
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Emerald - Delivered indicators, success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Amber - Degraded answers, low-confidence warnings
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1C1C1C"}

// SurfaceDim - Header and status bar background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#141414"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#333333"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E6E6E6"}

// TextSecondary - Labels, speaker names
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A3A3A3"}

// TextMuted - Timestamps, status glyphs, hints
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B6B6B"}
