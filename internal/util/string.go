// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"time"

	"github.com/mattn/go-runewidth"
)

// Truncate shortens s to at most width terminal cells, appending an
// ellipsis when anything was cut. Width-aware, so wide CJK runes and
// emoji count as two cells.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to exactly width terminal cells, truncating
// if it is already wider. Used for column layout in the status bar.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	return runewidth.FillRight(s, width)
}

// TimeAgo renders a timestamp as a compact relative duration for message
// headers: "now", "2m", "3h", "5d".
func TimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return IntToString(int(d.Minutes())) + "m"
	case d < 24*time.Hour:
		return IntToString(int(d.Hours())) + "h"
	default:
		return IntToString(int(d.Hours()/24)) + "d"
	}
}

// IntToString renders an int without pulling fmt into hot paths.
func IntToString(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
