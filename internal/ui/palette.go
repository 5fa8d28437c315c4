package ui

import (
	"fmt"
	"strconv"
)

// Fixed hex colors for the classic words and outcome categories. These match
// the studio's visual language: Fizz is always blue and Buzz always red, the
// FizzBuzz combination purple, everything else keyed off the palette below.
const (
	HexFizz        = "#3B82F6"
	HexBuzz        = "#EF4444"
	HexFizzBuzz    = "#8B5CF6"
	HexCombination = "#FF2ED9"
	HexNumber      = "#E5E7EB"
	HexNeutral     = "#6B7280"
)

// BrightPalette holds the candidate colors for user-defined rules: bright,
// saturated tones with no grays, so rule swatches stay readable on both the
// dark TUI theme and a light terminal.
var BrightPalette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
	"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
	"#F8C471", "#82E0AA", "#F1948A", "#85CEBC", "#D7BDE2",
}

// PickUnusedColor returns the first palette color not present in used,
// wrapping to the palette start when every color is taken. Deterministic,
// so the same editing sequence always yields the same swatches.
func PickUnusedColor(used map[string]bool) string {
	for _, c := range BrightPalette {
		if !used[c] {
			return c
		}
	}
	return BrightPalette[len(used)%len(BrightPalette)]
}

// HexForeground converts a "#RRGGBB" color to a truecolor ANSI foreground
// sequence. It returns the empty string when the active theme has colors
// disabled or the value is malformed, so callers can interpolate it
// unconditionally.
func HexForeground(hex string) string {
	if GetCurrentTheme().Reset == "" {
		return ""
	}
	if len(hex) != 7 || hex[0] != '#' {
		return ""
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", (v>>16)&0xFF, (v>>8)&0xFF, v&0xFF)
}
