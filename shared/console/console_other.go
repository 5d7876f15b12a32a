//go:build !windows

// Package console answers questions about the terminal the process writes to.
package console

import (
	"os"
	"strings"
)

// IsBlueBackground reports whether the terminal background color is blue,
// read from the COLORFGBG convention some terminals export.
func IsBlueBackground() bool {
	raw := strings.TrimSpace(os.Getenv("COLORFGBG"))
	if raw == "" {
		return false
	}

	// the last semicolon-separated field is the background color
	idx := strings.LastIndex(raw, ";")
	bg := strings.TrimSpace(raw[idx+1:])

	// ANSI 16-color backgrounds: 4 (blue) and 12 (bright blue).
	return bg == "4" || bg == "12"
}
