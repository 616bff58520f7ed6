// ABOUTME: Colour palette, status symbols and NO_COLOR handling for console output
// ABOUTME: Green success, yellow skip or warning, red failure, cyan progress
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	ColorSuccess = lipgloss.Color("#22c55e")
	ColorError   = lipgloss.Color("#ef4444")
	ColorWarning = lipgloss.Color("#eab308")
	ColorInfo    = lipgloss.Color("#06b6d4")
	ColorMuted   = lipgloss.Color("#6b7280")
	ColorAccent  = lipgloss.Color("#8b5cf6")
)

var (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolArrow   = "→"
	SymbolBullet  = "•"
)

func init() {
	initColorProfile()
}

func initColorProfile() {
	if plainOutput(os.Getenv) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// plainOutput reports whether colour must be disabled: NO_COLOR (https://no-color.org/)
// or a dumb terminal
func plainOutput(getenv func(string) string) bool {
	return getenv("NO_COLOR") != "" || getenv("TERM") == "dumb"
}
