// ABOUTME: Complex rendering functions for headers, sections, and detail views
// ABOUTME: Provides consistent formatting for banners and per-step sections
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// HeaderMinWidth and HeaderMaxWidth bound the banner box width
	HeaderMinWidth = 42
	HeaderMaxWidth = 72
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 2).
			Align(lipgloss.Center)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorInfo)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	valueStyle = lipgloss.NewStyle()
)

// getHeaderWidth sizes the banner to the terminal, within bounds
func getHeaderWidth() int {
	width := TerminalWidth(os.Stdout) - 4
	if width < HeaderMinWidth {
		return HeaderMinWidth
	}
	if width > HeaderMaxWidth {
		return HeaderMaxWidth
	}
	return width
}

// RenderHeader returns a styled header box with the given title
func RenderHeader(title string) string {
	return headerStyle.Width(getHeaderWidth()).Render(title)
}

// RenderSection returns a styled section header with optional count
// Pass -1 for count to omit the count display
func RenderSection(title string, count int) string {
	if count >= 0 {
		return sectionStyle.Render(fmt.Sprintf("%s (%d)", title, count))
	}
	return sectionStyle.Render(title)
}

// RenderDetail returns a label: value pair with consistent formatting
func RenderDetail(label, value string) string {
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// RenderCounts returns "label n, label n" for the non-zero counts, in the given order
func RenderCounts(labels []string, counts map[string]int) string {
	var parts []string
	for _, label := range labels {
		if n := counts[label]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", label, n))
		}
	}
	if len(parts) == 0 {
		return "nothing to report"
	}
	return strings.Join(parts, ", ")
}

// Indent returns the string with the specified indentation level (2 spaces per level)
func Indent(s string, level int) string {
	prefix := strings.Repeat("  ", level)
	return prefix + s
}
