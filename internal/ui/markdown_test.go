// ABOUTME: Tests for markdown rendering with glamour
// ABOUTME: Verifies rendering, raw passthrough, and error fallback
package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderMarkdown(t *testing.T) {
	t.Run("raw mode returns content unchanged", func(t *testing.T) {
		content := "# Hello\n\nSome **bold** text"
		got := RenderMarkdown(content, true)
		if got != content {
			t.Errorf("RenderMarkdown(raw=true) = %q, want %q", got, content)
		}
	})

	t.Run("renders markdown content", func(t *testing.T) {
		content := "# Hello\n\nSome **bold** text"
		got := RenderMarkdown(content, false)

		// Rendered output should differ from raw input
		if got == content {
			t.Error("RenderMarkdown(raw=false) returned unchanged content")
		}

		// Should contain the text (without markdown syntax)
		if len(got) == 0 {
			t.Error("RenderMarkdown(raw=false) returned empty string")
		}
	})

	t.Run("handles empty content", func(t *testing.T) {
		got := RenderMarkdown("", false)
		// Should not panic or error
		_ = got
	})

	t.Run("handles non-markdown content", func(t *testing.T) {
		content := "just plain text\nwith lines"
		got := RenderMarkdown(content, false)
		// Should not panic
		if len(got) == 0 {
			t.Error("RenderMarkdown returned empty for plain text")
		}
	})
}

func TestTerminalWidth(t *testing.T) {
	var buf bytes.Buffer
	if got := TerminalWidth(&buf); got != DefaultWidth {
		t.Errorf("TerminalWidth(buffer) = %d, want %d", got, DefaultWidth)
	}
}

func TestWrap(t *testing.T) {
	t.Run("short lines are unchanged", func(t *testing.T) {
		if got := Wrap("short line", 80); got != "short line" {
			t.Errorf("Wrap() = %q", got)
		}
	})

	t.Run("long lines are broken at the width", func(t *testing.T) {
		long := strings.Repeat("word ", 30)
		got := Wrap(long, 20)
		for _, line := range strings.Split(got, "\n") {
			if lipgloss.Width(line) > 20 {
				t.Errorf("line %q exceeds width 20", line)
			}
		}
		if !strings.Contains(got, "\n") {
			t.Error("expected wrapped output to span several lines")
		}
	})

	t.Run("zero width disables wrapping", func(t *testing.T) {
		long := strings.Repeat("x", 200)
		if got := Wrap(long, 0); got != long {
			t.Error("Wrap(0) should return input unchanged")
		}
	})
}
