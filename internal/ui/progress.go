// ABOUTME: Step counters and TTY detection for sequential removal output
// ABOUTME: Formats "[current/total] item" lines for each uninstall in a loop
package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// FormatProgress renders a "[current/total] verb item" line
func FormatProgress(current, total int, verb, item string) string {
	return fmt.Sprintf("[%d/%d] %s %s", current, total, verb, item)
}

// IsTerminal checks if the writer is a terminal
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
