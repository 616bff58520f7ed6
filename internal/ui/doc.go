// ABOUTME: Package documentation for the ui package
// ABOUTME: Describes the purpose and usage patterns for terminal styling

// Package ui provides consistent terminal styling and output formatting
// for suitepurge using lipgloss.
//
// Usage:
//   - Use Print* functions for standalone messages: ui.PrintSuccess("Done!")
//   - Use Fprint for messages sent to a specific writer: ui.Fprint(w, ui.LevelWarning, "Skipped")
//   - Use inline helpers for composing output: fmt.Println(ui.Bold("Title:"), ui.Muted(detail))
//   - Respects NO_COLOR environment variable for accessibility
package ui
