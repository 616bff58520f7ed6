// ABOUTME: Process-wide flags shared by commands and prompts
// ABOUTME: Set from the root command's persistent flags before any command runs
package config

var (
	// YesFlag answers every confirmation prompt with yes
	YesFlag bool

	// DryRun reports what would be removed without launching or deleting anything
	DryRun bool
)
