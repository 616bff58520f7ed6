// ABOUTME: Targets command showing every folder and registry key a run would delete
// ABOUTME: Expands the manifest for the signed-in user and marks what exists
package commands

import (
	"fmt"

	"github.com/suitepurge/suitepurge/internal/manifest"
	"github.com/suitepurge/suitepurge/internal/purge"
	"github.com/suitepurge/suitepurge/internal/ui"
	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Show the folders and registry keys a run would delete",
	Args:  cobra.NoArgs,
	RunE:  runTargets,
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}

func runTargets(cmd *cobra.Command, args []string) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	states := purge.New(m, consoleLog()).Inspect()

	present := 0
	var lastKind manifest.Kind
	for _, s := range states {
		if s.Target.Kind != lastKind {
			fmt.Println()
			fmt.Println(ui.RenderSection(kindTitle(s.Target.Kind), -1))
			lastKind = s.Target.Kind
		}
		fmt.Println(formatTarget(s))
		if s.Exists {
			present++
		}
	}

	fmt.Println()
	ui.PrintInfo(fmt.Sprintf("%d of %d targets present", present, len(states)))
	return nil
}

func kindTitle(k manifest.Kind) string {
	if k == manifest.KindRegistry {
		return "Registry keys"
	}
	return "Folders"
}

func formatTarget(s purge.TargetState) string {
	switch {
	case s.Err != nil:
		return fmt.Sprintf("  %s %s %s", ui.Error(ui.SymbolError), s.Target.Label, ui.Muted(s.Err.Error()))
	case s.Resolved == "":
		return fmt.Sprintf("  %s %s %s", ui.Muted(ui.SymbolBullet), s.Target.Label, ui.Muted("(not available for this user)"))
	case s.Exists:
		return fmt.Sprintf("  %s %s %s %s", ui.Warning(ui.SymbolWarning), s.Target.Label, ui.SymbolArrow, s.Resolved)
	default:
		return fmt.Sprintf("  %s %s %s", ui.Success(ui.SymbolSuccess), s.Target.Label, ui.Muted(s.Resolved))
	}
}
