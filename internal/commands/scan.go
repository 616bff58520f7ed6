// ABOUTME: Scan command listing the vendor packages a removal run would uninstall
// ABOUTME: Read-only; never prompts, launches or deletes
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/suitepurge/suitepurge/internal/manifest"
	"github.com/suitepurge/suitepurge/internal/purge"
	"github.com/suitepurge/suitepurge/internal/runlog"
	"github.com/suitepurge/suitepurge/internal/ui"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the installed vendor packages",
	Long: `Detect the signed-in user and list the installed packages that a removal
run would uninstall, with their uninstall commands. Nothing is changed.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

// consoleLog mirrors progress to stdout without writing a log file
func consoleLog() *runlog.Log {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return runlog.New(logger, os.Stdout)
}

func runScan(cmd *cobra.Command, args []string) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	p := purge.New(m, consoleLog())
	_, packages, err := p.Scan()
	if err != nil {
		return err
	}

	if len(packages) == 0 {
		ui.PrintSuccess(fmt.Sprintf("No %s packages installed", m.Vendor))
		return nil
	}

	fmt.Println()
	for _, pkg := range packages {
		fmt.Printf("  %s %s\n", ui.Info(ui.SymbolBullet), ui.Bold(pkg.Label()))
		fmt.Println(ui.Indent(ui.RenderDetail("Publisher", pkg.Publisher), 2))
		command := pkg.UninstallString
		if command == "" {
			command = ui.Error("none registered")
		}
		fmt.Println(ui.Indent(ui.RenderDetail("Uninstall", command), 2))
		fmt.Println(ui.Indent(ui.RenderDetail("Source", ui.Muted(pkg.Source)), 2))
	}
	return nil
}
