// ABOUTME: Root command and CLI initialization for suitepurge
// ABOUTME: Running the root command performs the full removal sequence
package commands

import (
	"context"

	"github.com/suitepurge/suitepurge/internal/config"
	"github.com/suitepurge/suitepurge/internal/ui"
	"github.com/spf13/cobra"
)

var (
	manifestPath string
	logDir       string
	metricsFile  string
)

var rootCmd = &cobra.Command{
	Use:   "suitepurge",
	Short: "Remove a vendor software suite and its leftovers before reinstalling",
	Long: `suitepurge removes every installed package of a vendor suite, then deletes
the files, caches and registry keys the uninstallers leave behind.

The run is a fixed sequence:
  1. Detect the signed-in user
  2. Run the vendor uninstall tool, if installed
  3. List the vendor's installed packages and ask for confirmation
  4. Uninstall each package silently
  5. Run the secondary removers and show the manual step
  6. Clear the user's temp folder and the licensing cache
  7. Delete the known folders and registry keys
  8. Remove the residual background service

If any package fails to uninstall, file and registry cleanup is skipped.
Every step is written to a timestamped log file.`,
	Example: `  # Preview what would be removed
  suitepurge --dry-run

  # Remove everything without the confirmation prompt
  suitepurge --yes

  # Use a custom removal manifest
  suitepurge --config acme.yaml`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPurge,
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version for the root command
func SetVersion(version string) {
	rootCmd.Version = version
}

func init() {
	// Set up custom help template with lipgloss styling
	ui.SetupHelpTemplate(rootCmd)

	rootCmd.PersistentFlags().StringVar(&manifestPath, "config", config.ManifestPath(), "Removal manifest file (default: built-in)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", config.MustLogDir(), "Directory for run logs")
	rootCmd.PersistentFlags().BoolVarP(&config.YesFlag, "yes", "y", false, "Answer yes to the confirmation prompt")

	rootCmd.Flags().BoolVar(&config.DryRun, "dry-run", false, "Check every step without uninstalling or deleting anything")
	rootCmd.Flags().StringVar(&metricsFile, "metrics-file", "", `Prometheus textfile for the run summary (default: <log-dir>/suitepurge.prom, "-" disables)`)
}
