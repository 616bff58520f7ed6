// ABOUTME: Removal run wiring: manifest, run log, metrics and interrupt handling
// ABOUTME: Maps the run outcome onto the exit status
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/suitepurge/suitepurge/internal/config"
	"github.com/suitepurge/suitepurge/internal/manifest"
	"github.com/suitepurge/suitepurge/internal/metrics"
	"github.com/suitepurge/suitepurge/internal/purge"
	"github.com/suitepurge/suitepurge/internal/runlog"
	"github.com/suitepurge/suitepurge/internal/session"
	"github.com/suitepurge/suitepurge/internal/ui"
	"github.com/spf13/cobra"
)

// ErrNotWindows is returned for a destructive run on another operating system
var ErrNotWindows = errors.New("suitepurge only removes software on Windows; use --dry-run to preview elsewhere")

func runPurge(cmd *cobra.Command, args []string) error {
	if runtime.GOOS != "windows" && !config.DryRun {
		return ErrNotWindows
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	started := time.Now()
	log, err := runlog.Open(logDir, started, os.Stdout)
	if err != nil {
		return err
	}
	defer log.Close()

	fmt.Println(ui.RenderHeader(m.Vendor + " removal"))
	log.Info("Started on %s", session.MachineSummary())
	if config.DryRun {
		log.Warn("Dry run: nothing will be uninstalled or deleted")
	}

	run := metrics.New()
	p := purge.New(m, log)
	p.DryRun = config.DryRun
	p.Metrics = run

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	report, err := p.Run(ctx)

	outcome := "error"
	if report != nil && report.Outcome != "" {
		outcome = string(report.Outcome)
	}
	if errors.Is(err, context.Canceled) {
		outcome = "interrupted"
		log.Error("Interrupted")
		err = fmt.Errorf("interrupted: %w", err)
	} else if err != nil && !errors.Is(err, purge.ErrUninstallFailed) {
		log.Error("%v", err)
	}

	writeMetrics(log, run, outcome, started)
	return err
}

// writeMetrics saves the run summary; a failure here never changes the run's result
func writeMetrics(log *runlog.Log, run *metrics.Run, outcome string, started time.Time) {
	path := metricsFile
	if path == "-" {
		return
	}
	if path == "" {
		path = config.MetricsPath(logDir)
	}

	run.Finish(outcome, started, time.Now())
	if err := run.WriteTextfile(path); err != nil {
		log.Warn("Could not write run metrics: %v", err)
	}
}
