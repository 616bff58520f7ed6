// ABOUTME: Per-run Prometheus summary written in the node-exporter textfile format
// ABOUTME: Counts cleanup targets and uninstall invocations by status and records the run outcome
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "suitepurge"

// Run holds the collectors for a single removal run
type Run struct {
	registry   *prometheus.Registry
	targets    *prometheus.CounterVec
	uninstalls *prometheus.CounterVec
	outcome    *prometheus.GaugeVec
	finished   prometheus.Gauge
	duration   prometheus.Gauge
}

// New creates a Run with its own registry so nothing leaks into the default one
func New() *Run {
	r := &Run{
		registry: prometheus.NewRegistry(),
		targets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "targets_total",
			Help:      "Cleanup targets processed, by kind and result.",
		}, []string{"kind", "status"}),
		uninstalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uninstalls_total",
			Help:      "Uninstaller invocations, by phase and result.",
		}, []string{"phase", "status"}),
		outcome: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_outcome",
			Help:      "Set to 1 for the outcome of the last run.",
		}, []string{"outcome"}),
		finished: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall-clock duration of the last run.",
		}),
	}
	r.registry.MustRegister(r.targets, r.uninstalls, r.outcome, r.finished, r.duration)
	return r
}

// ObserveTarget counts one processed cleanup target
func (r *Run) ObserveTarget(kind, status string) {
	r.targets.WithLabelValues(kind, status).Inc()
}

// ObserveUninstall counts one uninstaller invocation
func (r *Run) ObserveUninstall(phase, status string) {
	r.uninstalls.WithLabelValues(phase, status).Inc()
}

// Finish records the outcome and timing of the run
func (r *Run) Finish(outcome string, started, finished time.Time) {
	r.outcome.WithLabelValues(outcome).Set(1)
	r.finished.Set(float64(finished.Unix()))
	r.duration.Set(finished.Sub(started).Seconds())
}

// WriteTextfile writes the collected metrics to path, creating its directory if needed
func (r *Run) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
