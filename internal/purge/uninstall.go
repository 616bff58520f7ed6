// ABOUTME: Uninstaller invocation for registry packages, the vendor tool and secondary removers
// ABOUTME: Every invocation blocks; a missing command or launch error counts as a failure
package purge

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/suitepurge/suitepurge/internal/launcher"
	"github.com/suitepurge/suitepurge/internal/manifest"
	"github.com/suitepurge/suitepurge/internal/ui"
)

// UninstallStatus is the result of one uninstaller invocation
type UninstallStatus string

const (
	UninstallDone           UninstallStatus = "uninstalled"
	UninstallExitCode       UninstallStatus = "exit-code"
	UninstallMissingCommand UninstallStatus = "missing-command"
	UninstallLaunchFailed   UninstallStatus = "launch-failed"
	UninstallNotFound       UninstallStatus = "not-found"
	UninstallWouldRun       UninstallStatus = "would-uninstall"
)

// Uninstall phases, used as metric labels
const (
	PhaseTool      = "tool"
	PhasePackages  = "packages"
	PhaseSecondary = "secondary"
	PhaseResidual  = "residual"
)

// ErrNoUninstallCommand is recorded for packages without an uninstall string
var ErrNoUninstallCommand = errors.New("no uninstall command registered")

// UninstallResult records one uninstaller invocation
type UninstallResult struct {
	Name     string
	Command  string
	Status   UninstallStatus
	ExitCode int
	Err      error
}

// Failed reports whether the uninstaller could not be run at all.
// A non-zero exit code is a warning, not a failure.
func (r UninstallResult) Failed() bool {
	return r.Status == UninstallMissingCommand || r.Status == UninstallLaunchFailed
}

// uninstallAll runs every package's uninstaller in order and reports whether any failed.
// Failures never stop the loop.
func (p *Purger) uninstallAll(ctx context.Context, phase string, packages []Package) ([]UninstallResult, bool) {
	results := make([]UninstallResult, 0, len(packages))
	failed := false
	for i, pkg := range packages {
		r := p.uninstallPackage(ctx, i+1, len(packages), pkg)
		p.metrics().ObserveUninstall(phase, string(r.Status))
		if r.Failed() {
			failed = true
		}
		results = append(results, r)
	}
	return results, failed
}

func (p *Purger) uninstallPackage(ctx context.Context, n, total int, pkg Package) UninstallResult {
	r := UninstallResult{Name: pkg.DisplayName, ExitCode: -1}
	p.Log.Info("%s", ui.FormatProgress(n, total, "Uninstalling", pkg.DisplayName+"..."))

	cmd, ok := silentCommand(pkg.UninstallString, p.Manifest.SilentArgs)
	if !ok {
		r.Status = UninstallMissingCommand
		r.Err = ErrNoUninstallCommand
		p.Log.Error("Failed to uninstall %s: %v", pkg.DisplayName, r.Err)
		return r
	}
	r.Command = cmd

	if p.DryRun {
		r.Status = UninstallWouldRun
		p.Log.Info("Would run: %s", cmd)
		return r
	}

	code, err := p.Runner.RunShell(ctx, cmd)
	r.ExitCode = code
	switch {
	case err != nil:
		r.Status = UninstallLaunchFailed
		r.Err = err
		p.Log.Error("Failed to uninstall %s: %v", pkg.DisplayName, err)
	case !launcher.Succeeded(code):
		r.Status = UninstallExitCode
		p.Log.Warn("Uninstaller for %s exited with code %d", pkg.DisplayName, code)
	default:
		r.Status = UninstallDone
		p.Log.Success("Successfully uninstalled %s", pkg.DisplayName)
	}
	return r
}

// runTool launches a standalone remover if it exists. Problems are reported, never fatal.
func (p *Purger) runTool(ctx context.Context, phase, label, path string, args []string) UninstallResult {
	r := UninstallResult{Name: label, Command: path, ExitCode: -1}
	defer func() { p.metrics().ObserveUninstall(phase, string(r.Status)) }()

	if path == "" || !fileExists(path) {
		r.Status = UninstallNotFound
		p.Log.Warn("%s not found, skipping", label)
		return r
	}

	if p.DryRun {
		r.Status = UninstallWouldRun
		p.Log.Info("Would run %s: %s %s", label, path, strings.Join(args, " "))
		return r
	}

	p.Log.Info("Running %s...", label)
	code, err := p.Runner.Run(ctx, path, args...)
	r.ExitCode = code
	switch {
	case err != nil:
		r.Status = UninstallLaunchFailed
		r.Err = err
		p.Log.Error("Failed to run %s: %v", label, err)
	case !launcher.Succeeded(code):
		r.Status = UninstallExitCode
		p.Log.Warn("%s exited with code %d", label, code)
	default:
		r.Status = UninstallDone
		p.Log.Success("%s completed", label)
	}
	return r
}

// locateTool finds the vendor uninstall utility from its well-known paths,
// then from the install location recorded in the registry
func (p *Purger) locateTool(vars manifest.Vars, reg Registry) string {
	tool := p.Manifest.UninstallTool
	for _, candidate := range tool.Paths {
		path, ok := vars.Expand(candidate)
		if ok && fileExists(path) {
			return path
		}
	}

	hint := tool.RegistryHint
	if hint == nil {
		return ""
	}
	key, ok := vars.Expand(hint.Key)
	if !ok {
		return ""
	}
	location, err := reg.StringValue(key, hint.Value)
	if err != nil || strings.TrimSpace(location) == "" {
		return ""
	}

	path := filepath.Join(strings.TrimSpace(location), hint.Executable)
	if !fileExists(path) {
		return ""
	}
	return path
}
