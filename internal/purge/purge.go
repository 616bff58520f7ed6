// ABOUTME: Removal run that uninstalls a vendor suite and deletes its leftovers
// ABOUTME: Executes the fixed step sequence with three early exits and per-item results
package purge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/suitepurge/suitepurge/internal/launcher"
	"github.com/suitepurge/suitepurge/internal/manifest"
	"github.com/suitepurge/suitepurge/internal/runlog"
	"github.com/suitepurge/suitepurge/internal/session"
	"github.com/suitepurge/suitepurge/internal/ui"
	"github.com/suitepurge/suitepurge/internal/winreg"
)

// Registry is the part of the Windows registry a run reads and deletes from
type Registry interface {
	UninstallEntries() ([]winreg.Entry, error)
	KeyExists(key string) (bool, error)
	DeleteTree(key string) error
	StringValue(key, name string) (string, error)
}

// Runner launches uninstallers and blocks until they exit
type Runner interface {
	Run(ctx context.Context, exe string, args ...string) (int, error)
	RunShell(ctx context.Context, line string) (int, error)
}

// Recorder receives a count for every target and uninstaller processed
type Recorder interface {
	ObserveTarget(kind, status string)
	ObserveUninstall(phase, status string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveTarget(string, string)    {}
func (nopRecorder) ObserveUninstall(string, string) {}

// Outcome is where a run stopped
type Outcome string

const (
	OutcomeCompleted    Outcome = "completed"
	OutcomeNothingFound Outcome = "nothing-found"
	OutcomeCancelled    Outcome = "cancelled"
	OutcomeBlocked      Outcome = "blocked"
)

// ErrUninstallFailed is returned when a package could not be uninstalled,
// which stops file and registry cleanup
var ErrUninstallFailed = errors.New("one or more packages could not be uninstalled; file and registry cleanup was skipped")

// Report collects everything a run did
type Report struct {
	Outcome    Outcome
	User       session.User
	Packages   []Package
	Uninstalls []UninstallResult // primary package loop
	Tools      []UninstallResult // vendor uninstall tool and secondary removers
	Residual   []UninstallResult
	Temp       TempResult
	Licensing  int // licensing cache files removed
	Summary    Summary
	LogPath    string
}

// Purger runs the removal sequence. Collaborators are fields so tests can replace them.
type Purger struct {
	Manifest     *manifest.Manifest
	Log          *runlog.Log
	Vars         manifest.Vars
	OpenRegistry func(userSID string) Registry
	Runner       Runner
	Confirm      func(prompt string) (bool, error)
	ResolveUser  func() (session.User, error)
	Metrics      Recorder
	DryRun       bool
	Raw          bool // print the manual step as plain markdown
}

// New creates a Purger wired to the real registry, launcher, prompt and session lookups
func New(m *manifest.Manifest, log *runlog.Log) *Purger {
	return &Purger{
		Manifest:     m,
		Log:          log,
		Vars:         manifest.MachineVars(),
		OpenRegistry: func(userSID string) Registry { return winreg.New(userSID) },
		Runner:       launcher.New(),
		Confirm:      ui.Confirm,
		ResolveUser:  session.ResolveUser,
		Raw:          !ui.IsTerminal(os.Stdout),
	}
}

func (p *Purger) metrics() Recorder {
	if p.Metrics == nil {
		return nopRecorder{}
	}
	return p.Metrics
}

// Run executes the full removal sequence.
// It returns ErrUninstallFailed when the cleanup gate stops the run.
func (p *Purger) Run(ctx context.Context) (*Report, error) {
	report := &Report{LogPath: p.Log.Path()}

	user, vars := p.resolveUser()
	report.User = user
	reg := p.OpenRegistry(user.SID)

	p.runUninstallTool(ctx, vars, reg, report)
	if err := ctx.Err(); err != nil {
		return report, err
	}

	packages, err := p.scan(reg)
	if err != nil {
		return report, err
	}
	report.Packages = packages

	if len(packages) == 0 {
		p.Log.Warn("No %s packages found. Nothing to uninstall", p.Manifest.Vendor)
		report.Outcome = OutcomeNothingFound
		return report, nil
	}

	if !p.DryRun {
		ok, err := p.Confirm(fmt.Sprintf("Uninstall %d %s package(s) and delete their leftover files and registry keys?",
			len(packages), p.Manifest.Vendor))
		if err != nil {
			return report, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			p.Log.Warn("Cancelled by user. Nothing was changed")
			report.Outcome = OutcomeCancelled
			return report, nil
		}
		p.Log.Record("Removal confirmed")
	}

	p.Log.Section("Uninstalling packages")
	results, failed := p.uninstallAll(ctx, PhasePackages, packages)
	report.Uninstalls = results
	if err := ctx.Err(); err != nil {
		return report, err
	}

	p.runSecondary(ctx, vars, report)
	p.showManualStep()

	if failed {
		p.Log.Section("Cleanup")
		p.Log.Warn("One or more packages could not be uninstalled. Skipping temp, licensing, folder and registry cleanup")
		report.Outcome = OutcomeBlocked
	} else {
		p.clearTemp(vars, report)
		p.clearLicensing(vars, report)
		p.deleteTargets(vars, reg, report)
	}

	p.removeResidual(ctx, reg, report)
	if err := ctx.Err(); err != nil {
		return report, err
	}

	if report.Outcome == OutcomeBlocked {
		p.Log.Error("Removal incomplete. Resolve the failed uninstalls above and run again")
		p.logPath()
		return report, ErrUninstallFailed
	}

	report.Outcome = OutcomeCompleted
	p.banner(report)
	return report, nil
}

// Scan resolves the user and lists the vendor packages without changing anything
func (p *Purger) Scan() (session.User, []Package, error) {
	user, _ := p.resolveUser()
	packages, err := p.scan(p.OpenRegistry(user.SID))
	return user, packages, err
}

func (p *Purger) resolveUser() (session.User, manifest.Vars) {
	p.Log.Section("Detecting user")
	user, err := p.ResolveUser()
	if err != nil {
		p.Log.Warn("Could not determine the signed-in user: %v", err)
		p.Log.Warn("Per-user folders and registry keys will be skipped")
		return session.User{}, p.Vars.WithUser("", "", "")
	}

	p.Log.Info("Current user: %s (found via %s)", user.Qualified(), user.Source)
	if user.ProfileDir == "" {
		p.Log.Warn("No profile folder found for %s. Per-user folders will be skipped", user.Name)
	}
	return user, p.Vars.WithUser(user.Name, user.SID, user.ProfileDir)
}

func (p *Purger) runUninstallTool(ctx context.Context, vars manifest.Vars, reg Registry, report *Report) {
	tool := p.Manifest.UninstallTool
	if len(tool.Paths) == 0 && tool.RegistryHint == nil {
		return
	}

	label := tool.Label
	if label == "" {
		label = p.Manifest.Vendor + " uninstall tool"
	}
	p.Log.Section(label)

	path := p.locateTool(vars, reg)
	if path == "" {
		p.Log.Warn("%s not found, skipping. Packages will be uninstalled individually", label)
		p.metrics().ObserveUninstall(PhaseTool, string(UninstallNotFound))
		report.Tools = append(report.Tools, UninstallResult{Name: label, Status: UninstallNotFound, ExitCode: -1})
		return
	}
	report.Tools = append(report.Tools, p.runTool(ctx, PhaseTool, label, path, nil))
}

func (p *Purger) scan(reg Registry) ([]Package, error) {
	p.Log.Section("Scanning installed programs")
	entries, err := reg.UninstallEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to read installed programs: %w", err)
	}

	packages := vendorPackages(entries, p.Manifest)
	if len(packages) > 0 {
		p.Log.Info("Found %d %s package(s):", len(packages), p.Manifest.Vendor)
		for _, pkg := range packages {
			p.Log.Plain("  - %s", pkg.Label())
		}
	}
	return packages, nil
}

func (p *Purger) runSecondary(ctx context.Context, vars manifest.Vars, report *Report) {
	if len(p.Manifest.Secondary) == 0 {
		return
	}
	p.Log.Section("Secondary uninstallers")
	for _, r := range p.Manifest.Secondary {
		path, ok := vars.Expand(r.Path)
		if !ok {
			path = ""
		}
		report.Tools = append(report.Tools, p.runTool(ctx, PhaseSecondary, r.Label, path, r.Args))
	}
}

func (p *Purger) showManualStep() {
	text := strings.TrimSpace(p.Manifest.ManualStep)
	if text == "" {
		return
	}
	p.Log.Section("Manual step")
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			p.Log.Record("%s", line)
		}
	}
	p.Log.Console(ui.RenderMarkdown(text, p.Raw))
}

func (p *Purger) clearTemp(vars manifest.Vars, report *Report) {
	if p.Manifest.TempDir == "" {
		return
	}
	p.Log.Section("Clearing temp directory")

	dir, ok := vars.Expand(p.Manifest.TempDir)
	if !ok {
		p.Log.Warn("Temp directory not found: no user profile")
		return
	}
	if found, _ := dirExists(dir); !found {
		p.Log.Warn("Temp directory not found: %s", dir)
		return
	}

	if p.DryRun {
		children, _ := os.ReadDir(dir)
		report.Temp = TempResult{Found: true}
		p.Log.Info("Would clear %d item(s) from %s", len(children), dir)
		return
	}

	result, err := clearDir(dir)
	report.Temp = result
	if err != nil {
		p.Log.Error("Failed to clear %s: %v", dir, err)
		return
	}
	p.Log.Success("%s", describeTemp(result))
}

func (p *Purger) clearLicensing(vars manifest.Vars, report *Report) {
	cache := p.Manifest.LicensingCache
	if cache.Dir == "" {
		return
	}
	p.Log.Section("Clearing licensing cache")

	dir, ok := vars.Expand(cache.Dir)
	if !ok {
		p.Log.Warn("Licensing cache folder not found: %s", cache.Dir)
		return
	}
	if found, _ := dirExists(dir); !found {
		p.Log.Warn("Licensing cache folder not found: %s", dir)
		return
	}

	if p.DryRun {
		n, err := countPrefixed(dir, cache.Prefix)
		if err != nil {
			p.Log.Error("Failed to read %s: %v", dir, err)
			return
		}
		p.Log.Info("Would delete %d %s* file(s) from %s", n, cache.Prefix, dir)
		return
	}

	removed, failed, err := removePrefixed(dir, cache.Prefix)
	report.Licensing = removed
	switch {
	case err != nil:
		p.Log.Error("Failed to read %s: %v", dir, err)
	case removed == 0 && failed == 0:
		p.Log.Warn("No %s* files found in %s", cache.Prefix, dir)
	default:
		p.Log.Success("Deleted %d %s* file(s) from %s", removed, cache.Prefix, dir)
	}
	if failed > 0 {
		p.Log.Error("%d licensing file(s) could not be deleted", failed)
	}
}

func (p *Purger) deleteTargets(vars manifest.Vars, reg Registry, report *Report) {
	if len(p.Manifest.Directories) > 0 {
		p.Log.Section("Deleting folders")
		for _, t := range p.Manifest.Directories {
			report.Summary.Add(p.checkThenDelete(t, vars, dirExists, forceRemoveAll))
		}
	}
	if len(p.Manifest.RegistryKeys) > 0 {
		p.Log.Section("Deleting registry keys")
		for _, t := range p.Manifest.RegistryKeys {
			report.Summary.Add(p.checkThenDelete(t, vars, reg.KeyExists, reg.DeleteTree))
		}
	}
}

func (p *Purger) removeResidual(ctx context.Context, reg Registry, report *Report) {
	name := strings.TrimSpace(p.Manifest.ResidualService)
	if name == "" {
		return
	}
	p.Log.Section("Removing " + name)

	entries, err := reg.UninstallEntries()
	if err != nil {
		p.Log.Error("Could not re-scan installed programs: %v", err)
		return
	}

	packages := residualPackages(entries, name)
	if len(packages) == 0 {
		p.Log.Warn("%s not found, skipping", name)
		return
	}

	results, failed := p.uninstallAll(ctx, PhaseResidual, packages)
	report.Residual = results
	if failed {
		p.Log.Warn("%s could not be removed; remove it from Apps & features", name)
	}
}

func (p *Purger) banner(report *Report) {
	p.Log.Section("Done")
	if p.DryRun {
		p.Log.Success("Dry run complete. Nothing was changed")
	} else {
		p.Log.Success("%s removal complete", p.Manifest.Vendor)
	}
	p.Log.Info("Folders and registry keys: %s", report.Summary.String())
	p.logPath()
}

func (p *Purger) logPath() {
	if path := p.Log.Path(); path != "" {
		p.Log.Info("Log file: %s", path)
	}
}
