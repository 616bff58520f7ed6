// ABOUTME: Vendor package selection from the uninstall registry and silent command building
// ABOUTME: Filters by publisher and exclude list, collapses duplicate views, sorts by name
package purge

import (
	"regexp"
	"sort"
	"strings"

	"github.com/suitepurge/suitepurge/internal/manifest"
	"github.com/suitepurge/suitepurge/internal/winreg"
)

// Package is one installed program selected for removal
type Package struct {
	DisplayName     string
	Version         string
	Publisher       string
	UninstallString string
	SystemComponent bool
	Source          string // registry key the entry was read from
}

func packageFromEntry(e winreg.Entry) Package {
	return Package{
		DisplayName:     strings.TrimSpace(e.DisplayName),
		Version:         strings.TrimSpace(e.DisplayVersion),
		Publisher:       strings.TrimSpace(e.Publisher),
		UninstallString: strings.TrimSpace(e.UninstallString),
		SystemComponent: e.SystemComponent,
		Source:          e.Key,
	}
}

// Label returns the display name with its version when known
func (p Package) Label() string {
	if p.Version == "" {
		return p.DisplayName
	}
	return p.DisplayName + " (" + p.Version + ")"
}

// vendorPackages keeps named, non-system entries from the vendor that are not excluded
func vendorPackages(entries []winreg.Entry, m *manifest.Manifest) []Package {
	publisher := strings.ToLower(strings.TrimSpace(m.PublisherMatch))
	return collect(entries, func(p Package) bool {
		if p.SystemComponent {
			return false
		}
		if !strings.Contains(strings.ToLower(p.Publisher), publisher) {
			return false
		}
		return !m.Excluded(p.DisplayName)
	})
}

// residualPackages matches by display name only; the exclude list does not apply
func residualPackages(entries []winreg.Entry, name string) []Package {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	return collect(entries, func(p Package) bool {
		return strings.Contains(strings.ToLower(p.DisplayName), name)
	})
}

// collect applies keep to every named entry, drops duplicates seen through
// more than one registry view and sorts the result by display name
func collect(entries []winreg.Entry, keep func(Package) bool) []Package {
	seen := make(map[string]bool)
	var packages []Package
	for _, e := range entries {
		p := packageFromEntry(e)
		if p.DisplayName == "" || !keep(p) {
			continue
		}
		key := strings.ToLower(p.DisplayName) + "\x00" + strings.ToLower(p.UninstallString)
		if seen[key] {
			continue
		}
		seen[key] = true
		packages = append(packages, p)
	}

	sort.SliceStable(packages, func(i, j int) bool {
		a, b := strings.ToLower(packages[i].DisplayName), strings.ToLower(packages[j].DisplayName)
		if a != b {
			return a < b
		}
		return packages[i].DisplayName < packages[j].DisplayName
	})
	return packages
}

var (
	msiexecPattern = regexp.MustCompile(`(?i)^\s*"?[^"]*\bmsiexec(\.exe)?"?(\s|$)`)
	msiInstallFlag = regexp.MustCompile(`(?i)([\s"])/I(\s*\{)`)
)

// silentCommand turns a registry uninstall string into an unattended command line.
// Windows Installer commands are switched from install (/I) to uninstall (/X).
func silentCommand(uninstall string, args manifest.SilentArgs) (string, bool) {
	cmd := strings.TrimSpace(uninstall)
	if cmd == "" {
		return "", false
	}

	extra := args.EXE
	if msiexecPattern.MatchString(cmd) {
		cmd = msiInstallFlag.ReplaceAllString(cmd, "${1}/X${2}")
		extra = args.MSI
	}

	for _, flag := range strings.Fields(extra) {
		if !containsFlag(cmd, flag) {
			cmd += " " + flag
		}
	}
	return cmd, true
}

func containsFlag(cmd, flag string) bool {
	for _, field := range strings.Fields(cmd) {
		if strings.EqualFold(strings.Trim(field, `"`), flag) {
			return true
		}
	}
	return false
}
