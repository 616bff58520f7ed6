// ABOUTME: Check-then-delete for the manifest's directory and registry tables
// ABOUTME: Every destructive action yields an ItemResult; absence is a skip, never an error
package purge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/suitepurge/suitepurge/internal/manifest"
	"github.com/suitepurge/suitepurge/internal/ui"
)

// Status is the result of one destructive action
type Status string

const (
	StatusRemoved     Status = "removed"
	StatusNotFound    Status = "not-found"
	StatusDenied      Status = "denied"
	StatusFailed      Status = "failed"
	StatusWouldRemove Status = "would-remove"
)

// statusOrder is the display order for summary counts
var statusOrder = []Status{StatusRemoved, StatusWouldRemove, StatusNotFound, StatusDenied, StatusFailed}

// ItemResult records what happened to one target
type ItemResult struct {
	Target   manifest.Target
	Resolved string // expanded path or key, empty when a placeholder was unresolved
	Status   Status
	Err      error
}

// Summary aggregates item results
type Summary struct {
	Items []ItemResult
}

// Add appends a result
func (s *Summary) Add(r ItemResult) {
	s.Items = append(s.Items, r)
}

// Count returns the number of results with the given status
func (s *Summary) Count(status Status) int {
	n := 0
	for _, item := range s.Items {
		if item.Status == status {
			n++
		}
	}
	return n
}

// Counts returns result counts keyed by status name
func (s *Summary) Counts() map[string]int {
	counts := make(map[string]int)
	for _, item := range s.Items {
		counts[string(item.Status)]++
	}
	return counts
}

// String renders the non-zero counts in a fixed order
func (s *Summary) String() string {
	labels := make([]string, len(statusOrder))
	for i, st := range statusOrder {
		labels[i] = string(st)
	}
	return ui.RenderCounts(labels, s.Counts())
}

// checker reports whether a resolved target exists
type checker func(resolved string) (bool, error)

// deleter removes a resolved target
type deleter func(resolved string) error

// checkThenDelete expands a target, checks it exists and deletes it.
// Unresolved placeholders and missing targets are reported as not found.
func (p *Purger) checkThenDelete(t manifest.Target, vars manifest.Vars, exists checker, remove deleter) ItemResult {
	result := ItemResult{Target: t}

	resolved, ok := vars.Expand(t.Path)
	if !ok {
		result.Status = StatusNotFound
		p.Log.Warn("%s not found: %s is not available for this user", t.Label, t.Path)
		return p.observe(result)
	}
	result.Resolved = resolved

	found, err := exists(resolved)
	if err != nil {
		result.Status = classify(err)
		result.Err = err
		p.Log.Error("Could not check %s (%s): %v", t.Label, resolved, err)
		return p.observe(result)
	}
	if !found {
		result.Status = StatusNotFound
		p.Log.Warn("%s not found: %s", t.Label, resolved)
		return p.observe(result)
	}

	if p.DryRun {
		result.Status = StatusWouldRemove
		p.Log.Info("Would delete %s: %s", t.Label, resolved)
		return p.observe(result)
	}

	if err := remove(resolved); err != nil {
		result.Status = classify(err)
		result.Err = err
		p.Log.Error("Failed to delete %s (%s): %v", t.Label, resolved, err)
		return p.observe(result)
	}

	result.Status = StatusRemoved
	p.Log.Success("Deleted %s: %s", t.Label, resolved)
	return p.observe(result)
}

func (p *Purger) observe(r ItemResult) ItemResult {
	p.metrics().ObserveTarget(string(r.Target.Kind), string(r.Status))
	return r
}

// classify maps a deletion error onto a result status
func classify(err error) Status {
	if errors.Is(err, fs.ErrPermission) {
		return StatusDenied
	}
	return StatusFailed
}

// dirExists reports whether path is an existing directory
func dirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// fileExists reports whether path is an existing regular file
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// forceRemoveAll clears read-only bits below path and removes the tree
func forceRemoveAll(path string) error {
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Mode().Perm()&0200 == 0 {
			_ = os.Chmod(p, info.Mode().Perm()|0200)
		}
		return nil
	})
	return os.RemoveAll(path)
}

// TempResult counts what clearing the temp directory removed
type TempResult struct {
	Found   bool
	Removed int
	Failed  int
}

// clearDir removes every child of dir but keeps dir itself. Per-item failures are only counted.
func clearDir(dir string) (TempResult, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return TempResult{}, err
	}

	result := TempResult{Found: true}
	for _, child := range children {
		if err := forceRemoveAll(filepath.Join(dir, child.Name())); err != nil {
			result.Failed++
			continue
		}
		result.Removed++
	}
	return result, nil
}

// removePrefixed deletes the files directly in dir whose names start with prefix, ignoring case
func removePrefixed(dir, prefix string) (removed, failed int, err error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, err
	}

	prefix = strings.ToLower(prefix)
	for _, child := range children {
		if child.IsDir() || !strings.HasPrefix(strings.ToLower(child.Name()), prefix) {
			continue
		}
		path := filepath.Join(dir, child.Name())
		_ = os.Chmod(path, 0644)
		if err := os.Remove(path); err != nil {
			failed++
			continue
		}
		removed++
	}
	return removed, failed, nil
}

// countPrefixed counts the files removePrefixed would delete
func countPrefixed(dir, prefix string) (int, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	prefix = strings.ToLower(prefix)
	n := 0
	for _, child := range children {
		if !child.IsDir() && strings.HasPrefix(strings.ToLower(child.Name()), prefix) {
			n++
		}
	}
	return n, nil
}

func describeTemp(r TempResult) string {
	if r.Failed == 0 {
		return fmt.Sprintf("Cleared %d item(s) from the temp directory", r.Removed)
	}
	return fmt.Sprintf("Cleared %d item(s) from the temp directory, %d could not be removed", r.Removed, r.Failed)
}
