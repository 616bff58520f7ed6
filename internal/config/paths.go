// ABOUTME: Centralized path resolution for suitepurge directories
// ABOUTME: Respects SUITEPURGE_LOG_DIR and SUITEPURGE_MANIFEST environment variables

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// MustLogDir returns the directory run logs are written to.
// Checks SUITEPURGE_LOG_DIR env var first, falls back to %ProgramData%\suitepurge\logs
// on Windows and ~/.suitepurge/logs elsewhere.
// Panics if SUITEPURGE_LOG_DIR is set but invalid (whitespace-only or relative path).
// Panics if no fallback location can be determined.
func MustLogDir() string {
	if dir := os.Getenv("SUITEPURGE_LOG_DIR"); dir != "" {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			panic("SUITEPURGE_LOG_DIR is set but contains only whitespace")
		}
		if !filepath.IsAbs(dir) {
			panic("SUITEPURGE_LOG_DIR must be an absolute path: " + dir)
		}
		return dir
	}
	if runtime.GOOS == "windows" {
		if programData := os.Getenv("ProgramData"); programData != "" {
			return filepath.Join(programData, "suitepurge", "logs")
		}
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic("cannot determine home directory: " + err.Error())
	}
	return filepath.Join(homeDir, ".suitepurge", "logs")
}

// ManifestPath returns the manifest override file, or "" to use the built-in manifest.
func ManifestPath() string {
	return strings.TrimSpace(os.Getenv("SUITEPURGE_MANIFEST"))
}

// MetricsPath returns where the run summary textfile goes for a given log directory.
func MetricsPath(logDir string) string {
	return filepath.Join(logDir, "suitepurge.prom")
}
