// ABOUTME: Tests for centralized path resolution functions
// ABOUTME: Verifies SUITEPURGE_LOG_DIR and SUITEPURGE_MANIFEST are respected

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestMustLogDir(t *testing.T) {
	t.Run("uses SUITEPURGE_LOG_DIR when set", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("SUITEPURGE_LOG_DIR", dir)
		got := MustLogDir()
		if got != dir {
			t.Errorf("got %q, want %q", got, dir)
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("SUITEPURGE_LOG_DIR", "  "+dir+"  ")
		got := MustLogDir()
		if got != dir {
			t.Errorf("got %q, want %q", got, dir)
		}
	})

	t.Run("falls back to home directory off Windows", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("Windows falls back to ProgramData")
		}
		t.Setenv("SUITEPURGE_LOG_DIR", "")
		got := MustLogDir()
		home, _ := os.UserHomeDir()
		want := filepath.Join(home, ".suitepurge", "logs")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("panics on relative path", func(t *testing.T) {
		t.Setenv("SUITEPURGE_LOG_DIR", "relative/logs")
		defer func() {
			if recover() == nil {
				t.Error("expected panic for relative SUITEPURGE_LOG_DIR")
			}
		}()
		MustLogDir()
	})

	t.Run("panics on whitespace-only value", func(t *testing.T) {
		t.Setenv("SUITEPURGE_LOG_DIR", "   ")
		defer func() {
			if recover() == nil {
				t.Error("expected panic for whitespace-only SUITEPURGE_LOG_DIR")
			}
		}()
		MustLogDir()
	})
}

func TestManifestPath(t *testing.T) {
	t.Setenv("SUITEPURGE_MANIFEST", "")
	if got := ManifestPath(); got != "" {
		t.Errorf("expected empty manifest path, got %q", got)
	}

	t.Setenv("SUITEPURGE_MANIFEST", " /etc/suitepurge.yaml ")
	if got := ManifestPath(); got != "/etc/suitepurge.yaml" {
		t.Errorf("got %q, want /etc/suitepurge.yaml", got)
	}
}

func TestMetricsPath(t *testing.T) {
	got := MetricsPath(filepath.Join("var", "logs"))
	want := filepath.Join("var", "logs", "suitepurge.prom")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
