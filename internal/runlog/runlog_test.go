// ABOUTME: Tests for the run log file format and console mirroring
// ABOUTME: Uses the logrus test hook for entry order and a temp dir for the file
package runlog

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestFileName(t *testing.T) {
	started := time.Date(2026, 3, 9, 14, 5, 7, 0, time.Local)
	if got := FileName(started); got != "suitepurge_20260309_140507.log" {
		t.Errorf("FileName() = %q", got)
	}
}

func TestOpenCreatesDirectoryAndFormatsLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	var console bytes.Buffer

	l, err := Open(dir, time.Now(), &console)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	l.Info("Scanning installed programs")
	l.Warn("Folder not found: %s", `C:\ProgramData\Autodesk`)
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if filepath.Dir(l.Path()) != dir {
		t.Errorf("log written to %q, want directory %q", l.Path(), dir)
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}

	stamp := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] `)
	for _, line := range lines {
		if !stamp.MatchString(line) {
			t.Errorf("line %q does not start with a timestamp", line)
		}
	}
	if !strings.HasSuffix(lines[1], `Folder not found: C:\ProgramData\Autodesk`) {
		t.Errorf("unexpected second line %q", lines[1])
	}

	if strings.Contains(console.String(), "[20") {
		t.Errorf("console output should not carry timestamps, got %q", console.String())
	}
	if !strings.Contains(console.String(), "Scanning installed programs") {
		t.Errorf("console should mirror the message, got %q", console.String())
	}
}

func TestOpenAppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	started := time.Now()

	first, err := Open(dir, started, nil)
	if err != nil {
		t.Fatal(err)
	}
	first.Info("first")
	first.Close()

	second, err := Open(dir, started, nil)
	if err != nil {
		t.Fatal(err)
	}
	second.Info("second")
	second.Close()

	data, _ := os.ReadFile(second.Path())
	if strings.Count(string(data), "\n") != 2 {
		t.Errorf("expected both lines in the same file, got %q", string(data))
	}
}

func TestStatusFields(t *testing.T) {
	logger, hook := test.NewNullLogger()
	var console bytes.Buffer
	l := New(logger, &console)

	l.Section("Removing folders")
	l.Info("info")
	l.Success("success")
	l.Warn("warning")
	l.Error("error")
	l.Plain("plain")

	want := []struct {
		status string
		level  logrus.Level
	}{
		{StatusSection, logrus.InfoLevel},
		{StatusInfo, logrus.InfoLevel},
		{StatusSuccess, logrus.InfoLevel},
		{StatusWarning, logrus.WarnLevel},
		{StatusError, logrus.ErrorLevel},
		{StatusPlain, logrus.InfoLevel},
	}

	entries := hook.AllEntries()
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, w := range want {
		if entries[i].Data[StatusField] != w.status {
			t.Errorf("entry %d status = %v, want %s", i, entries[i].Data[StatusField], w.status)
		}
		if entries[i].Level != w.level {
			t.Errorf("entry %d level = %v, want %v", i, entries[i].Level, w.level)
		}
	}
	if entries[0].Message != "=== Removing folders ===" {
		t.Errorf("section message = %q", entries[0].Message)
	}
	if !strings.Contains(console.String(), "Removing folders") {
		t.Errorf("section should reach the console, got %q", console.String())
	}
}

func TestConsoleOnly(t *testing.T) {
	logger, hook := test.NewNullLogger()
	var console bytes.Buffer
	l := New(logger, &console)

	l.Console("rendered markdown")

	if len(hook.AllEntries()) != 0 {
		t.Error("Console() must not write to the log file")
	}
	if !strings.Contains(console.String(), "rendered markdown") {
		t.Errorf("Console() output missing, got %q", console.String())
	}
}

func TestRecordIsFileOnly(t *testing.T) {
	logger, hook := test.NewNullLogger()
	var console bytes.Buffer
	l := New(logger, &console)

	l.Record("Manual step: %s", "run the troubleshooter")

	if console.Len() != 0 {
		t.Errorf("Record() must not reach the console, got %q", console.String())
	}
	if hook.LastEntry() == nil || hook.LastEntry().Message != "Manual step: run the troubleshooter" {
		t.Errorf("unexpected entry %+v", hook.LastEntry())
	}
}

func TestAddHookOnFileBackedLog(t *testing.T) {
	l, err := Open(t.TempDir(), time.Now(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	hook := new(test.Hook)
	l.AddHook(hook)
	l.Success("Successfully uninstalled %s", "Autodesk AutoCAD 2025")

	if len(hook.AllEntries()) != 1 {
		t.Fatalf("expected 1 hooked entry, got %d", len(hook.AllEntries()))
	}
	if hook.LastEntry().Data[StatusField] != StatusSuccess {
		t.Errorf("status = %v", hook.LastEntry().Data[StatusField])
	}
}
