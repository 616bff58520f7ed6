// ABOUTME: Test fixtures for removal runs: fake registry, fake launcher and a temp machine layout
// ABOUTME: Shared by the scenario suite; real files under a temp root stand in for the disk
package purge_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/suitepurge/suitepurge/internal/manifest"
	"github.com/suitepurge/suitepurge/internal/purge"
	"github.com/suitepurge/suitepurge/internal/runlog"
	"github.com/suitepurge/suitepurge/internal/session"
	"github.com/suitepurge/suitepurge/internal/winreg"
)

const testManifest = `
vendor: Acme
publisherMatch: Acme
exclude:
  - Acme Access
  - Acme Genuine Service

uninstallTool:
  label: Acme Uninstall Tool
  paths:
    - ${Root}/tool/UninstallTool.exe
  registryHint:
    key: 'HKLM\SOFTWARE\Acme\UninstallTool'
    value: InstallLocation
    executable: UninstallTool.exe

silentArgs:
  msi: /qn /norestart
  exe: /quiet /norestart

secondaryUninstallers:
  - label: Acme Access
    path: ${Root}/access/remove.exe
    args: ["--mode", "unattended"]
  - label: Acme Licensing Service
    path: ${Root}/licensing/uninstall.exe
    args: ["--mode", "unattended"]

manualStep: |
  ## Manual step
  Run the program install troubleshooter.

tempDir: ${LocalAppData}/Temp

licensingCache:
  dir: ${Root}/FLEXnet
  prefix: acme

directories:
  - label: Acme program files
    path: ${Root}/Program Files/Acme
  - label: Acme user cache
    path: ${LocalAppData}/Acme

registryKeys:
  - label: Acme machine settings
    path: 'HKLM\SOFTWARE\Acme'
  - label: Acme user settings
    path: 'HKU\${UserSID}\Software\Acme'

residualService: Acme Genuine Service
`

const testSID = "S-1-5-21-1000-1000-1000-1001"

var errNoValue = errors.New("value not found")

type fakeRegistry struct {
	entries []winreg.Entry
	keys    map[string]bool
	values  map[string]string
	deleted []string
	scans   int
}

func (f *fakeRegistry) UninstallEntries() ([]winreg.Entry, error) {
	f.scans++
	return f.entries, nil
}

func (f *fakeRegistry) KeyExists(key string) (bool, error) {
	return f.keys[key], nil
}

func (f *fakeRegistry) DeleteTree(key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.keys, key)
	return nil
}

func (f *fakeRegistry) StringValue(key, name string) (string, error) {
	v, ok := f.values[key+"|"+name]
	if !ok {
		return "", errNoValue
	}
	return v, nil
}

type fakeRunner struct {
	runs      []string
	shell     []string
	shellCode int
	shellErr  error
}

func (f *fakeRunner) Run(ctx context.Context, exe string, args ...string) (int, error) {
	f.runs = append(f.runs, strings.TrimSpace(exe+" "+strings.Join(args, " ")))
	return 0, nil
}

func (f *fakeRunner) RunShell(ctx context.Context, line string) (int, error) {
	f.shell = append(f.shell, line)
	return f.shellCode, f.shellErr
}

// tb is the part of testing.TB that GinkgoT also provides
type tb interface {
	Helper()
	TempDir() string
	Fatalf(format string, args ...any)
	Cleanup(func())
}

type harness struct {
	root    string
	profile string
	reg     *fakeRegistry
	runner  *fakeRunner
	hook    *test.Hook
	console bytes.Buffer
	log     *runlog.Log
	prompts []string
	answer  bool
	purger  *purge.Purger
}

func newHarness(t tb) *harness {
	t.Helper()

	m, err := manifest.Parse([]byte(testManifest))
	if err != nil {
		t.Fatalf("parsing test manifest: %v", err)
	}

	h := &harness{
		root:   t.TempDir(),
		reg:    &fakeRegistry{keys: map[string]bool{}, values: map[string]string{}},
		runner: &fakeRunner{},
		hook:   new(test.Hook),
		answer: true,
	}
	h.profile = filepath.Join(h.root, "Users", "alice")

	h.log, err = runlog.Open(filepath.Join(h.root, "logs"), time.Now(), &h.console)
	if err != nil {
		t.Fatalf("opening run log: %v", err)
	}
	h.log.AddHook(h.hook)
	t.Cleanup(func() { h.log.Close() })

	h.purger = &purge.Purger{
		Manifest:     m,
		Log:          h.log,
		Vars:         manifest.Vars{"Root": h.root},
		OpenRegistry: func(string) purge.Registry { return h.reg },
		Runner:       h.runner,
		Confirm: func(prompt string) (bool, error) {
			h.prompts = append(h.prompts, prompt)
			return h.answer, nil
		},
		ResolveUser: func() (session.User, error) {
			return session.User{Name: "alice", Domain: "ACME", SID: testSID, ProfileDir: h.profile, Source: "test"}, nil
		},
		Raw: true,
	}
	return h
}

// path joins parts onto the temp root
func (h *harness) path(parts ...string) string {
	return filepath.Join(append([]string{h.root}, parts...)...)
}

// file creates a file below the temp root, with parent directories
func (h *harness) file(parts ...string) string {
	p := h.path(parts...)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		panic(err)
	}
	if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
		panic(err)
	}
	return p
}

// install registers a package in the fake uninstall registry
func (h *harness) install(name, publisher, uninstall string) {
	h.reg.entries = append(h.reg.entries, winreg.Entry{
		DisplayName:     name,
		DisplayVersion:  "1.0",
		Publisher:       publisher,
		UninstallString: uninstall,
		Key:             `HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\` + name,
	})
}

// populate creates every leftover the manifest targets
func (h *harness) populate() {
	h.file("access", "remove.exe")
	h.file("licensing", "uninstall.exe")
	h.file("Users", "alice", "AppData", "Local", "Temp", "setup.tmp")
	h.file("Users", "alice", "AppData", "Local", "Temp", "cache", "blob.bin")
	h.file("FLEXnet", "acme_lic.data")
	h.file("FLEXnet", "ACME_other.data")
	h.file("FLEXnet", "other_vendor.data")
	h.file("Program Files", "Acme", "bin", "app.exe")
	h.file("Users", "alice", "AppData", "Local", "Acme", "settings.xml")
	h.reg.keys[`HKLM\SOFTWARE\Acme`] = true
	h.reg.keys[`HKU\`+testSID+`\Software\Acme`] = true
}

func (h *harness) run() (*purge.Report, error) {
	return h.purger.Run(context.Background())
}

// messages returns the logged messages in order
func (h *harness) messages() []string {
	entries := h.hook.AllEntries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}
	return out
}

// indexOf returns the position of the first message containing s, or -1
func (h *harness) indexOf(s string) int {
	for i, m := range h.messages() {
		if strings.Contains(m, s) {
			return i
		}
	}
	return -1
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
