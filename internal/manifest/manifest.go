// ABOUTME: Declarative removal manifest describing one vendor's footprint
// ABOUTME: Loads the embedded default or a YAML override and validates every target
package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/suitepurge/suitepurge/internal/winreg"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultManifest []byte

// Kind classifies a removal target
type Kind string

const (
	KindDirectory Kind = "directory"
	KindRegistry  Kind = "registry"
)

// Target is one entry of a removal table
type Target struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
	Kind  Kind   `yaml:"-"`
}

// RegistryHint locates the uninstall tool through an install-location value
type RegistryHint struct {
	Key        string `yaml:"key"`
	Value      string `yaml:"value"`
	Executable string `yaml:"executable"`
}

// UninstallTool describes the optional vendor-provided removal utility
type UninstallTool struct {
	Label        string        `yaml:"label"`
	Paths        []string      `yaml:"paths"`
	RegistryHint *RegistryHint `yaml:"registryHint,omitempty"`
}

// Remover is a product-specific uninstaller launched directly with fixed arguments
type Remover struct {
	Label string   `yaml:"label"`
	Path  string   `yaml:"path"`
	Args  []string `yaml:"args"`
}

// SilentArgs are appended to uninstall commands to suppress UI and reboots
type SilentArgs struct {
	MSI string `yaml:"msi"`
	EXE string `yaml:"exe"`
}

// LicensingCache selects files by name prefix inside a shared licensing directory
type LicensingCache struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// Manifest is the full removal description for one vendor
type Manifest struct {
	Vendor          string         `yaml:"vendor"`
	PublisherMatch  string         `yaml:"publisherMatch"`
	Exclude         []string       `yaml:"exclude"`
	UninstallTool   UninstallTool  `yaml:"uninstallTool"`
	SilentArgs      SilentArgs     `yaml:"silentArgs"`
	Secondary       []Remover      `yaml:"secondaryUninstallers"`
	ManualStep      string         `yaml:"manualStep"`
	TempDir         string         `yaml:"tempDir"`
	LicensingCache  LicensingCache `yaml:"licensingCache"`
	Directories     []Target       `yaml:"directories"`
	RegistryKeys    []Target       `yaml:"registryKeys"`
	ResidualService string         `yaml:"residualService"`
}

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid manifest")

// Default returns the built-in manifest
func Default() (*Manifest, error) {
	return Parse(defaultManifest)
}

// Load reads a manifest override file, or the built-in manifest when path is empty
func Load(path string) (*Manifest, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates manifest YAML
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	for i := range m.Directories {
		m.Directories[i].Kind = KindDirectory
	}
	for i := range m.RegistryKeys {
		m.RegistryKeys[i].Kind = KindRegistry
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks required fields and target syntax
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Vendor) == "" {
		return fmt.Errorf("%w: vendor is required", ErrInvalid)
	}
	if strings.TrimSpace(m.PublisherMatch) == "" {
		return fmt.Errorf("%w: publisherMatch is required", ErrInvalid)
	}

	if hint := m.UninstallTool.RegistryHint; hint != nil {
		if hint.Key == "" || hint.Value == "" || hint.Executable == "" {
			return fmt.Errorf("%w: registryHint needs key, value and executable", ErrInvalid)
		}
		if err := validateKey(hint.Key); err != nil {
			return err
		}
	}

	for _, r := range m.Secondary {
		if r.Label == "" || r.Path == "" {
			return fmt.Errorf("%w: secondary uninstaller needs label and path", ErrInvalid)
		}
	}

	if m.LicensingCache.Dir != "" && strings.TrimSpace(m.LicensingCache.Prefix) == "" {
		return fmt.Errorf("%w: licensingCache.prefix is required when dir is set", ErrInvalid)
	}

	for _, t := range m.Targets() {
		if t.Label == "" || t.Path == "" {
			return fmt.Errorf("%w: %s target needs label and path", ErrInvalid, t.Kind)
		}
		if t.Kind == KindRegistry {
			if err := validateKey(t.Path); err != nil {
				return err
			}
		}
	}

	return nil
}

// Targets returns directories followed by registry keys, in table order
func (m *Manifest) Targets() []Target {
	targets := make([]Target, 0, len(m.Directories)+len(m.RegistryKeys))
	targets = append(targets, m.Directories...)
	targets = append(targets, m.RegistryKeys...)
	return targets
}

// Excluded reports whether a display name is handled outside the primary uninstall loop
func (m *Manifest) Excluded(displayName string) bool {
	for _, name := range m.Exclude {
		if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(displayName)) {
			return true
		}
	}
	return false
}

// validateKey parses a key template with placeholder variables filled in
func validateKey(key string) error {
	probe := Vars{}.fill(key, "X")
	if _, _, err := winreg.ParseKey(probe); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
