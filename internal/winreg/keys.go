// ABOUTME: Registry key path parsing shared by every platform
// ABOUTME: Splits HKLM\SOFTWARE\... style paths into a hive root and a subkey
package winreg

import (
	"errors"
	"fmt"
	"strings"
)

// Root identifies a predefined registry hive
type Root string

const (
	LocalMachine Root = "HKLM"
	CurrentUser  Root = "HKCU"
	Users        Root = "HKU"
	ClassesRoot  Root = "HKCR"
)

var rootAliases = map[string]Root{
	"HKLM":               LocalMachine,
	"HKEY_LOCAL_MACHINE": LocalMachine,
	"HKCU":               CurrentUser,
	"HKEY_CURRENT_USER":  CurrentUser,
	"HKU":                Users,
	"HKEY_USERS":         Users,
	"HKCR":               ClassesRoot,
	"HKEY_CLASSES_ROOT":  ClassesRoot,
}

var (
	// ErrUnknownRoot is returned for key paths that do not start with a known hive
	ErrUnknownRoot = errors.New("unknown registry root")

	// ErrHiveRoot is returned for key paths naming a whole hive
	ErrHiveRoot = errors.New("refusing to address a registry hive root")

	// ErrEmptySegment is returned for key paths containing an empty component
	ErrEmptySegment = errors.New("registry key path contains an empty segment")
)

// ParseKey splits a key path such as `HKLM\SOFTWARE\Vendor` into its root and subkey.
// Trailing separators are dropped; a leading or doubled separator is an empty segment.
func ParseKey(key string) (Root, string, error) {
	key = strings.TrimSpace(key)
	head, rest, _ := strings.Cut(key, `\`)

	root, ok := rootAliases[strings.ToUpper(strings.TrimSuffix(head, ":"))]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownRoot, key)
	}

	rest = strings.TrimRight(rest, `\`)
	if rest == "" {
		return "", "", fmt.Errorf("%w: %q", ErrHiveRoot, key)
	}
	for _, segment := range strings.Split(rest, `\`) {
		if strings.TrimSpace(segment) == "" {
			return "", "", fmt.Errorf("%w: %q", ErrEmptySegment, key)
		}
	}

	return root, rest, nil
}

// String renders a root and subkey back to the canonical short form
func String(root Root, subkey string) string {
	return string(root) + `\` + subkey
}
