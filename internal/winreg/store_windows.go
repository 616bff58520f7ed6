//go:build windows

// ABOUTME: Live registry access for uninstall enumeration and key removal
// ABOUTME: Always addresses the 64-bit view so WOW6432Node paths are explicit
package winreg

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

var hives = map[Root]registry.Key{
	LocalMachine: registry.LOCAL_MACHINE,
	CurrentUser:  registry.CURRENT_USER,
	Users:        registry.USERS,
	ClassesRoot:  registry.CLASSES_ROOT,
}

// Store reads and deletes keys in the live registry
type Store struct {
	userSID string
}

// New creates a Store. userSID adds that user's hive to uninstall enumeration.
func New(userSID string) *Store {
	return &Store{userSID: userSID}
}

// UninstallEntries reads every entry from all uninstall views.
// Views that do not exist are skipped; an error is returned only if no view could be read.
func (s *Store) UninstallEntries() ([]Entry, error) {
	var entries []Entry
	var lastErr error
	read := 0

	for _, view := range UninstallViews(s.userSID) {
		found, err := readView(view)
		if err != nil {
			if !errors.Is(err, registry.ErrNotExist) {
				lastErr = err
			}
			continue
		}
		read++
		entries = append(entries, found...)
	}

	if read == 0 && lastErr != nil {
		return nil, fmt.Errorf("failed to read uninstall entries: %w", lastErr)
	}
	return entries, nil
}

func readView(view string) ([]Entry, error) {
	root, subkey, err := ParseKey(view)
	if err != nil {
		return nil, err
	}

	k, err := registry.OpenKey(hives[root], subkey, registry.ENUMERATE_SUB_KEYS|registry.WOW64_64KEY)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		sk, err := registry.OpenKey(k, name, registry.QUERY_VALUE|registry.WOW64_64KEY)
		if err != nil {
			continue
		}

		e := Entry{Key: view + `\` + name}
		e.DisplayName, _, _ = sk.GetStringValue("DisplayName")
		e.DisplayVersion, _, _ = sk.GetStringValue("DisplayVersion")
		e.Publisher, _, _ = sk.GetStringValue("Publisher")
		e.UninstallString, _, _ = sk.GetStringValue("UninstallString")
		if v, _, err := sk.GetIntegerValue("SystemComponent"); err == nil && v == 1 {
			e.SystemComponent = true
		}
		sk.Close()

		entries = append(entries, e)
	}
	return entries, nil
}

// KeyExists reports whether a key is present
func (s *Store) KeyExists(key string) (bool, error) {
	root, subkey, err := ParseKey(key)
	if err != nil {
		return false, err
	}

	k, err := registry.OpenKey(hives[root], subkey, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	k.Close()
	return true, nil
}

// DeleteTree removes a key and all of its subkeys
func (s *Store) DeleteTree(key string) error {
	root, subkey, err := ParseKey(key)
	if err != nil {
		return err
	}
	return deleteTree(hives[root], subkey)
}

// deleteTree removes children depth-first because RegDeleteKey refuses keys with subkeys
func deleteTree(parent registry.Key, path string) error {
	k, err := registry.OpenKey(parent, path, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return err
	}

	children, err := k.ReadSubKeyNames(-1)
	if err != nil {
		k.Close()
		return err
	}
	for _, child := range children {
		if err := deleteTree(k, child); err != nil {
			k.Close()
			return fmt.Errorf("%s\\%s: %w", path, child, err)
		}
	}
	k.Close()

	return registry.DeleteKey(parent, path)
}

// StringValue reads a string value from a key
func (s *Store) StringValue(key, name string) (string, error) {
	root, subkey, err := ParseKey(key)
	if err != nil {
		return "", err
	}

	k, err := registry.OpenKey(hives[root], subkey, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", err
	}
	defer k.Close()

	val, _, err := k.GetStringValue(name)
	return val, err
}
