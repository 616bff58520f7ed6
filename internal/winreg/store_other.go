//go:build !windows

// ABOUTME: Registry stand-in for non-Windows builds
// ABOUTME: Reports ErrUnsupported so callers treat every key as unreadable
package winreg

// Store is unavailable off Windows
type Store struct {
	userSID string
}

// New creates a Store that reports ErrUnsupported for every operation
func New(userSID string) *Store {
	return &Store{userSID: userSID}
}

// UninstallEntries always fails off Windows
func (s *Store) UninstallEntries() ([]Entry, error) {
	return nil, ErrUnsupported
}

// KeyExists always fails off Windows
func (s *Store) KeyExists(key string) (bool, error) {
	if _, _, err := ParseKey(key); err != nil {
		return false, err
	}
	return false, ErrUnsupported
}

// DeleteTree always fails off Windows
func (s *Store) DeleteTree(key string) error {
	return ErrUnsupported
}

// StringValue always fails off Windows
func (s *Store) StringValue(key, name string) (string, error) {
	return "", ErrUnsupported
}
