// ABOUTME: Test helpers for ui package
// ABOUTME: Provides synchronized access to global YesFlag during testing
package ui

import (
	"sync"
	"testing"

	"github.com/suitepurge/suitepurge/internal/config"
)

// testYesFlagMutex ensures only one test modifies YesFlag at a time
var testYesFlagMutex sync.Mutex

// withYesFlag safely sets YesFlag for the duration of a test
func withYesFlag(t *testing.T, value bool, fn func()) {
	t.Helper()

	testYesFlagMutex.Lock()
	defer testYesFlagMutex.Unlock()

	originalFlag := config.YesFlag
	defer func() { config.YesFlag = originalFlag }()

	config.YesFlag = value
	fn()
}
