// ABOUTME: Installed-program records read from the uninstall registry views
// ABOUTME: Platform-neutral so removal logic can be tested without a registry
package winreg

import "errors"

const (
	uninstallPath    = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`
	uninstallPathWOW = `SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`
)

// ErrUnsupported is returned by every registry operation off Windows
var ErrUnsupported = errors.New("the Windows registry is not available on this platform")

// Entry is one installed program as listed under an Uninstall key
type Entry struct {
	DisplayName     string
	DisplayVersion  string
	Publisher       string
	UninstallString string
	SystemComponent bool
	Key             string // full key path the entry was read from
}

// UninstallViews lists the uninstall keys to scan: machine and current user,
// native and 32-bit views, plus the given user's hive when a SID is known.
func UninstallViews(userSID string) []string {
	views := []string{
		String(LocalMachine, uninstallPath),
		String(LocalMachine, uninstallPathWOW),
		String(CurrentUser, uninstallPath),
		String(CurrentUser, uninstallPathWOW),
	}
	if userSID != "" {
		views = append(views,
			String(Users, userSID+`\`+uninstallPath),
			String(Users, userSID+`\`+uninstallPathWOW),
		)
	}
	return views
}
