//go:build windows

// ABOUTME: Resolves the logged-on console user even when running elevated
// ABOUTME: Tries the console session token, then explorer.exe's owner, then the process user
package session

import (
	"errors"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const profileListKey = `SOFTWARE\Microsoft\Windows NT\CurrentVersion\ProfileList\`

// ResolveUser finds the interactive user
func ResolveUser() (User, error) {
	var errs []error

	for _, lookup := range []func() (User, error){consoleUser, explorerOwner, processUser} {
		u, err := lookup()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if u.ProfileDir == "" {
			u.ProfileDir = profileDir(u)
		}
		return u, nil
	}

	return User{}, errors.Join(errs...)
}

// consoleUser reads the token of the active console session (needs SYSTEM)
func consoleUser() (User, error) {
	sessionID := windows.WTSGetActiveConsoleSessionId()

	var token windows.Token
	if err := windows.WTSQueryUserToken(sessionID, &token); err != nil {
		return User{}, err
	}
	defer token.Close()

	tu, err := token.GetTokenUser()
	if err != nil {
		return User{}, err
	}

	name, domain, _, err := tu.User.Sid.LookupAccount("")
	if err != nil {
		return User{}, err
	}
	return User{Name: name, Domain: domain, SID: tu.User.Sid.String(), Source: "console session"}, nil
}

// explorerOwner uses the owner of the desktop shell
func explorerOwner() (User, error) {
	procs, err := process.Processes()
	if err != nil {
		return User{}, err
	}

	for _, p := range procs {
		name, err := p.Name()
		if err != nil || !strings.EqualFold(name, "explorer.exe") {
			continue
		}
		account, err := p.Username()
		if err != nil || account == "" {
			continue
		}

		domain, name := SplitAccount(account)
		sid, _, _, err := windows.LookupSID("", account)
		if err != nil {
			return User{}, err
		}
		return User{Name: name, Domain: domain, SID: sid.String(), Source: "explorer.exe owner"}, nil
	}
	return User{}, errors.New("no explorer.exe process found")
}

// processUser falls back to the account running this process
func processUser() (User, error) {
	u, err := user.Current()
	if err != nil {
		return User{}, err
	}
	domain, name := SplitAccount(u.Username)
	return User{Name: name, Domain: domain, SID: u.Uid, ProfileDir: u.HomeDir, Source: "current process"}, nil
}

// profileDir reads ProfileImagePath for the SID, falling back to %SystemDrive%\Users\<name>
func profileDir(u User) string {
	if u.SID != "" {
		k, err := registry.OpenKey(registry.LOCAL_MACHINE, profileListKey+u.SID, registry.QUERY_VALUE)
		if err == nil {
			defer k.Close()
			if path, _, err := k.GetStringValue("ProfileImagePath"); err == nil && path != "" {
				if expanded, err := registry.ExpandString(path); err == nil {
					return expanded
				}
				return path
			}
		}
	}

	drive := os.Getenv("SystemDrive")
	if drive == "" {
		drive = "C:"
	}
	return filepath.Join(drive+`\`, "Users", u.Name)
}
