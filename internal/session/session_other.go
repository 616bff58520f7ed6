//go:build !windows

// ABOUTME: Process-user lookup for non-Windows builds
// ABOUTME: Lets the read-only commands run during development
package session

import "os/user"

// ResolveUser returns the account running this process
func ResolveUser() (User, error) {
	u, err := user.Current()
	if err != nil {
		return User{}, err
	}
	domain, name := SplitAccount(u.Username)
	return User{Name: name, Domain: domain, SID: u.Uid, ProfileDir: u.HomeDir, Source: "current process"}, nil
}
