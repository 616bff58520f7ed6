// ABOUTME: Interactive user and machine description for the removal run
// ABOUTME: Platform-specific lookups live in session_windows.go and session_other.go
package session

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// User is the account whose per-user folders and registry hive are cleaned
type User struct {
	Name       string // account name without domain
	Domain     string
	SID        string
	ProfileDir string
	Source     string // how the account was found
}

// Qualified returns DOMAIN\name, or just the name when no domain is known
func (u User) Qualified() string {
	if u.Domain == "" {
		return u.Name
	}
	return u.Domain + `\` + u.Name
}

// SplitAccount splits DOMAIN\name into its parts
func SplitAccount(account string) (domain, name string) {
	account = strings.TrimSpace(account)
	if i := strings.LastIndex(account, `\`); i >= 0 {
		return account[:i], account[i+1:]
	}
	return "", account
}

// MachineSummary describes the host for the run log header
func MachineSummary() string {
	info, err := host.Info()
	if err != nil {
		return "unknown host"
	}
	summary := info.Hostname
	if info.Platform != "" {
		summary += fmt.Sprintf(" (%s %s", info.Platform, info.PlatformVersion)
		if info.KernelArch != "" {
			summary += ", " + info.KernelArch
		}
		summary += ")"
	}
	return summary
}
