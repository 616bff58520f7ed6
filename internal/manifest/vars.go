// ABOUTME: ${Name} placeholder expansion for manifest paths and keys
// ABOUTME: Unresolved placeholders mark a target as absent instead of guessing a path
package manifest

import (
	"os"
	"path/filepath"
)

// machineVars are read from the process environment
var machineVars = []string{
	"ProgramFiles",
	"ProgramFiles(x86)",
	"ProgramData",
	"CommonProgramFiles",
	"CommonProgramFiles(x86)",
	"SystemDrive",
	"SystemRoot",
}

// Vars maps placeholder names to values
type Vars map[string]string

// MachineVars collects the machine-wide placeholders from the environment
func MachineVars() Vars {
	v := Vars{}
	for _, name := range machineVars {
		v[name] = os.Getenv(name)
	}
	return v
}

// WithUser returns a copy with the per-user placeholders derived from a resolved account.
// Empty values stay empty so dependent targets resolve as absent.
func (v Vars) WithUser(name, sid, profileDir string) Vars {
	out := make(Vars, len(v)+5)
	for k, val := range v {
		out[k] = val
	}
	out["UserName"] = name
	out["UserSID"] = sid
	out["UserProfile"] = profileDir
	out["LocalAppData"] = ""
	out["RoamingAppData"] = ""
	if profileDir != "" {
		out["LocalAppData"] = filepath.Join(profileDir, "AppData", "Local")
		out["RoamingAppData"] = filepath.Join(profileDir, "AppData", "Roaming")
	}
	return out
}

// Expand substitutes ${Name} placeholders. ok is false when any placeholder is unknown or empty.
func (v Vars) Expand(s string) (string, bool) {
	ok := true
	out := os.Expand(s, func(name string) string {
		val := v[name]
		if val == "" {
			ok = false
		}
		return val
	})
	return out, ok
}

// fill substitutes every placeholder with a fixed value, for syntax checks
func (v Vars) fill(s, value string) string {
	return os.Expand(s, func(string) string { return value })
}
