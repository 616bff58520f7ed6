// ABOUTME: Read-only view of the cleanup targets for the resolved user
// ABOUTME: Expands every table entry and reports whether it currently exists
package purge

import "github.com/suitepurge/suitepurge/internal/manifest"

// TargetState is one expanded target and whether it is present
type TargetState struct {
	Target   manifest.Target
	Resolved string // empty when a placeholder could not be resolved
	Exists   bool
	Err      error
}

// Inspect resolves the user and checks every directory and registry target without deleting
func (p *Purger) Inspect() []TargetState {
	user, vars := p.resolveUser()
	reg := p.OpenRegistry(user.SID)

	var states []TargetState
	for _, t := range p.Manifest.Targets() {
		state := TargetState{Target: t}
		resolved, ok := vars.Expand(t.Path)
		if !ok {
			states = append(states, state)
			continue
		}
		state.Resolved = resolved

		switch t.Kind {
		case manifest.KindRegistry:
			state.Exists, state.Err = reg.KeyExists(resolved)
		default:
			state.Exists, state.Err = dirExists(resolved)
		}
		states = append(states, state)
	}
	return states
}
