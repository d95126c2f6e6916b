// Package rules matches managed clients against class/title identifiers
// to decide startup placement (which workspace, floating vs tiled,
// pinned).
package rules

import "github.com/mars-wm/marswm/internal/client"

// Action is what happens to a client a matching Rule selects.
type Action struct {
	Workspace  *int // nil leaves the client on the workspace it was opened on
	Floating   bool
	Pinned     bool
	Fullscreen bool
}

// Rule pairs an identifier match against the action to apply. A nil/empty
// Application or Title means "don't care" for that field; both given
// fields must match for Matches to return true.
type Rule struct {
	Application string
	Title       string
	Action      Action
}

func (r Rule) Matches(c *client.Client) bool {
	if r.Application != "" && r.Application != c.Class {
		return false
	}
	if r.Title != "" && r.Title != c.Name {
		return false
	}
	return true
}

// Set is an ordered rule list; the first match wins, mirroring how
// marswm's config applies its first matching rule per client.
type Set []Rule

// FirstMatch returns the Action of the first matching rule and true, or the
// zero Action and false if nothing matches.
func (s Set) FirstMatch(c *client.Client) (Action, bool) {
	for _, r := range s {
		if r.Matches(c) {
			return r.Action, true
		}
	}
	return Action{}, false
}
