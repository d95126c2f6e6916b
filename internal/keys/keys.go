// Package keys is the keybinding table: a flat list of modifier+keysym
// strings (the "Mod4-j" syntax xgbutil/keybind parses) mapped to an action
// tag the dispatch package acts on, plus the modifier sanitization that lets a
// single logical binding fire regardless of whether NumLock or CapsLock
// happen to be active.
//
// The lock-modifier handling is the standard X11 idiom: a binding's
// identity ignores NumLock and CapsLock, so grabs cover every combination
// of the two.
package keys

import "github.com/jezek/xgb/xproto"

// LockMask and NumLockMask are the two modifier bits whose state is
// irrelevant to a binding's identity; AlternativeModifiers lists every
// combination of them alongside the base modifier, the set a raw grab
// needs so a binding still fires with Caps/Num Lock toggled on.
const (
	LockMask    = xproto.ModMaskLock
	NumLockMask = xproto.ModMask2
)

// AlternativeModifiers returns every modifier mask that should trigger the
// same logical binding as base: base alone, base|Lock, base|NumLock, and
// base|Lock|NumLock.
func AlternativeModifiers(base uint16) []uint16 {
	return []uint16{
		base,
		base | uint16(LockMask),
		base | uint16(NumLockMask),
		base | uint16(LockMask) | uint16(NumLockMask),
	}
}

// Action names one of the fixed operations a keybinding can trigger; the
// dispatch package switches on this tag and calls into the wm controller.
type Action string

const (
	ActionSwitchWorkspace  Action = "switch-workspace"
	ActionMoveToWorkspace  Action = "move-to-workspace"
	ActionCloseWindow      Action = "close-window"
	ActionCycleLayout      Action = "cycle-layout"
	ActionToggleFloating   Action = "toggle-floating"
	ActionToggleFullscreen Action = "toggle-fullscreen"
	ActionTogglePinned     Action = "toggle-pinned"
	ActionFocusNext        Action = "focus-next"
	ActionFocusPrev        Action = "focus-prev"
	ActionIncMainCount     Action = "inc-main-count"
	ActionDecMainCount     Action = "dec-main-count"
	ActionPullFront        Action = "pull-front"
	ActionQuit             Action = "quit"
)

// Binding pairs an xgbutil keybind spec string ("Mod4-j") with the Action
// it triggers and, for workspace-switch/move-to-workspace bindings, the
// workspace index it targets.
type Binding struct {
	Spec      string
	Action    Action
	Workspace int // meaningful only for workspace-targeted actions
}

// WorkspaceBindings returns one focus-switch and one move-client binding
// per workspace, named "Mod4-<n>" / "Mod4-Shift-<n>" the way dwm and
// marswm's default config both do it.
func WorkspaceBindings(count int, modName string) []Binding {
	digits := "123456789"
	var out []Binding
	for i := 0; i < count && i < len(digits); i++ {
		d := string(digits[i])
		out = append(out,
			Binding{Spec: modName + "-" + d, Action: ActionSwitchWorkspace, Workspace: i},
			Binding{Spec: modName + "-Shift-" + d, Action: ActionMoveToWorkspace, Workspace: i},
		)
	}
	return out
}

// Default returns the baseline binding set: layout/window actions bound
// under modName (e.g. "Mod4"), plus the per-workspace bindings.
func Default(modName string, workspaceCount int) []Binding {
	out := []Binding{
		{Spec: modName + "-Shift-c", Action: ActionCloseWindow},
		{Spec: modName + "-space", Action: ActionCycleLayout},
		{Spec: modName + "-Shift-space", Action: ActionToggleFloating},
		{Spec: modName + "-f", Action: ActionToggleFullscreen},
		{Spec: modName + "-p", Action: ActionTogglePinned},
		{Spec: modName + "-j", Action: ActionFocusNext},
		{Spec: modName + "-k", Action: ActionFocusPrev},
		{Spec: modName + "-i", Action: ActionIncMainCount},
		{Spec: modName + "-d", Action: ActionDecMainCount},
		{Spec: modName + "-Return", Action: ActionPullFront},
		{Spec: modName + "-Shift-q", Action: ActionQuit},
	}
	return append(out, WorkspaceBindings(workspaceCount, modName)...)
}
