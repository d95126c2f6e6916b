package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlternativeModifiersCoversAllFourLockCombinations(t *testing.T) {
	base := uint16(0x40) // Mod4
	got := AlternativeModifiers(base)
	assert.ElementsMatch(t, []uint16{
		base,
		base | uint16(LockMask),
		base | uint16(NumLockMask),
		base | uint16(LockMask) | uint16(NumLockMask),
	}, got)
}

func TestWorkspaceBindingsOneSwitchAndOneMovePerWorkspace(t *testing.T) {
	bindings := WorkspaceBindings(3, "Mod4")
	assert.Len(t, bindings, 6)

	for i := 0; i < 3; i++ {
		switchB := bindings[i*2]
		moveB := bindings[i*2+1]
		assert.Equal(t, Action("switch-workspace"), switchB.Action)
		assert.Equal(t, i, switchB.Workspace)
		assert.Equal(t, Action("move-to-workspace"), moveB.Action)
		assert.Equal(t, i, moveB.Workspace)
	}
}

func TestWorkspaceBindingsCapsAtNineDigits(t *testing.T) {
	bindings := WorkspaceBindings(20, "Mod4")
	assert.Len(t, bindings, 18, "only digits 1-9 are bindable, so count caps at 9 workspaces")
}

func TestDefaultIncludesWorkspaceBindings(t *testing.T) {
	bindings := Default("Mod4", 4)
	var sawQuit, sawClose bool
	workspaceSwitches := 0
	for _, b := range bindings {
		switch b.Action {
		case ActionQuit:
			sawQuit = true
		case ActionCloseWindow:
			sawClose = true
		case Action("switch-workspace"):
			workspaceSwitches++
		}
	}
	assert.True(t, sawQuit)
	assert.True(t, sawClose)
	assert.Equal(t, 4, workspaceSwitches)
}
