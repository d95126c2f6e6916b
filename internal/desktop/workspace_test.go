package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mars-wm/marswm/internal/client"
	"github.com/mars-wm/marswm/internal/geom"
	"github.com/mars-wm/marswm/internal/layout"
	"github.com/mars-wm/marswm/internal/registry"
)

func TestAttachPushesFront(t *testing.T) {
	w := New(0, "I", layout.Stack, layout.Params{})
	w.Attach(registry.Handle(1))
	w.Attach(registry.Handle(2))
	assert.Equal(t, []registry.Handle{2, 1}, w.Clients)
}

func TestDetachRemovesMember(t *testing.T) {
	w := New(0, "I", layout.Stack, layout.Params{})
	w.Attach(registry.Handle(1))
	w.Attach(registry.Handle(2))
	w.Detach(registry.Handle(1))
	assert.Equal(t, []registry.Handle{2}, w.Clients)
	assert.False(t, w.Contains(registry.Handle(1)))
}

func TestDetachNonMemberIsNoOp(t *testing.T) {
	w := New(0, "I", layout.Stack, layout.Params{})
	w.Attach(registry.Handle(1))
	w.Detach(registry.Handle(99))
	assert.Equal(t, []registry.Handle{1}, w.Clients)
}

func TestPullFrontPromotesExistingMember(t *testing.T) {
	w := New(0, "I", layout.Stack, layout.Params{})
	w.Attach(registry.Handle(1))
	w.Attach(registry.Handle(2))
	w.Attach(registry.Handle(3))
	// Clients is now [3, 2, 1]; pull 1 to the front.
	w.PullFront(registry.Handle(1))
	assert.Equal(t, []registry.Handle{1, 3, 2}, w.Clients)
}

func TestPullFrontNonMemberIsNoOp(t *testing.T) {
	w := New(0, "I", layout.Stack, layout.Params{})
	w.Attach(registry.Handle(1))
	w.PullFront(registry.Handle(42))
	assert.Equal(t, []registry.Handle{1}, w.Clients)
}

func TestCycleLayoutAdvancesAndWraps(t *testing.T) {
	w := New(0, "I", layout.Floating, layout.Params{})
	assert.Equal(t, layout.Floating, w.Layout)
	w.CycleLayout()
	assert.Equal(t, layout.Stack, w.Layout)
	w.CycleLayout()
	assert.Equal(t, layout.BottomStack, w.Layout)
	w.CycleLayout()
	assert.Equal(t, layout.Monocle, w.Layout)
	w.CycleLayout()
	assert.Equal(t, layout.Deck, w.Layout)
	w.CycleLayout()
	assert.Equal(t, layout.Floating, w.Layout, "cycle must wrap back to the start")
}

func TestVisibleMatchesCurrentWorkspaceOrPinned(t *testing.T) {
	onCurrent := &client.Client{Workspace: 2}
	elsewhere := &client.Client{Workspace: 3}
	pinnedElsewhere := &client.Client{Workspace: 3, Pinned: true}

	assert.True(t, Visible(onCurrent, 2))
	assert.False(t, Visible(elsewhere, 2))
	assert.True(t, Visible(pinnedElsewhere, 2))
}

func TestApplyLayoutSkipsHandlesNoLongerInRegistry(t *testing.T) {
	reg := registry.New()
	// Floating keeps Monocle from calling MoveResize, which needs a live
	// X connection this fixture does not have.
	h := reg.Add(&client.Client{Floating: true})
	w := New(0, "I", layout.Monocle, layout.Params{})
	w.Attach(h)
	w.Attach(registry.Handle(9999)) // stale handle, never registered

	// Must not panic despite the stale handle.
	assert.NotPanics(t, func() {
		w.ApplyLayout(reg, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600})
	})
}
