// Package desktop holds the Workspace: an ordered client list with its own
// current layout, plus the visibility rule every workspace switch and
// client move enforces (a client is visible only if its workspace is the
// owning monitor's current one, or it is pinned). Workspaces hold
// registry.Handle values, never *client.Client.
package desktop

import (
	"github.com/mars-wm/marswm/internal/client"
	"github.com/mars-wm/marswm/internal/geom"
	"github.com/mars-wm/marswm/internal/layout"
	"github.com/mars-wm/marswm/internal/registry"
)

// Workspace is one of a monitor's named desktops. Clients is ordered
// front-to-back: index 0 is the layout engine's "main" slot candidate and
// the most-recently-focused client after PullFront.
type Workspace struct {
	Index   int
	Name    string
	Clients []registry.Handle
	Layout  layout.Type
	Params  layout.Params
}

func New(index int, name string, defaultLayout layout.Type, params layout.Params) *Workspace {
	return &Workspace{Index: index, Name: name, Layout: defaultLayout, Params: params}
}

// Attach pushes h to the front of the client list, making it the workspace's
// new main client in Stack/Deck/BottomStack layouts.
func (w *Workspace) Attach(h registry.Handle) {
	w.Clients = append([]registry.Handle{h}, w.Clients...)
}

// Detach removes h from the client list, if present.
func (w *Workspace) Detach(h registry.Handle) {
	for i, c := range w.Clients {
		if c == h {
			w.Clients = append(w.Clients[:i], w.Clients[i+1:]...)
			return
		}
	}
}

// Contains reports whether h currently belongs to this workspace.
func (w *Workspace) Contains(h registry.Handle) bool {
	for _, c := range w.Clients {
		if c == h {
			return true
		}
	}
	return false
}

// PullFront moves h to the front of the client list if it is a member,
// promoting it to the main slot the next time the layout is applied.
func (w *Workspace) PullFront(h registry.Handle) {
	for i, c := range w.Clients {
		if c == h {
			w.Clients = append(w.Clients[:i], w.Clients[i+1:]...)
			w.Clients = append([]registry.Handle{h}, w.Clients...)
			return
		}
	}
}

// CycleLayout advances to the next layout.Type in the fixed rotation order.
var cycleOrder = []layout.Type{layout.Floating, layout.Stack, layout.BottomStack, layout.Monocle, layout.Deck}

func (w *Workspace) CycleLayout() {
	cur := 0
	for i, t := range cycleOrder {
		if t == w.Layout {
			cur = i
			break
		}
	}
	w.Layout = cycleOrder[(cur+1)%len(cycleOrder)]
}

// ApplyLayout lays out every member client (via the registry) within
// winArea. Handles the registry no longer resolves are skipped; under the
// Floating layout layout.Apply leaves every geometry unchanged.
func (w *Workspace) ApplyLayout(reg *registry.Registry, winArea geom.Rect) {
	clients := make([]layout.Client, 0, len(w.Clients))
	for _, h := range w.Clients {
		if c := reg.Get(h); c != nil {
			clients = append(clients, c)
		}
	}
	layout.Apply(w.Layout, winArea, clients, w.Params)
}

// Visible reports the visibility rule for a client that belongs to
// workspace workspaceIdx on a monitor whose current workspace is
// currentIdx: visible iff workspaceIdx == currentIdx, or the client is
// pinned (pinned clients ignore workspace membership entirely).
func Visible(c *client.Client, currentIdx int) bool {
	return c.Pinned || c.Workspace == currentIdx
}
