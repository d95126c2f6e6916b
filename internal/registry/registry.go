// Package registry is the client arena: a stable Handle per managed
// client. Workspaces and monitors hold Handles, not *client.Client
// pointers, so a client can move between them without any aliasing
// concerns; the registry is the only place that owns the pointer.
package registry

import "github.com/mars-wm/marswm/internal/client"

// Handle identifies a managed client independent of its current workspace
// or monitor. Handles are never reused within a process lifetime.
type Handle uint64

// Registry is the single arena of managed clients, keyed by window id for
// O(1) event dispatch and by Handle for everything else.
type Registry struct {
	next    Handle
	clients map[Handle]*client.Client
	byFrame map[uint32]Handle
	byWin   map[uint32]Handle
}

func New() *Registry {
	return &Registry{
		next:    1,
		clients: make(map[Handle]*client.Client),
		byFrame: make(map[uint32]Handle),
		byWin:   make(map[uint32]Handle),
	}
}

// Add inserts c and returns its new Handle.
func (r *Registry) Add(c *client.Client) Handle {
	h := r.next
	r.next++
	r.clients[h] = c
	r.byFrame[uint32(c.Frame)] = h
	r.byWin[uint32(c.Window.Id)] = h
	return h
}

// Remove deletes h from the arena. The caller must have already removed it
// from any workspace/monitor that referenced it.
func (r *Registry) Remove(h Handle) {
	c, ok := r.clients[h]
	if !ok {
		return
	}
	delete(r.byFrame, uint32(c.Frame))
	delete(r.byWin, uint32(c.Window.Id))
	delete(r.clients, h)
}

// Get resolves a Handle to its Client, or nil if it no longer exists.
func (r *Registry) Get(h Handle) *client.Client {
	return r.clients[h]
}

// ByFrame resolves an X frame window id to its Handle, as needed when
// dispatching events that only carry a raw window id.
func (r *Registry) ByFrame(frame uint32) (Handle, bool) {
	h, ok := r.byFrame[frame]
	return h, ok
}

// ByWindow resolves a client's original (reparented) window id to its Handle.
func (r *Registry) ByWindow(win uint32) (Handle, bool) {
	h, ok := r.byWin[win]
	return h, ok
}

// All returns every live handle, in no particular order.
func (r *Registry) All() []Handle {
	out := make([]Handle, 0, len(r.clients))
	for h := range r.clients {
		out = append(out, h)
	}
	return out
}

// Len reports how many clients are currently managed.
func (r *Registry) Len() int {
	return len(r.clients)
}
