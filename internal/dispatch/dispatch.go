// Package dispatch is the single-threaded event pump: it registers one
// callback per X event type the window manager cares about and hands each
// event to the wm.Controller, translating raw xproto identifiers into
// registry.Handle lookups before calling in. This is the only goroutine
// that ever touches the Controller.
//
// xgbutil routes each event to the callbacks connected on one specific
// window: the parent for MapRequest and ConfigureRequest, the event
// window itself for UnmapNotify, DestroyNotify, ClientMessage and
// PropertyNotify. The root-level connects below catch the pre-manage
// events and connectClient installs the per-client ones.
package dispatch

import (
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/keybind"
	"github.com/jezek/xgbutil/mousebind"
	"github.com/jezek/xgbutil/xevent"
	"github.com/jezek/xgbutil/xprop"

	log "github.com/sirupsen/logrus"

	"github.com/mars-wm/marswm/internal/client"
	wmewmh "github.com/mars-wm/marswm/internal/ewmh"
	"github.com/mars-wm/marswm/internal/geom"
	"github.com/mars-wm/marswm/internal/input"
	"github.com/mars-wm/marswm/internal/keys"
	"github.com/mars-wm/marswm/internal/monitor"
	"github.com/mars-wm/marswm/internal/registry"
	"github.com/mars-wm/marswm/internal/wm"
	"github.com/mars-wm/marswm/internal/xserver"
)

// Dispatcher owns the callback registrations and the keybinding table; it
// holds no state of its own beyond that, deferring every decision to the
// Controller.
type Dispatcher struct {
	conn       *xserver.Conn
	controller *wm.Controller
	bindings   []keys.Binding
}

// New builds a dispatcher around an already-initialized controller and
// the keybinding table the caller assembled.
func New(conn *xserver.Conn, controller *wm.Controller, bindings []keys.Binding) *Dispatcher {
	return &Dispatcher{conn: conn, controller: controller, bindings: bindings}
}

// Run connects every event handler to the root window, manages whatever
// clients already exist (the startup scan), grabs keybindings, and blocks
// in xgbutil's event loop until Quit is called.
func (d *Dispatcher) Run() {
	X := d.conn.X
	root := d.conn.Root

	xevent.MapRequestFun(d.onMapRequest).Connect(X, root)
	xevent.ConfigureRequestFun(d.onConfigureRequest).Connect(X, root)
	xevent.ConfigureNotifyFun(d.onRootConfigureNotify).Connect(X, root)
	xevent.ClientMessageFun(d.onClientMessage).Connect(X, root)

	if d.conn.HasRandR {
		xevent.HookFun(d.onRandrEvent).Connect(X)
	}

	keybind.Initialize(X)
	mousebind.Initialize(X)
	d.grabKeys(root)

	d.manageExisting()
	d.controller.Init()

	log.Info("Entering event loop")
	xevent.Main(X)
}

// Stop asks the event loop to return, implementing the ActionQuit keybinding
// and any future graceful-shutdown path.
func (d *Dispatcher) Stop() {
	xevent.Quit(d.conn.X)
}

// manageExisting walks the root window's existing children once at
// startup: a WM started after other clients are already mapped must adopt
// them instead of leaving them unmanaged.
func (d *Dispatcher) manageExisting() {
	xproto.GrabServer(d.conn.X.Conn())
	defer xproto.UngrabServer(d.conn.X.Conn())

	tree, err := xproto.QueryTree(d.conn.X.Conn(), d.conn.Root).Reply()
	if err != nil {
		log.Warn("QueryTree failed during startup scan: ", err)
		return
	}
	for _, win := range tree.Children {
		attrs, err := xproto.GetWindowAttributes(d.conn.X.Conn(), win).Reply()
		if err != nil || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		d.manageWindow(win)
	}
}

// manageWindow runs the controller's manage path and wires whatever event
// connections the outcome needs: frame/client callbacks for a managed
// client, a destroy watch for a dock.
func (d *Dispatcher) manageWindow(win xproto.Window) {
	if h, ok := d.controller.Manage(win); ok {
		d.connectClient(h)
		return
	}
	if d.controller.IsDock(win) {
		xevent.DestroyNotifyFun(d.onDestroyNotify).Connect(d.conn.X, win)
	}
}

// grabKeys connects one KeyPressFun per binding. keybind grabs each spec
// with every CapsLock/NumLock combination internally, so one Connect per
// binding is enough for it to fire regardless of either lock's state.
func (d *Dispatcher) grabKeys(root xproto.Window) {
	for _, b := range d.bindings {
		binding := b
		err := keybind.KeyPressFun(func(X *xgbutil.XUtil, e xevent.KeyPressEvent) {
			d.onAction(binding)
		}).Connect(d.conn.X, root, binding.Spec, true)
		if err != nil {
			log.Warn("Failed to bind ", binding.Spec, ": ", err)
		}
	}
}

func (d *Dispatcher) onAction(b keys.Binding) {
	switch b.Action {
	case keys.ActionQuit:
		d.Stop()
	case keys.ActionSwitchWorkspace:
		d.controller.SwitchWorkspace(nil, b.Workspace)
	case keys.ActionMoveToWorkspace:
		if h := d.activeHandle(); h != nil {
			d.controller.MoveToWorkspace(*h, b.Workspace)
		}
	case keys.ActionCloseWindow:
		if h := d.activeHandle(); h != nil {
			d.controller.Close(*h)
		}
	case keys.ActionToggleFullscreen:
		if h := d.activeHandle(); h != nil {
			d.controller.ToggleFullscreen(*h)
		}
	case keys.ActionTogglePinned:
		if h := d.activeHandle(); h != nil {
			cl := d.controller.Registry.Get(*h)
			if cl != nil {
				d.controller.Pin(*h, !cl.Pinned)
			}
		}
	case keys.ActionToggleFloating:
		if h := d.activeHandle(); h != nil {
			d.controller.ToggleFloating(*h)
		}
	case keys.ActionCycleLayout:
		if mon := d.primaryMonitor(); mon != nil {
			mon.CurrentWorkspace().CycleLayout()
			mon.ApplyCurrentLayout(d.controller.Registry)
		}
	case keys.ActionPullFront:
		if h := d.activeHandle(); h != nil {
			if mon := d.primaryMonitor(); mon != nil {
				mon.CurrentWorkspace().PullFront(*h)
				mon.ApplyCurrentLayout(d.controller.Registry)
			}
		}
	case keys.ActionFocusNext:
		d.cycleFocus(1)
	case keys.ActionFocusPrev:
		d.cycleFocus(-1)
	case keys.ActionIncMainCount:
		d.adjustMainCount(1)
	case keys.ActionDecMainCount:
		d.adjustMainCount(-1)
	default:
		log.Debug("Unhandled keybinding action: ", b.Action)
	}
}

func (d *Dispatcher) activeHandle() *registry.Handle {
	return d.controller.Active
}

// cycleFocus moves focus to the client before/after the active one in the
// current workspace's client order, wrapping around; dir is +1 or -1.
func (d *Dispatcher) cycleFocus(dir int) {
	mon := d.primaryMonitor()
	if mon == nil {
		return
	}
	ws := mon.CurrentWorkspace()
	n := len(ws.Clients)
	if n == 0 {
		return
	}
	idx := 0
	if h := d.activeHandle(); h != nil {
		for i, c := range ws.Clients {
			if c == *h {
				idx = i
				break
			}
		}
	}
	next := ((idx+dir)%n + n) % n
	d.controller.Focus(ws.Clients[next])
}

// adjustMainCount nudges the current workspace's main-area client count by
// delta, floored at zero, and re-applies layout.
func (d *Dispatcher) adjustMainCount(delta int) {
	mon := d.primaryMonitor()
	if mon == nil {
		return
	}
	ws := mon.CurrentWorkspace()
	ws.Params.NMain += delta
	if ws.Params.NMain < 0 {
		ws.Params.NMain = 0
	}
	mon.ApplyCurrentLayout(d.controller.Registry)
}

func (d *Dispatcher) primaryMonitor() *monitor.Monitor {
	return d.controller.Monitors.Primary()
}

// connectClient wires the per-window callbacks a freshly managed client
// needs: entering the frame focuses its client, button 1/3 drive
// raise+move/raise+resize via input.BindMove/BindResize, and the
// lifecycle/property events dispatch on the client window itself. Frame
// creation already selected the needed event masks (client.Manage), so
// these callbacks only need connecting.
func (d *Dispatcher) connectClient(h registry.Handle) {
	cl := d.controller.Registry.Get(h)
	if cl == nil {
		return
	}
	X := d.conn.X

	xevent.EnterNotifyFun(func(X *xgbutil.XUtil, e xevent.EnterNotifyEvent) {
		d.controller.Focus(h)
	}).Connect(X, cl.Frame)

	xevent.UnmapNotifyFun(d.onUnmapNotify).Connect(X, cl.Window.Id)
	xevent.DestroyNotifyFun(d.onDestroyNotify).Connect(X, cl.Window.Id)
	xevent.ClientMessageFun(d.onClientMessage).Connect(X, cl.Window.Id)
	xevent.ConfigureRequestFun(d.onConfigureRequest).Connect(X, cl.Frame)
	xevent.PropertyNotifyFun(d.onClientProperty).Connect(X, cl.Window.Id)

	input.BindMove(X, cl.Frame, cl, func(center geom.Point) {
		if dst := d.controller.Monitors.AtPoint(center); dst != nil {
			d.controller.MoveToMonitor(h, dst)
		}
	})
	input.BindResize(X, cl.Frame, cl)
}

func (d *Dispatcher) onMapRequest(X *xgbutil.XUtil, e xevent.MapRequestEvent) {
	d.manageWindow(e.Window)
}

// unmapOutcome is what an UnmapNotify for a managed client means.
type unmapOutcome int

const (
	unmapSwallowReparent unmapOutcome = iota // our own reparent generated it; clear the flag and ignore
	unmapWithdraw                            // ICCCM synthetic withdraw; mark withdrawn, keep managed
	unmapUnmanage                            // the client really unmapped
)

// classifyUnmap splits UnmapNotify three ways: the unmap generated by our
// own reparent is swallowed once, an unmap delivered to the root window is
// the ICCCM synthetic withdraw (clients send those to root; real unmaps of
// a reparented window arrive via the frame's SubstructureNotify), and
// anything else means the client really unmapped.
func classifyUnmap(reparenting bool, eventWin, root xproto.Window) unmapOutcome {
	if reparenting {
		return unmapSwallowReparent
	}
	if eventWin == root {
		return unmapWithdraw
	}
	return unmapUnmanage
}

func (d *Dispatcher) onUnmapNotify(X *xgbutil.XUtil, e xevent.UnmapNotifyEvent) {
	h, ok := d.controller.Registry.ByWindow(uint32(e.Window))
	if !ok {
		return
	}
	cl := d.controller.Registry.Get(h)
	if cl == nil {
		return
	}
	switch classifyUnmap(cl.Reparenting, e.Event, d.conn.Root) {
	case unmapSwallowReparent:
		cl.Reparenting = false
	case unmapWithdraw:
		cl.SetWithdrawn()
		cl.Visible = false
	case unmapUnmanage:
		d.controller.Unmanage(h)
	}
}

func (d *Dispatcher) onDestroyNotify(X *xgbutil.XUtil, e xevent.DestroyNotifyEvent) {
	if h, ok := d.controller.Registry.ByWindow(uint32(e.Window)); ok {
		d.controller.Unmanage(h)
		return
	}
	d.controller.UnregisterDock(e.Window)
}

// innerRect is the content-area rectangle the client perceives: the frame
// rect inset by the total border width (inner + frame padding + outer) on
// each side. Configure requests talk in these coordinates, not frame ones.
func innerRect(g geom.Rect, b client.Borders) geom.Rect {
	t := int(b.Inner + b.Frame + b.Outer)
	return g.Shrink(t, t, t, t)
}

// applyConfigureRequest merges the requested components into the client's
// inner geometry, converts the result back to a frame rect with the border
// arithmetic reversed, and reports whether the request actually changes the
// frame's position or size. moved/resized distinguish the two: a move-only
// request may not generate a real ConfigureNotify (the client window never
// moves inside its frame), so the caller answers it synthetically.
func applyConfigureRequest(current geom.Rect, b client.Borders, mask uint16, x, y, w, h int) (frame geom.Rect, moved, resized bool) {
	inner := innerRect(current, b)
	req := inner
	if mask&xproto.ConfigWindowX != 0 {
		req.X = x
	}
	if mask&xproto.ConfigWindowY != 0 {
		req.Y = y
	}
	if mask&xproto.ConfigWindowWidth != 0 {
		req.Width = w
	}
	if mask&xproto.ConfigWindowHeight != 0 {
		req.Height = h
	}

	t := int(b.Inner + b.Frame + b.Outer)
	frame = geom.Rect{
		X:      req.X - t,
		Y:      req.Y - t,
		Width:  req.Width + 2*t,
		Height: req.Height + 2*t,
	}
	moved = req.X != inner.X || req.Y != inner.Y
	resized = req.Width != inner.Width || req.Height != inner.Height
	return frame, moved, resized
}

// passThroughValues rebuilds the (mask, values) pair of an unmanaged
// window's configure request so it can be forwarded to the server verbatim.
func passThroughValues(e xevent.ConfigureRequestEvent) (uint16, []uint32) {
	mask := uint16(0)
	values := []uint32{}
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		mask |= xproto.ConfigWindowX
		values = append(values, uint32(e.X))
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		mask |= xproto.ConfigWindowY
		values = append(values, uint32(e.Y))
	}
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		mask |= xproto.ConfigWindowWidth
		values = append(values, uint32(e.Width))
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		mask |= xproto.ConfigWindowHeight
		values = append(values, uint32(e.Height))
	}
	return mask, values
}

// onConfigureRequest honors a not-yet-managed client's own geometry
// request verbatim (ICCCM requires every request get a reply even when
// unmanaged). A managed client's components are interpreted against its
// inner geometry and converted to a frame move/resize; when no resize
// resulted (a no-op request, or a pure move, which never changes the
// client window's position inside its frame), the client is answered with
// a synthetic ConfigureNotify carrying its inner geometry instead.
func (d *Dispatcher) onConfigureRequest(X *xgbutil.XUtil, e xevent.ConfigureRequestEvent) {
	h, known := d.controller.Registry.ByWindow(uint32(e.Window))
	if !known {
		mask, values := passThroughValues(e)
		if mask != 0 {
			xproto.ConfigureWindow(X.Conn(), e.Window, mask, values)
		}
		return
	}

	cl := d.controller.Registry.Get(h)
	if cl == nil {
		return
	}
	g, moved, resized := applyConfigureRequest(cl.Geometry, cl.Borders,
		e.ValueMask, int(e.X), int(e.Y), int(e.Width), int(e.Height))
	if moved || resized {
		cl.MoveResize(g.X, g.Y, g.Width, g.Height)
	}
	if !resized {
		d.sendSyntheticConfigure(cl)
	}
}

// sendSyntheticConfigure tells the client where its content area sits in
// root coordinates, for requests the server will not answer with a real
// ConfigureNotify.
func (d *Dispatcher) sendSyntheticConfigure(cl *client.Client) {
	inner := innerRect(cl.Geometry, cl.Borders)
	ev := xproto.ConfigureNotifyEvent{
		Event:            cl.Window.Id,
		Window:           cl.Window.Id,
		AboveSibling:     0,
		X:                int16(inner.X),
		Y:                int16(inner.Y),
		Width:            uint16(inner.Width),
		Height:           uint16(inner.Height),
		BorderWidth:      uint16(cl.Borders.Inner),
		OverrideRedirect: false,
	}
	xproto.SendEvent(d.conn.X.Conn(), false, cl.Window.Id,
		xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

// onRootConfigureNotify re-queries the monitor layout on a root geometry
// change, the fallback path for servers without XRandR; with XRandR
// available the notify hook below carries the same signal.
func (d *Dispatcher) onRootConfigureNotify(X *xgbutil.XUtil, e xevent.ConfigureNotifyEvent) {
	if e.Window != d.conn.Root || d.conn.HasRandR {
		return
	}
	d.reconfigureMonitors()
}

// onRandrEvent catches the RandR extension events xgbutil's typed callbacks
// don't cover; hooks run for every event before normal dispatch.
func (d *Dispatcher) onRandrEvent(X *xgbutil.XUtil, ev interface{}) bool {
	switch ev.(type) {
	case randr.ScreenChangeNotifyEvent, randr.NotifyEvent:
		d.reconfigureMonitors()
	}
	return true
}

func (d *Dispatcher) reconfigureMonitors() {
	cfg := d.controller.Config
	next, err := monitor.Query(d.conn.X, cfg.EdgeMargin, cfg.EdgeMarginPrimary)
	if err != nil {
		log.Warn("Monitor re-query failed: ", err)
		return
	}
	d.controller.ReconfigureMonitors(next)
}

func (d *Dispatcher) onClientMessage(X *xgbutil.XUtil, e xevent.ClientMessageEvent) {
	name, err := xprop.AtomName(X, e.Type)
	if err != nil {
		return
	}
	data := e.Data.Data32
	wmewmh.HandleClientMessage(X, d.controller.Registry, name, e.Window, data[:],
		d.controller.Activate,
		d.controller.Close,
		d.onDesktopMessage,
		func(h registry.Handle, action wmewmh.StateAction, a1, a2 string) {
			d.onWmState(h, action, a1, a2)
		},
		func(idx int) { d.controller.SwitchWorkspace(nil, idx) },
	)
}

// desktopTarget interprets a _NET_WM_DESKTOP payload: ok is false for the
// all-desktops sentinel (0xFFFFFFFF, pin the client), true for a workspace
// index.
func desktopTarget(idx int) (int, bool) {
	if uint32(idx) == 0xFFFFFFFF {
		return 0, false
	}
	return idx, true
}

// onDesktopMessage implements the _NET_WM_DESKTOP(i) client message: the
// all-desktops sentinel pins the client, any other valid index moves it
// and clears pinned.
func (d *Dispatcher) onDesktopMessage(h registry.Handle, idx int) {
	target, ok := desktopTarget(idx)
	if !ok {
		d.controller.Pin(h, true)
		return
	}
	d.controller.Pin(h, false)
	d.controller.MoveToWorkspace(h, target)
}

// onWmState interprets a _NET_WM_STATE client message's one or two state
// atoms, the only two this window manager exposes: fullscreen and tiled.
func (d *Dispatcher) onWmState(h registry.Handle, action wmewmh.StateAction, a1, a2 string) {
	cl := d.controller.Registry.Get(h)
	if cl == nil {
		return
	}
	for _, atomName := range [2]string{a1, a2} {
		switch atomName {
		case "_NET_WM_STATE_FULLSCREEN":
			d.applyState(action, cl.Fullscreen, func(on bool) { d.controller.SetFullscreen(h, on) })
		case "_MARS_WM_STATE_TILED":
			// Adding _MARS_WM_STATE_TILED means tile (un-float), removing it
			// means float; the current state is read from Floating.
			d.applyState(action, !cl.Floating, func(tiled bool) { d.controller.SetFloating(h, !tiled) })
		}
	}
}

func (d *Dispatcher) applyState(action wmewmh.StateAction, current bool, set func(bool)) {
	switch action {
	case wmewmh.StateAdd:
		set(true)
	case wmewmh.StateRemove:
		set(false)
	case wmewmh.StateToggle:
		set(!current)
	}
}

// onClientProperty refreshes the cached title when a managed client
// rewrites WM_NAME/_NET_WM_NAME.
func (d *Dispatcher) onClientProperty(X *xgbutil.XUtil, e xevent.PropertyNotifyEvent) {
	h, ok := d.controller.Registry.ByWindow(uint32(e.Window))
	if !ok {
		return
	}
	cl := d.controller.Registry.Get(h)
	if cl == nil {
		return
	}
	name, err := xprop.AtomName(X, e.Atom)
	if err != nil {
		return
	}
	if name == "WM_NAME" || name == "_NET_WM_NAME" {
		cl.Name = cl.Window.Name()
	}
}
