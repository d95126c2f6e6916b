// Package wm is the top-level controller: it ties the registry,
// monitor/workspace hierarchy, layout engine, client lifecycle and EWMH
// surface together into the manage/unmanage/activate/fullscreen/pin/tile/
// move/resize/switch-workspace/reconfigure-monitor operations the
// dispatcher drives.
package wm

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/xevent"

	log "github.com/sirupsen/logrus"

	"github.com/mars-wm/marswm/internal/client"
	"github.com/mars-wm/marswm/internal/config"
	"github.com/mars-wm/marswm/internal/desktop"
	wmewmh "github.com/mars-wm/marswm/internal/ewmh"
	"github.com/mars-wm/marswm/internal/geom"
	"github.com/mars-wm/marswm/internal/input"
	"github.com/mars-wm/marswm/internal/monitor"
	"github.com/mars-wm/marswm/internal/registry"
	"github.com/mars-wm/marswm/internal/rules"
	"github.com/mars-wm/marswm/internal/xserver"
)

// Controller owns every piece of mutable WM state and is the only thing the
// dispatch package calls into. It is not safe for concurrent use; exactly
// one goroutine (the dispatcher) ever touches it.
type Controller struct {
	Conn     *xserver.Conn
	Config   *config.Config
	Registry *registry.Registry
	Monitors *monitor.Set
	Rules    rules.Set

	Active *registry.Handle

	// docks maps a dock window to the strut it contributes, so a dock's
	// DestroyNotify can recompute every monitor's workarea without it.
	docks map[xproto.Window]geom.Struts
}

// New builds a Controller around an already-queried monitor set, giving
// every monitor its fixed workspace ring per cfg.
func New(conn *xserver.Conn, cfg *config.Config, monitors *monitor.Set, ruleSet rules.Set) *Controller {
	for _, m := range monitors.Monitors {
		m.InitWorkspaces(cfg.WorkspaceNames, cfg.Layout.DefaultLayout, cfg.Layout)
	}
	return &Controller{
		Conn:     conn,
		Config:   cfg,
		Registry: registry.New(),
		Monitors: monitors,
		Rules:    ruleSet,
		docks:    make(map[xproto.Window]geom.Struts),
	}
}

// Init exports the desktop names/count/current-desktop EWMH state that must
// be in place before the event loop starts accepting ClientMessages.
func (c *Controller) Init() {
	wmewmh.ExportDesktops(c.Conn.X, c.Config.WorkspaceNames)
	wmewmh.SetCurrentDesktop(c.Conn.X, 0)
	c.ExportWorkarea()
	c.ExportClientList()
}

// windowType classifies a not-yet-managed window by _NET_WM_WINDOW_TYPE.
// A window can carry several types; the first recognized one wins.
type windowType int

const (
	typeNormal windowType = iota
	typeDesktop
	typeDialog
	typeDock
	typeMenu
	typeNotification
)

func classify(types []string) windowType {
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_DESKTOP":
			return typeDesktop
		case "_NET_WM_WINDOW_TYPE_DIALOG":
			return typeDialog
		case "_NET_WM_WINDOW_TYPE_DOCK":
			return typeDock
		case "_NET_WM_WINDOW_TYPE_MENU":
			return typeMenu
		case "_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return typeNotification
		}
	}
	return typeNormal
}

// Manage adopts a top-level window: classify the window type, early-return
// for desktop/dock/menu/notification windows (mapping them without ever
// creating a managed Client), then reparent, apply hints, route to a
// workspace by rule or _NET_WM_DESKTOP, and re-export state.
func (c *Controller) Manage(win xproto.Window) (registry.Handle, bool) {
	if win == c.Conn.CheckWin {
		return 0, false
	}
	attrs, err := xproto.GetWindowAttributes(c.Conn.X.Conn(), win).Reply()
	if err != nil {
		log.Warn("GetWindowAttributes failed for ", win, ": ", err)
		return 0, false
	}
	if attrs.OverrideRedirect {
		return 0, false
	}

	types, _ := ewmh.WmWindowTypeGet(c.Conn.X, win)
	wt := classify(types)
	switch wt {
	case typeDesktop:
		xproto.MapWindow(c.Conn.X.Conn(), win)
		xproto.ConfigureWindow(c.Conn.X.Conn(), win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeBelow})
		return 0, false
	case typeDock:
		xproto.MapWindow(c.Conn.X.Conn(), win)
		xproto.ConfigureWindow(c.Conn.X.Conn(), win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
		c.registerDock(win)
		return 0, false
	case typeMenu, typeNotification:
		xproto.MapWindow(c.Conn.X.Conn(), win)
		xproto.ConfigureWindow(c.Conn.X.Conn(), win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
		return 0, false
	}

	isDialog := wt == typeDialog
	borders := client.Borders{Inner: c.Config.Borders.Inner, Frame: c.Config.Borders.Frame, Outer: c.Config.Borders.Outer}
	if !c.Config.WindowDecoration {
		borders = client.Borders{}
	}

	cl, err := client.Manage(c.Conn.X, c.Conn.Root, win, borders, isDialog,
		attrs.MapState == xproto.MapStateViewable)
	if err != nil {
		log.Warn("Failed to manage window ", win, ": ", err)
		xproto.MapWindow(c.Conn.X.Conn(), win)
		return 0, false
	}
	if c.Config.IsIgnored(cl.Class, cl.Name) {
		log.Debug("Ignoring window per WindowIgnore config: ", cl.Class)
		cl.Unmanage(c.Conn.Root)
		xproto.MapWindow(c.Conn.X.Conn(), win)
		return 0, false
	}

	cl.ApplyMotifHints()
	if !cl.Decorate {
		cl.Borders = client.Borders{}
	}
	cl.ApplySizeHints()

	h := c.Registry.Add(cl)

	action, matched := c.Rules.FirstMatch(cl)
	pinned := matched && action.Pinned
	targetWorkspace := -1
	if matched && action.Workspace != nil {
		targetWorkspace = *action.Workspace
	}

	if !matched {
		if desktop, derr := ewmh.WmDesktopGet(c.Conn.X, win); derr == nil {
			if desktop == 0xFFFFFFFF {
				pinned = true
			} else if int(desktop) < len(c.Monitors.Primary().Workspaces) {
				targetWorkspace = int(desktop)
			}
		}
	}

	mon := c.Monitors.Primary()
	mon.AttachClient(c.Registry, h)
	if targetWorkspace >= 0 && targetWorkspace < len(mon.Workspaces) && targetWorkspace != mon.Current {
		mon.MoveToWorkspace(c.Registry, h, targetWorkspace)
	}
	if pinned {
		cl.ExportPinned(true, cl.Workspace)
	}
	if matched && action.Floating {
		cl.SetFloating(true)
	}

	cl.MoveResize(cl.Geometry.X, cl.Geometry.Y, cl.Geometry.Width, cl.Geometry.Height)
	if desktop.Visible(cl, mon.Current) {
		cl.Show()
		cl.Raise()
	}

	c.ExportClientList()
	mon.ApplyCurrentLayout(c.Registry)

	if matched && action.Fullscreen {
		c.SetFullscreen(h, true)
	}
	return h, true
}

// registerDock records a dock's strut contribution and recomputes every
// monitor's workarea.
func (c *Controller) registerDock(win xproto.Window) {
	partial, err := ewmh.WmStrutPartialGet(c.Conn.X, win)
	var s geom.Struts
	if err == nil {
		s = geom.Struts{Left: int(partial.Left), Right: int(partial.Right), Top: int(partial.Top), Bottom: int(partial.Bottom)}
	}
	c.docks[win] = s
	c.recomputeAllStruts()
}

// IsDock reports whether win is a registered dock window, so the
// dispatcher can watch it for DestroyNotify despite it never becoming a
// managed client.
func (c *Controller) IsDock(win xproto.Window) bool {
	_, ok := c.docks[win]
	return ok
}

// UnregisterDock drops a destroyed dock's strut contribution.
func (c *Controller) UnregisterDock(win xproto.Window) {
	if _, ok := c.docks[win]; !ok {
		return
	}
	delete(c.docks, win)
	c.recomputeAllStruts()
}

func (c *Controller) recomputeAllStruts() {
	var total geom.Struts
	for _, s := range c.docks {
		total.Left += s.Left
		total.Right += s.Right
		total.Top += s.Top
		total.Bottom += s.Bottom
	}
	for _, m := range c.Monitors.Monitors {
		m.SetStruts(total)
		m.ApplyCurrentLayout(c.Registry)
	}
	c.ExportWorkarea()
}

// Unmanage detaches the client from every workspace/monitor, clears
// active-focus tracking, writes WM_STATE = Withdrawn, and drops it from
// the registry (reparenting back to root and destroying the frame), then
// re-exports client lists and re-applies layout.
func (c *Controller) Unmanage(h registry.Handle) {
	cl := c.Registry.Get(h)
	if cl == nil {
		return
	}
	for _, m := range c.Monitors.Monitors {
		m.DetachClient(h)
	}
	if c.Active != nil && *c.Active == h {
		c.Active = nil
		wmewmh.ClearActiveWindow(c.Conn.X)
	}

	cl.SetWithdrawn()
	input.Unbind(c.Conn.X, cl.Frame)
	xevent.Detach(c.Conn.X, cl.Frame)
	xevent.Detach(c.Conn.X, cl.Window.Id)
	cl.Unmanage(c.Conn.Root)
	c.Registry.Remove(h)

	c.ExportClientList()
	c.Monitors.Primary().ApplyCurrentLayout(c.Registry)
}

// Close asks the client to exit gracefully, or kills it if it never
// registered WM_DELETE_WINDOW.
func (c *Controller) Close(h registry.Handle) {
	cl := c.Registry.Get(h)
	if cl == nil {
		return
	}
	if err := cl.Close(); err != nil {
		log.Warn("Close failed for handle ", h, ": ", err)
	}
}

// ToggleFullscreen flips fullscreen state per the _NET_WM_STATE toggle
// action (mode=2).
func (c *Controller) ToggleFullscreen(h registry.Handle) {
	cl := c.Registry.Get(h)
	if cl == nil {
		return
	}
	c.SetFullscreen(h, !cl.Fullscreen)
}

// SetFullscreen enters or exits fullscreen for h, using the owning
// monitor's full rectangle (fullscreen covers docks, not just the
// workarea).
func (c *Controller) SetFullscreen(h registry.Handle, on bool) {
	cl := c.Registry.Get(h)
	if cl == nil {
		return
	}
	mon := c.monitorOf(h)
	if mon == nil {
		mon = c.Monitors.Primary()
	}
	if on {
		cl.SetFullscreen(mon.Full)
	} else {
		cl.UnsetFullscreen()
	}
}

// Pin toggles whether h stays visible across workspace switches.
// Unpinning sends the client to its monitor's current workspace, so it
// doesn't vanish the moment the visibility rule stops special-casing it.
func (c *Controller) Pin(h registry.Handle, pinned bool) {
	cl := c.Registry.Get(h)
	if cl == nil {
		return
	}
	cl.ExportPinned(pinned, cl.Workspace)
	if !pinned {
		if mon := c.monitorOf(h); mon != nil {
			mon.MoveToWorkspace(c.Registry, h, mon.Current)
			mon.ApplyCurrentLayout(c.Registry)
		}
	}
}

// SetFloating toggles whether h is excluded from its workspace's tiling
// stackers, re-applying layout on its owning monitor so the change takes
// effect immediately.
func (c *Controller) SetFloating(h registry.Handle, on bool) {
	cl := c.Registry.Get(h)
	if cl == nil {
		return
	}
	cl.SetFloating(on)
	if mon := c.monitorOf(h); mon != nil {
		mon.ApplyCurrentLayout(c.Registry)
	}
}

// ToggleFloating flips h's floating state.
func (c *Controller) ToggleFloating(h registry.Handle) {
	cl := c.Registry.Get(h)
	if cl == nil {
		return
	}
	c.SetFloating(h, !cl.Floating)
}

func (c *Controller) monitorOf(h registry.Handle) *monitor.Monitor {
	for _, m := range c.Monitors.Monitors {
		if m.Contains(h) {
			return m
		}
	}
	return nil
}

// SwitchWorkspace switches a monitor's current workspace; a nil mon means
// the primary monitor. Activate passes the monitor that holds the client
// being activated.
func (c *Controller) SwitchWorkspace(mon *monitor.Monitor, idx int) {
	if mon == nil {
		mon = c.Monitors.Primary()
	}
	if !mon.SwitchWorkspace(c.Registry, idx) {
		return
	}
	wmewmh.SetCurrentDesktop(c.Conn.X, uint(idx))
	mon.ApplyCurrentLayout(c.Registry)
}

// MoveToWorkspace sends h to another workspace on its monitor. Only the
// current workspace needs an immediate re-layout: if idx isn't current,
// SwitchWorkspace re-applies layout for it the moment it becomes visible,
// so there is no stale geometry to fix up here.
func (c *Controller) MoveToWorkspace(h registry.Handle, idx int) {
	mon := c.monitorOf(h)
	if mon == nil {
		return
	}
	mon.MoveToWorkspace(c.Registry, h, idx)
	mon.ApplyCurrentLayout(c.Registry)
}

// MoveToMonitor detaches h from every workspace of its current monitor
// and attaches it to dst's current workspace, the hand-off a mouse drag
// across a monitor boundary triggers.
func (c *Controller) MoveToMonitor(h registry.Handle, dst *monitor.Monitor) {
	src := c.monitorOf(h)
	if src == nil || src == dst {
		return
	}
	src.DetachClient(h)
	dst.AttachClient(c.Registry, h)
	src.ApplyCurrentLayout(c.Registry)
	dst.ApplyCurrentLayout(c.Registry)
}

// Activate implements _NET_ACTIVE_WINDOW: switch to h's workspace if
// needed, then focus it.
func (c *Controller) Activate(h registry.Handle) {
	cl := c.Registry.Get(h)
	if cl == nil {
		return
	}
	mon := c.monitorOf(h)
	if mon != nil {
		c.SwitchWorkspace(mon, cl.Workspace)
	}
	c.Focus(h)
}

// Focus gives input focus to h and records it as the active client.
func (c *Controller) Focus(h registry.Handle) {
	cl := c.Registry.Get(h)
	if cl == nil {
		return
	}
	cl.Focus()
	hh := h
	c.Active = &hh
}

// ExportClientList re-derives _NET_CLIENT_LIST(_STACKING) from every
// registered client; the exported set always equals the full managed set.
// Both lists are written in the registry's iteration order; neither is
// sorted by mapping or stacking order.
func (c *Controller) ExportClientList() {
	handles := c.Registry.All()
	wins := make([]xproto.Window, 0, len(handles))
	for _, h := range handles {
		if cl := c.Registry.Get(h); cl != nil {
			wins = append(wins, cl.Window.Id)
		}
	}
	wmewmh.ExportClientList(c.Conn.X, wins, wins)
}

// ExportWorkarea writes one _NET_WORKAREA entry per advertised desktop,
// each set to the primary monitor's workarea (EWMH defines workarea per
// desktop number, not per monitor).
func (c *Controller) ExportWorkarea() {
	mon := c.Monitors.Primary()
	areas := make([]geom.Rect, len(mon.Workspaces))
	for i := range areas {
		areas[i] = mon.Workarea
	}
	wmewmh.ExportWorkarea(c.Conn.X, areas)
}

// ReconfigureMonitors replaces the monitor set after an RRNotify event,
// rehoming clients from any monitor that disappeared onto the last
// surviving monitor, and carries forward the workspace state of monitors
// that persist by name.
func (c *Controller) ReconfigureMonitors(next *monitor.Set) {
	if len(next.Monitors) == 0 {
		return
	}

	byName := make(map[string]*monitor.Monitor)
	for _, m := range c.Monitors.Monitors {
		byName[m.Name] = m
	}

	for _, nm := range next.Monitors {
		if old, ok := byName[nm.Name]; ok {
			nm.Workspaces = old.Workspaces
			nm.Current = old.Current
			nm.Previous = old.Previous
			delete(byName, nm.Name)
		} else {
			nm.InitWorkspaces(c.Config.WorkspaceNames, c.Config.Layout.DefaultLayout, c.Config.Layout)
		}
	}

	survivor := next.Monitors[len(next.Monitors)-1]
	for _, gone := range byName {
		for _, ws := range gone.Workspaces {
			for _, h := range append([]registry.Handle(nil), ws.Clients...) {
				ws.Detach(h)
				survivor.AttachClient(c.Registry, h)
			}
		}
	}

	c.Monitors = next
	c.recomputeAllStruts()
	for _, m := range c.Monitors.Monitors {
		m.ApplyCurrentLayout(c.Registry)
	}
}
