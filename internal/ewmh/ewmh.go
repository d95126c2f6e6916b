// Package ewmh is the root-window and per-client EWMH property surface:
// _NET_CLIENT_LIST(_STACKING), _NET_NUMBER_OF_DESKTOPS, _NET_CURRENT_DESKTOP,
// _NET_DESKTOP_NAMES, _NET_WORKAREA, _NET_ACTIVE_WINDOW and the
// _NET_WM_STATE/_NET_WM_DESKTOP requests clients send back at the window
// manager. The dispatch package routes ClientMessage events here;
// HandleClientMessage decodes them into callbacks and this package sends no
// client messages of its own.
package ewmh

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/xprop"

	"github.com/mars-wm/marswm/internal/geom"
	"github.com/mars-wm/marswm/internal/registry"
)

// ExportClientList writes _NET_CLIENT_LIST and _NET_CLIENT_LIST_STACKING.
// stacking is bottom-to-top, matching the EWMH spec's stacking-order
// requirement; mappingOrder need not match it.
func ExportClientList(X *xgbutil.XUtil, mappingOrder, stacking []xproto.Window) {
	ewmh.ClientListSet(X, mappingOrder)
	ewmh.ClientListStackingSet(X, stacking)
}

// ExportDesktops writes _NET_NUMBER_OF_DESKTOPS and _NET_DESKTOP_NAMES.
func ExportDesktops(X *xgbutil.XUtil, names []string) {
	ewmh.NumberOfDesktopsSet(X, uint(len(names)))
	ewmh.DesktopNamesSet(X, names)
}

// SetCurrentDesktop writes _NET_CURRENT_DESKTOP. The window manager owns
// this property; the matching client message is what pagers send *to* the
// WM, so no notification event is emitted here.
func SetCurrentDesktop(X *xgbutil.XUtil, idx uint) {
	ewmh.CurrentDesktopSet(X, idx)
}

// ClearActiveWindow resets _NET_ACTIVE_WINDOW to None, e.g. after the
// active client is unmanaged.
func ClearActiveWindow(X *xgbutil.XUtil) {
	ewmh.ActiveWindowSet(X, 0)
}

// ExportWorkarea writes one _NET_WORKAREA rectangle per advertised desktop;
// EWMH defines this as per-desktop, not per-monitor, so areas[i] is written
// as desktop i's workarea.
func ExportWorkarea(X *xgbutil.XUtil, areas []geom.Rect) {
	rects := make([]ewmh.Workarea, len(areas))
	for i, a := range areas {
		rects[i] = ewmh.Workarea{X: a.X, Y: a.Y, Width: uint(a.Width), Height: uint(a.Height)}
	}
	ewmh.WorkareaSet(X, rects)
}

// StateAction mirrors the three _NET_WM_STATE client-message actions EWMH
// defines.
type StateAction int

const (
	StateRemove StateAction = 0
	StateAdd    StateAction = 1
	StateToggle StateAction = 2
)

// HandleClientMessage interprets one ClientMessage event against the
// handle it targets. reg resolves the event window to a managed client;
// unrecognized message types and messages for unmanaged windows are no-ops,
// since EWMH pagers routinely message windows the WM never reparented.
func HandleClientMessage(X *xgbutil.XUtil, reg *registry.Registry, msgType string, win xproto.Window, data []uint32,
	onActivate func(registry.Handle), onClose func(registry.Handle),
	onDesktop func(registry.Handle, int), onState func(registry.Handle, StateAction, string, string),
	onCurrentDesktop func(int)) {

	h, known := reg.ByWindow(uint32(win))

	switch msgType {
	case "_NET_ACTIVE_WINDOW":
		if known && onActivate != nil {
			onActivate(h)
		}
	case "_NET_CLOSE_WINDOW":
		if known && onClose != nil {
			onClose(h)
		}
	case "_NET_WM_DESKTOP":
		if known && onDesktop != nil && len(data) > 0 {
			onDesktop(h, int(data[0]))
		}
	case "_NET_CURRENT_DESKTOP":
		if onCurrentDesktop != nil && len(data) > 0 {
			onCurrentDesktop(int(data[0]))
		}
	case "_NET_WM_STATE":
		if known && onState != nil && len(data) >= 2 {
			atom1 := atomName(X, data[1])
			atom2 := ""
			if len(data) >= 3 {
				atom2 = atomName(X, data[2])
			}
			onState(h, StateAction(data[0]), atom1, atom2)
		}
	}
}

// atomName resolves a raw atom id from a client message's data payload back
// to its string name; unresolvable atoms (0, or a server round-trip
// failure) yield "".
func atomName(X *xgbutil.XUtil, id uint32) string {
	if id == 0 {
		return ""
	}
	name, err := xprop.AtomName(X, xproto.Atom(id))
	if err != nil {
		return ""
	}
	return name
}
