// Package xwindow is a typed facade over raw X window IDs: property
// get/set, geometry, ICCCM class/name/hints, the WM protocol list, and the
// close-window request. Everything above this layer works with a Window
// value instead of a bare xproto.Window id.
package xwindow

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/motif"
	"github.com/jezek/xgbutil/xprop"
	xgbxwindow "github.com/jezek/xgbutil/xwindow"
)

// Window wraps a raw X window id with the connection needed to query it.
type Window struct {
	X  *xgbutil.XUtil
	Id xproto.Window
}

// New wraps an existing window id; it does not create anything on the server.
func New(X *xgbutil.XUtil, id xproto.Window) Window {
	return Window{X: X, Id: id}
}

// ClassHint is the ICCCM WM_CLASS pair (instance, class).
type ClassHint struct {
	Instance string
	Class    string
}

// Class reads WM_CLASS. Either field may be empty if the client never set it.
func (w Window) Class() (ClassHint, error) {
	got, err := icccm.WmClassGet(w.X, w.Id)
	if err != nil || got == nil {
		return ClassHint{}, err
	}
	return ClassHint{Instance: got.Instance, Class: got.Class}, nil
}

// Name reads _NET_WM_NAME, falling back to WM_NAME per ICCCM/EWMH convention.
func (w Window) Name() string {
	if name, err := ewmh.WmNameGet(w.X, w.Id); err == nil && name != "" {
		return name
	}
	name, _ := icccm.WmNameGet(w.X, w.Id)
	return name
}

// Geometry returns the window's current geometry, with x/y relative to its
// parent window (the frame, once reparented).
func (w Window) Geometry() (x, y, width, height int, err error) {
	g, err := xgbxwindow.RawGeometry(w.X, xproto.Drawable(w.Id))
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return g.X(), g.Y(), g.Width(), g.Height(), nil
}

// NormalHints reads WM_NORMAL_HINTS, returning a zero-value hint set (no
// flags set) if the client never installed one; callers must check Flags
// before trusting any field, per ICCCM.
func (w Window) NormalHints() icccm.NormalHints {
	hints, err := icccm.WmNormalHintsGet(w.X, w.Id)
	if err != nil || hints == nil {
		return icccm.NormalHints{}
	}
	return *hints
}

// SetNormalHints installs WM_NORMAL_HINTS, e.g. to clamp a client's
// advertised minimum size to the frame's own floor.
func (w Window) SetNormalHints(hints icccm.NormalHints) error {
	return icccm.WmNormalHintsSet(w.X, w.Id, &hints)
}

// MotifHints reads _MOTIF_WM_HINTS, returning a zero value (decorations
// implicitly requested) if absent.
func (w Window) MotifHints() motif.Hints {
	hints, err := motif.WmHintsGet(w.X, w.Id)
	if err != nil || hints == nil {
		return motif.Hints{}
	}
	return *hints
}

// WantsDecorations reports whether Motif hints request server-side borders.
// Absence of the property means yes, per the Motif convention.
func (w Window) WantsDecorations() bool {
	hints := w.MotifHints()
	return motif.Decor(&hints)
}

// TransientFor reads WM_TRANSIENT_FOR; ok is false if the property is unset.
func (w Window) TransientFor() (xproto.Window, bool) {
	owner, err := icccm.WmTransientForGet(w.X, w.Id)
	if err != nil || owner == 0 {
		return 0, false
	}
	return owner, true
}

// Protocols reads WM_PROTOCOLS, the set of ICCCM client-message protocols
// the client has opted into (WM_DELETE_WINDOW, WM_TAKE_FOCUS, ...).
func (w Window) Protocols() []string {
	protos, err := icccm.WmProtocolsGet(w.X, w.Id)
	if err != nil {
		return nil
	}
	return protos
}

// SupportsProtocol reports whether name is present in WM_PROTOCOLS.
func (w Window) SupportsProtocol(name string) bool {
	for _, p := range w.Protocols() {
		if p == name {
			return true
		}
	}
	return false
}

// Close asks the client to exit: WM_DELETE_WINDOW if it opted in, otherwise
// a forced XKillClient, mirroring the fallback ICCCM expects well-behaved
// window managers to take.
func (w Window) Close() error {
	if w.SupportsProtocol("WM_DELETE_WINDOW") {
		return w.SendDelete()
	}
	return xproto.KillClientChecked(w.X.Conn(), uint32(w.Id)).Check()
}

// SendDelete sends the actual WM_DELETE_WINDOW client message (distinct
// from SupportsProtocol/Close's protocol-list manipulation): this is the
// ICCCM-mandated way to ask a participating client to exit gracefully.
func (w Window) SendDelete() error {
	wmDelete, err := xprop.Atm(w.X, "WM_DELETE_WINDOW")
	if err != nil {
		return err
	}
	return ewmh.ClientEvent(w.X, w.Id, "WM_PROTOCOLS", int(wmDelete), int(xproto.TimeCurrentTime))
}

// Move/Resize/Stack expose the raw configure operations the layout engine
// and client package build on.
func (w Window) MoveResize(x, y, width, height int) error {
	return xproto.ConfigureWindowChecked(w.X.Conn(), w.Id, xproto.ConfigWindowX|xproto.ConfigWindowY|
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(x), uint32(y), uint32(width), uint32(height)}).Check()
}

func (w Window) Raise() error {
	return xproto.ConfigureWindowChecked(w.X.Conn(), w.Id, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove}).Check()
}

func (w Window) Map() error {
	return xproto.MapWindowChecked(w.X.Conn(), w.Id).Check()
}

func (w Window) Unmap() error {
	return xproto.UnmapWindowChecked(w.X.Conn(), w.Id).Check()
}

func (w Window) SetBorderWidth(px uint32) error {
	return xproto.ConfigureWindowChecked(w.X.Conn(), w.Id, xproto.ConfigWindowBorderWidth,
		[]uint32{px}).Check()
}

func (w Window) String() string {
	return fmt.Sprintf("0x%x", uint32(w.Id))
}
