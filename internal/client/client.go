// Package client is the per-window record and its lifecycle: reparenting a
// new top-level window into a frame, applying ICCCM size hints and Motif
// decoration hints, fullscreen/pin/hide/show transitions, and the EWMH
// state/desktop properties a managed client exports back to the server.
package client

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"

	log "github.com/sirupsen/logrus"

	"github.com/mars-wm/marswm/internal/config"
	"github.com/mars-wm/marswm/internal/geom"
	"github.com/mars-wm/marswm/internal/hints"
	"github.com/mars-wm/marswm/internal/xwindow"
)

// Borders is the frame's three concentric widths: inner border (drawn on
// the client window itself), frame gap, outer border (drawn on the frame).
type Borders struct {
	Inner uint32
	Frame uint32
	Outer uint32
}

// Client is one managed top-level window. Geometry fields describe the
// frame's outer rectangle; the client window is resized to fit inside the
// borders whenever the frame moves.
type Client struct {
	X      *xgbutil.XUtil
	Window xwindow.Window // the original top-level window, now reparented
	Frame  xproto.Window  // the frame window created to contain it

	Name  string
	Class string

	Geometry geom.Rect
	Borders  Borders

	origPos geom.Point // position before reparenting, restored on Unmanage

	Fullscreen  bool
	IsDialog    bool
	Visible     bool
	Pinned      bool
	Floating    bool // excluded from tiling stackers; SetFloating exports !Floating as _MARS_WM_STATE_TILED
	Decorate    bool
	Reparenting bool // swallow the one UnmapNotify our own reparent generates
	Workspace   int  // index into the owning monitor's workspace list
	Desktop     int  // global EWMH desktop number, kept in sync with Workspace

	tiled bool // _MARS_WM_STATE_TILED currently exported in _NET_WM_STATE

	savedGeometry *geom.Rect // pre-fullscreen geometry, restored on UnsetFullscreen
	savedBorders  *Borders   // pre-fullscreen borders, restored on UnsetFullscreen

	lastFloatingGeometry *geom.Rect // geometry at the moment Floating was last set false, restored when it is set true again

	normalHints icccm.NormalHints
}

// Manage reparents win into a newly created frame and returns the managed
// Client. mapped tells Manage the window is currently viewable, in which
// case the reparent itself generates one UnmapNotify the event handler has
// to swallow (the Reparenting flag). The caller is responsible for placing
// the client into a workspace and calling MoveResize to give it its first
// real geometry.
func Manage(X *xgbutil.XUtil, root xproto.Window, win xproto.Window, borders Borders, isDialog, mapped bool) (*Client, error) {
	w := xwindow.New(X, win)

	attrs, err := xproto.GetGeometry(X.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return nil, err
	}

	frame, err := xproto.NewWindowId(X.Conn())
	if err != nil {
		return nil, err
	}
	mask := xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify |
		xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease | xproto.EventMaskButtonMotion |
		xproto.EventMaskEnterWindow | xproto.EventMaskLeaveWindow
	err = xproto.CreateWindowChecked(X.Conn(), X.Screen().RootDepth, frame, root,
		int16(attrs.X), int16(attrs.Y), attrs.Width, attrs.Height, 0,
		xproto.WindowClassInputOutput, X.Screen().RootVisual,
		xproto.CwEventMask, []uint32{uint32(mask)}).Check()
	if err != nil {
		return nil, err
	}

	if err := xproto.ChangeSaveSetChecked(X.Conn(), xproto.SetModeInsert, win).Check(); err != nil {
		log.Warn("ChangeSaveSet failed for ", win, ": ", err)
	}
	if err := xproto.ReparentWindowChecked(X.Conn(), win, frame, 0, 0).Check(); err != nil {
		return nil, err
	}
	xproto.ConfigureWindow(X.Conn(), win,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(attrs.Width), uint32(attrs.Height)})
	xproto.ChangeWindowAttributes(X.Conn(), win, xproto.CwEventMask,
		[]uint32{uint32(xproto.EventMaskEnterWindow | xproto.EventMaskLeaveWindow | xproto.EventMaskPropertyChange)})

	class, _ := w.Class()
	name := w.Name()
	if name == "" {
		name = class.Class
	}

	c := &Client{
		X:           X,
		Window:      w,
		Frame:       frame,
		Name:        name,
		Class:       class.Class,
		Geometry:    geom.Rect{X: int(attrs.X), Y: int(attrs.Y), Width: int(attrs.Width), Height: int(attrs.Height)},
		Borders:     borders,
		origPos:     geom.Point{X: int(attrs.X), Y: int(attrs.Y)},
		IsDialog:    isDialog,
		Reparenting: mapped,
		Decorate:    w.WantsDecorations(),
	}
	c.normalHints = w.NormalHints()
	c.applyBorderWidths()
	return c, nil
}

// applyBorderWidths pushes the current outer/inner border widths to the
// server; the frame-padding width only shows up in MoveResize's inner
// geometry, it has no X border of its own.
func (c *Client) applyBorderWidths() {
	xproto.ConfigureWindow(c.X.Conn(), c.Frame, xproto.ConfigWindowBorderWidth,
		[]uint32{c.Borders.Outer})
	xproto.ConfigureWindow(c.X.Conn(), c.Window.Id, xproto.ConfigWindowBorderWidth,
		[]uint32{c.Borders.Inner})
}

// IsFullscreen satisfies layout.Client.
func (c *Client) IsFullscreen() bool { return c.Fullscreen }

// IsFloating satisfies layout.Client: a floating client is excluded from
// every stacker's geometry assignment, the same way a fullscreen one is.
func (c *Client) IsFloating() bool { return c.Floating }

// SetFloating toggles whether the layout engine skips this client. Turning
// floating on restores the geometry the client last floated at, if it ever
// did; turning it off snapshots the current geometry for the next float and
// hands the client back to whichever layout is active on the next
// ApplyLayout.
func (c *Client) SetFloating(on bool) {
	if on == c.Floating {
		return
	}
	c.Floating = on
	if on {
		if c.lastFloatingGeometry != nil {
			g := *c.lastFloatingGeometry
			c.MoveResize(g.X, g.Y, g.Width, g.Height)
		}
	} else {
		g := c.Geometry
		c.lastFloatingGeometry = &g
	}
	c.ExportTiled(!on)
}

// MoveResize enforces the floor that every managed window's frame rectangle
// may not shrink below 2*outer border + config.MinClientSize in either
// dimension, then repositions both the frame and the inner client window to
// match.
func (c *Client) MoveResize(x, y, width, height int) {
	minSize := 2*int(c.Borders.Outer) + config.MinClientSize
	if width < minSize {
		width = minSize
	}
	if height < minSize {
		height = minSize
	}

	c.Geometry = geom.Rect{X: x, Y: y, Width: width, Height: height}

	frameW := width - 2*int(c.Borders.Outer)
	frameH := height - 2*int(c.Borders.Outer)
	xproto.ConfigureWindow(c.X.Conn(), c.Frame,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(x), uint32(y), uint32(frameW), uint32(frameH)})

	innerW := frameW - 2*int(c.Borders.Frame+c.Borders.Inner)
	innerH := frameH - 2*int(c.Borders.Frame+c.Borders.Inner)
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}
	xproto.ConfigureWindow(c.X.Conn(), c.Window.Id,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(c.Borders.Frame), uint32(c.Borders.Frame), uint32(innerW), uint32(innerH)})
}

// ApplySizeHints clamps the client's current geometry against
// WM_NORMAL_HINTS via hints.Apply.
func (c *Client) ApplySizeHints() {
	nh := c.Window.NormalHints()
	c.normalHints = nh
	c.Geometry.Width, c.Geometry.Height = hints.Apply(nh, c.Geometry.Width, c.Geometry.Height)
}

// ApplyMotifHints refreshes Decorate from _MOTIF_WM_HINTS; callers re-set
// the border widths accordingly afterward.
func (c *Client) ApplyMotifHints() {
	c.Decorate = c.Window.WantsDecorations()
}

// SetFullscreen removes decorations, saves the pre-fullscreen geometry, and
// expands the client to fill monitorArea.
func (c *Client) SetFullscreen(monitorArea geom.Rect) {
	if c.Fullscreen {
		return
	}
	saved := c.Geometry
	c.savedGeometry = &saved
	savedBorders := c.Borders
	c.savedBorders = &savedBorders

	c.Fullscreen = true
	c.Borders = Borders{}
	c.applyBorderWidths()
	c.exportState()
	c.MoveResize(monitorArea.X, monitorArea.Y, monitorArea.Width, monitorArea.Height)
	c.Raise()
}

// UnsetFullscreen restores the geometry and borders SetFullscreen saved.
func (c *Client) UnsetFullscreen() {
	if !c.Fullscreen || c.savedGeometry == nil {
		return
	}
	c.Fullscreen = false
	c.exportState()
	if c.savedBorders != nil {
		c.Borders = *c.savedBorders
		c.savedBorders = nil
	}
	c.applyBorderWidths()
	g := *c.savedGeometry
	c.savedGeometry = nil
	c.MoveResize(g.X, g.Y, g.Width, g.Height)
}

// Hide unmaps both windows under a server grab with substructure-notify
// masked out on root and frame, so the unmaps never reach the event loop as
// spurious UnmapNotifys, then writes WM_STATE = Iconic per ICCCM.
func (c *Client) Hide() {
	if !c.Visible {
		return
	}
	conn := c.X.Conn()
	root := c.X.RootWin()
	fa, ferr := xproto.GetWindowAttributes(conn, c.Frame).Reply()
	ra, rerr := xproto.GetWindowAttributes(conn, root).Reply()

	xproto.GrabServer(conn)
	if rerr == nil {
		xproto.ChangeWindowAttributes(conn, root, xproto.CwEventMask,
			[]uint32{ra.YourEventMask &^ uint32(xproto.EventMaskSubstructureNotify)})
	}
	if ferr == nil {
		xproto.ChangeWindowAttributes(conn, c.Frame, xproto.CwEventMask,
			[]uint32{fa.YourEventMask &^ uint32(xproto.EventMaskStructureNotify|xproto.EventMaskSubstructureNotify)})
	}
	xproto.UnmapWindow(conn, c.Frame)
	xproto.UnmapWindow(conn, c.Window.Id)
	icccm.WmStateSet(c.X, c.Window.Id, &icccm.WmState{State: icccm.StateIconic})
	if rerr == nil {
		xproto.ChangeWindowAttributes(conn, root, xproto.CwEventMask, []uint32{ra.YourEventMask})
	}
	if ferr == nil {
		xproto.ChangeWindowAttributes(conn, c.Frame, xproto.CwEventMask, []uint32{fa.YourEventMask})
	}
	xproto.UngrabServer(conn)
	c.Visible = false
}

// Show maps both windows, gives input focus to the frame, and writes
// WM_STATE = Normal.
func (c *Client) Show() {
	if c.Visible {
		return
	}
	xproto.MapWindow(c.X.Conn(), c.Window.Id)
	xproto.MapWindow(c.X.Conn(), c.Frame)
	icccm.WmStateSet(c.X, c.Window.Id, &icccm.WmState{State: icccm.StateNormal})
	xproto.SetInputFocus(c.X.Conn(), xproto.InputFocusPointerRoot, c.Frame, xproto.TimeCurrentTime)
	c.Visible = true
}

// SetWithdrawn writes WM_STATE = Withdrawn, the ICCCM state a client
// carries once it has been unmanaged but (briefly, on a synthetic
// UnmapNotify) not yet destroyed.
func (c *Client) SetWithdrawn() {
	icccm.WmStateSet(c.X, c.Window.Id, &icccm.WmState{State: icccm.StateWithdrawn})
}

// Raise stacks the frame above its siblings.
func (c *Client) Raise() {
	xproto.ConfigureWindow(c.X.Conn(), c.Frame, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove})
}

// Focus gives input focus to the managed window and raises its frame.
func (c *Client) Focus() {
	c.Raise()
	xproto.SetInputFocus(c.X.Conn(), xproto.InputFocusPointerRoot, c.Window.Id, xproto.TimeCurrentTime)
	ewmh.ActiveWindowSet(c.X, c.Window.Id)
}

// Close asks the client to exit via WM_DELETE_WINDOW, falling back to a
// forced kill if it never registered that protocol.
func (c *Client) Close() error {
	return c.Window.Close()
}

// Unmanage reparents the client window back to root at its pre-management
// position and destroys the frame. Call this once, from UnmapNotify or
// DestroyNotify handling, never from both.
func (c *Client) Unmanage(root xproto.Window) {
	xproto.ConfigureWindow(c.X.Conn(), c.Window.Id, xproto.ConfigWindowBorderWidth, []uint32{0})
	xproto.ReparentWindow(c.X.Conn(), c.Window.Id, root, int16(c.origPos.X), int16(c.origPos.Y))
	xproto.ChangeSaveSet(c.X.Conn(), xproto.SetModeDelete, c.Window.Id)
	xproto.DestroyWindow(c.X.Conn(), c.Frame)
}

// ExportWorkspace writes _NET_WM_DESKTOP to the EWMH desktop index matching
// workspaceIdx.
func (c *Client) ExportWorkspace(workspaceIdx int) {
	c.Desktop = workspaceIdx
	ewmh.WmDesktopSet(c.X, c.Window.Id, uint(workspaceIdx))
}

// ExportPinned sets _NET_WM_DESKTOP to the all-desktops sentinel (0xFFFFFFFF)
// when pinned, or restores the real desktop index otherwise.
func (c *Client) ExportPinned(pinned bool, workspaceIdx int) {
	c.Pinned = pinned
	if pinned {
		ewmh.WmDesktopSet(c.X, c.Window.Id, 0xFFFFFFFF)
		return
	}
	ewmh.WmDesktopSet(c.X, c.Window.Id, uint(workspaceIdx))
}

// ExportTiled adds or removes the private _MARS_WM_STATE_TILED atom from
// _NET_WM_STATE so status bars can distinguish tiled from floating clients.
func (c *Client) ExportTiled(tiled bool) {
	c.tiled = tiled
	c.exportState()
}

// exportState rewrites _NET_WM_STATE from the fullscreen/tiled flags. The
// window manager owns this property; clients ask for changes with
// _NET_WM_STATE client messages, which the dispatcher turns into the
// SetFullscreen/SetFloating calls that end up back here.
func (c *Client) exportState() {
	states := make([]string, 0, 2)
	if c.Fullscreen {
		states = append(states, "_NET_WM_STATE_FULLSCREEN")
	}
	if c.tiled {
		states = append(states, "_MARS_WM_STATE_TILED")
	}
	ewmh.WmStateSet(c.X, c.Window.Id, states)
}
