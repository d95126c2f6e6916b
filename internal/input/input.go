// Package input wires mouse button bindings that drive interactive
// move/resize, built on xgbutil's mousebind.Drag. Drag already runs the
// grab/motion/release loop and calls back per motion event, so only the
// begin/step/end callbacks live here. The step math is
// orig-position-plus-delta against a pointer position anchored once when
// the drag begins, with a move/resize font cursor grabbed alongside the
// pointer.
package input

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/mousebind"
	"github.com/jezek/xgbutil/xcursor"

	"github.com/mars-wm/marswm/internal/client"
	"github.com/mars-wm/marswm/internal/geom"
)

// dragCursor loads the X cursor font glyph shown while the pointer is
// grabbed; 0 (the default arrow) if the font lookup fails.
func dragCursor(X *xgbutil.XUtil, glyph uint16) xproto.Cursor {
	cur, err := xcursor.CreateCursor(X, glyph)
	if err != nil {
		return 0
	}
	return cur
}

// BindMove grabs button 1 on the frame for interactive move: the client's
// position tracks the pointer's cumulative delta from the drag's origin,
// added to its position at drag start (origRootX/origRootY anchor the
// origin; rootX/rootY is the current root-relative pointer position on
// every step). After every step, onCrossMonitor is called with the frame's
// new center so the controller can hand it to another monitor; a nil
// callback skips the check.
func BindMove(X *xgbutil.XUtil, frame xproto.Window, c *client.Client, onCrossMonitor func(geom.Point)) {
	var origX, origY int
	var origRootX, origRootY int
	mousebind.Drag(X, frame, frame, "1", true,
		func(X *xgbutil.XUtil, rootX, rootY, eventX, eventY int) (bool, xproto.Cursor) {
			if c.Fullscreen {
				return false, 0
			}
			c.Raise()
			c.Focus()
			origX, origY = c.Geometry.X, c.Geometry.Y
			origRootX, origRootY = rootX, rootY
			return true, dragCursor(X, xcursor.Fleur)
		},
		func(X *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
			dx, dy := rootX-origRootX, rootY-origRootY
			c.MoveResize(origX+dx, origY+dy, c.Geometry.Width, c.Geometry.Height)
			if onCrossMonitor != nil {
				onCrossMonitor(c.Geometry.Center())
			}
		},
		func(X *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {})
}

// BindResize grabs button 3 on the frame for interactive resize: the
// client's size tracks the pointer's cumulative delta from drag start
// (same origRootX/origRootY anchor as BindMove), floored at its configured
// minimum by MoveResize.
func BindResize(X *xgbutil.XUtil, frame xproto.Window, c *client.Client) {
	var origW, origH int
	var origRootX, origRootY int
	mousebind.Drag(X, frame, frame, "3", true,
		func(X *xgbutil.XUtil, rootX, rootY, eventX, eventY int) (bool, xproto.Cursor) {
			if c.Fullscreen {
				return false, 0
			}
			c.Raise()
			c.Focus()
			origW, origH = c.Geometry.Width, c.Geometry.Height
			origRootX, origRootY = rootX, rootY
			return true, dragCursor(X, xcursor.Sizing)
		},
		func(X *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
			dx, dy := rootX-origRootX, rootY-origRootY
			c.MoveResize(c.Geometry.X, c.Geometry.Y, origW+dx, origH+dy)
		},
		func(X *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {})
}

// Unbind releases every mouse-bind callback installed on frame, for both
// press and release event types, so a frame can be safely destroyed.
func Unbind(X *xgbutil.XUtil, frame xproto.Window) {
	mousebind.Detach(X, frame)
}
