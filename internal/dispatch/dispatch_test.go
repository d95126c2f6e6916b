package dispatch

import (
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/xevent"
	"github.com/stretchr/testify/assert"

	"github.com/mars-wm/marswm/internal/client"
	"github.com/mars-wm/marswm/internal/geom"
	"github.com/mars-wm/marswm/internal/registry"
)

// The handlers' X-effecting halves (ConfigureWindow, SendEvent, Unmanage)
// need a live display; what is tested here is every decision they make
// before touching the server.

func configureRequestEvent(win xproto.Window, mask uint16, x, y int16, w, h uint16) xevent.ConfigureRequestEvent {
	return xevent.ConfigureRequestEvent{ConfigureRequestEvent: &xproto.ConfigureRequestEvent{
		Window:    win,
		X:         x,
		Y:         y,
		Width:     w,
		Height:    h,
		ValueMask: mask,
	}}
}

func TestApplyConfigureRequest(t *testing.T) {
	borders := client.Borders{Inner: 1, Frame: 2, Outer: 1} // total 4 per side
	current := geom.Rect{X: 100, Y: 100, Width: 208, Height: 158}
	// inner geometry is therefore (104,104,200,150)
	allMask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)

	tests := []struct {
		name       string
		mask       uint16
		x, y, w, h int
		wantFrame  geom.Rect
		moved      bool
		resized    bool
	}{
		{
			name: "full request converts inner to frame",
			mask: allMask,
			x:    50, y: 60, w: 300, h: 200,
			wantFrame: geom.Rect{X: 46, Y: 56, Width: 308, Height: 208},
			moved:     true, resized: true,
		},
		{
			name: "width-only keeps position and height",
			mask: xproto.ConfigWindowWidth,
			w:    300,
			wantFrame: geom.Rect{X: 100, Y: 100, Width: 308, Height: 158},
			resized: true,
		},
		{
			name: "request equal to current inner geometry changes nothing",
			mask: allMask,
			x:    104, y: 104, w: 200, h: 150,
			wantFrame: current,
		},
		{
			name: "move-only is a move but not a resize",
			mask: uint16(xproto.ConfigWindowX | xproto.ConfigWindowY),
			x:    50, y: 60,
			wantFrame: geom.Rect{X: 46, Y: 56, Width: 208, Height: 158},
			moved:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, moved, resized := applyConfigureRequest(current, borders, tt.mask, tt.x, tt.y, tt.w, tt.h)
			assert.Equal(t, tt.wantFrame, frame)
			assert.Equal(t, tt.moved, moved, "moved")
			assert.Equal(t, tt.resized, resized, "resized")
		})
	}
}

func TestInnerRectZeroBordersIsIdentity(t *testing.T) {
	g := geom.Rect{X: 10, Y: 20, Width: 300, Height: 400}
	assert.Equal(t, g, innerRect(g, client.Borders{}))
}

func TestPassThroughValuesForwardsExactComponents(t *testing.T) {
	allMask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	e := configureRequestEvent(7, allMask, 50, 50, 100, 100)
	mask, values := passThroughValues(e)
	assert.Equal(t, allMask, mask)
	assert.Equal(t, []uint32{50, 50, 100, 100}, values)
}

func TestPassThroughValuesOmitsUnrequestedComponents(t *testing.T) {
	e := configureRequestEvent(7, xproto.ConfigWindowWidth, 50, 50, 100, 100)
	mask, values := passThroughValues(e)
	assert.Equal(t, uint16(xproto.ConfigWindowWidth), mask)
	assert.Equal(t, []uint32{100}, values)
}

func TestConfigureRequestBranchesOnRegistry(t *testing.T) {
	reg := registry.New()
	c := &client.Client{
		Geometry: geom.Rect{X: 0, Y: 0, Width: 100, Height: 100},
		Borders:  client.Borders{Inner: 1, Frame: 2, Outer: 1},
	}
	c.Window.Id = 42
	reg.Add(c)

	_, managed := reg.ByWindow(42)
	assert.True(t, managed, "window 42 must route to the managed branch")
	_, managed = reg.ByWindow(43)
	assert.False(t, managed, "window 43 must route to the pass-through branch")
}

func TestClassifyUnmap(t *testing.T) {
	const root, frame = xproto.Window(1), xproto.Window(9)

	tests := []struct {
		name        string
		reparenting bool
		eventWin    xproto.Window
		want        unmapOutcome
	}{
		{"reparent unmap is swallowed even when delivered to root", true, root, unmapSwallowReparent},
		{"reparent unmap is swallowed when delivered to the frame", true, frame, unmapSwallowReparent},
		{"root-delivered unmap is the synthetic withdraw", false, root, unmapWithdraw},
		{"frame-delivered unmap unmanages", false, frame, unmapUnmanage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyUnmap(tt.reparenting, tt.eventWin, root))
		})
	}
}

func TestDesktopTargetPinSentinel(t *testing.T) {
	_, ok := desktopTarget(int(uint32(0xFFFFFFFF)))
	assert.False(t, ok, "the all-desktops sentinel pins rather than moves")

	idx, ok := desktopTarget(3)
	assert.True(t, ok)
	assert.Equal(t, 3, idx)
}
