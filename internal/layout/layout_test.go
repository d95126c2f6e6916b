package layout

import (
	"testing"

	"github.com/mars-wm/marswm/internal/geom"
)

type fakeClient struct {
	fullscreen     bool
	floating       bool
	x, y, w, h     int
	moveResizeDone bool
}

func (f *fakeClient) IsFullscreen() bool { return f.fullscreen }
func (f *fakeClient) IsFloating() bool   { return f.floating }

func (f *fakeClient) MoveResize(x, y, w, h int) {
	f.x, f.y, f.w, f.h = x, y, w, h
	f.moveResizeDone = true
}

func TestFloatingIsNoOp(t *testing.T) {
	c := &fakeClient{x: 1, y: 2, w: 3, h: 4}
	Apply(Floating, geom.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}, []Client{c}, Params{})
	if c.moveResizeDone {
		t.Fatal("floating layout must not move/resize clients")
	}
}

func TestStackSplitThreeClients(t *testing.T) {
	win := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}
	p := Params{GapWidth: 10, MainRatio: 0.6, NMain: 1}
	main := &fakeClient{}
	s1 := &fakeClient{}
	s2 := &fakeClient{}
	Apply(Stack, win, []Client{main, s1, s2}, p)

	if main.x != 10 || main.y != 10 || main.w != 584 || main.h != 980 {
		t.Fatalf("main geometry = (%d,%d,%d,%d)", main.x, main.y, main.w, main.h)
	}
	if s1.w != 396 || s2.w != 396 {
		t.Fatalf("stack widths = %d, %d, want 396, 396", s1.w, s2.w)
	}
	if s1.h != 485 || s2.h != 485 {
		t.Fatalf("stack heights = %d, %d, want 485, 485", s1.h, s2.h)
	}
	if s1.y != 10 || s2.y != 505 {
		t.Fatalf("stack y = %d, %d", s1.y, s2.y)
	}
}

func TestNMainZeroPutsEveryoneInStack(t *testing.T) {
	win := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}
	p := Params{GapWidth: 10, MainRatio: 0.6, NMain: 0}
	a := &fakeClient{}
	b := &fakeClient{}
	Apply(Stack, win, []Client{a, b}, p)
	if a.w == 0 || b.w == 0 {
		t.Fatal("clients should have been placed in the stack area")
	}
}

func TestNClientsLessThanNMainFillsMainArea(t *testing.T) {
	win := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}
	p := Params{GapWidth: 10, MainRatio: 0.6, NMain: 2}
	a := &fakeClient{}
	Apply(Stack, win, []Client{a}, p)
	if a.x != 10 || a.y != 10 || a.w != 980 || a.h != 980 {
		t.Fatalf("single client should fill main area minus gaps, got (%d,%d,%d,%d)", a.x, a.y, a.w, a.h)
	}
}

func TestMonocleFillsAreaMinusGapSkipsFullscreen(t *testing.T) {
	win := geom.Rect{X: 0, Y: 0, Width: 500, Height: 400}
	fs := &fakeClient{fullscreen: true}
	a := &fakeClient{}
	Apply(Monocle, win, []Client{fs, a}, Params{GapWidth: 10})
	if fs.moveResizeDone {
		t.Fatal("fullscreen client must be skipped by all stackers")
	}
	want := win.Shrink(10, 10, 10, 10)
	if a.x != want.X || a.y != want.Y || a.w != want.Width || a.h != want.Height {
		t.Fatalf("monocle geometry = (%d,%d,%d,%d), want %+v", a.x, a.y, a.w, a.h, want)
	}
}

func TestMonocleSkipsFloating(t *testing.T) {
	win := geom.Rect{X: 0, Y: 0, Width: 500, Height: 400}
	fl := &fakeClient{floating: true}
	a := &fakeClient{}
	Apply(Monocle, win, []Client{fl, a}, Params{GapWidth: 10})
	if fl.moveResizeDone {
		t.Fatal("floating client must be skipped by all stackers")
	}
	want := win.Shrink(10, 10, 10, 10)
	if a.x != want.X || a.y != want.Y || a.w != want.Width || a.h != want.Height {
		t.Fatalf("monocle geometry = (%d,%d,%d,%d), want %+v", a.x, a.y, a.w, a.h, want)
	}
}

func TestLayoutIsDeterministic(t *testing.T) {
	win := geom.Rect{X: 0, Y: 0, Width: 1234, Height: 987}
	p := Params{GapWidth: 7, MainRatio: 0.55, NMain: 2}
	run := func() (geom.Rect, geom.Rect, geom.Rect) {
		a, b, c := &fakeClient{}, &fakeClient{}, &fakeClient{}
		Apply(Deck, win, []Client{a, b, c}, p)
		return geom.Rect{X: a.x, Y: a.y, Width: a.w, Height: a.h},
			geom.Rect{X: b.x, Y: b.y, Width: b.w, Height: b.h},
			geom.Rect{X: c.x, Y: c.y, Width: c.w, Height: c.h}
	}
	a1, b1, c1 := run()
	a2, b2, c2 := run()
	if a1 != a2 || b1 != b2 || c1 != c2 {
		t.Fatal("applying the same layout twice must produce identical geometries")
	}
}

func TestStackHorizontallyLastCellAbsorbsRemainder(t *testing.T) {
	area := geom.Rect{X: 0, Y: 0, Width: 1000, Height: 100}
	a, b, c := &fakeClient{}, &fakeClient{}, &fakeClient{}
	stackHorizontally(area, []Client{a, b, c}, 10)
	sum := a.w + 10 + b.w + 10 + c.w
	if sum != area.Width {
		t.Fatalf("sum of widths plus gaps = %d, want %d", sum, area.Width)
	}
}
