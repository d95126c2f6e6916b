// Package geom provides the rectangle and point arithmetic shared by the
// monitor/workspace hierarchy and the layout engine.
package geom

// Point is a root-relative pixel coordinate.
type Point struct {
	X, Y int
}

// Rect is an (x, y, width, height) rectangle in root coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) Pieces() (x, y, w, h int) {
	return r.X, r.Y, r.Width, r.Height
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) Bottom() int {
	return r.Y + r.Height
}

func (r Rect) Right() int {
	return r.X + r.Width
}

// Contains reports whether p lies within r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Shrink returns r inset by top/right/bottom/left on each side.
func (r Rect) Shrink(top, right, bottom, left int) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  MaxInt(0, r.Width-left-right),
		Height: MaxInt(0, r.Height-top-bottom),
	}
}

// Struts is the reserved space a dock registers along each edge of a monitor.
type Struts struct {
	Left, Right, Top, Bottom int
}

// ApplyStruts subtracts the accumulated dock struts from the full monitor
// rectangle to produce the workarea, matching xrect.ApplyStrut's one-sided
// semantics (a strut only ever shrinks the side it names).
func ApplyStruts(full Rect, s Struts) Rect {
	return Rect{
		X:      full.X + s.Left,
		Y:      full.Y + s.Top,
		Width:  MaxInt(0, full.Width-s.Left-s.Right),
		Height: MaxInt(0, full.Height-s.Top-s.Bottom),
	}
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func ClampInt(v, lo, hi int) int {
	if hi > 0 && v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}
