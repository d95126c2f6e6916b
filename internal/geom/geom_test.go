package geom

import "testing"

func TestApplyStruts(t *testing.T) {
	full := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	got := ApplyStruts(full, Struts{Top: 30})
	want := Rect{X: 0, Y: 30, Width: 1920, Height: 1050}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 100}
	if !r.Contains(Point{X: 10, Y: 10}) {
		t.Fatal("expected top-left corner to be contained")
	}
	if r.Contains(Point{X: 110, Y: 10}) {
		t.Fatal("right edge is exclusive")
	}
}

func TestShrink(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 200, Height: 200}
	got := r.Shrink(5, 5, 5, 5)
	want := Rect{X: 5, Y: 5, Width: 190, Height: 190}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
