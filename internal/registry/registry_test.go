package registry

import (
	"testing"

	"github.com/mars-wm/marswm/internal/client"
)

func TestAddRemoveRoundTrip(t *testing.T) {
	r := New()
	c := &client.Client{}
	h := r.Add(c)

	if got := r.Get(h); got != c {
		t.Fatalf("Get(%v) = %v, want %v", h, got, c)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}

	r.Remove(h)
	if r.Get(h) != nil {
		t.Fatal("client should be gone after Remove")
	}
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
}

func TestHandlesAreNeverReused(t *testing.T) {
	r := New()
	h1 := r.Add(&client.Client{})
	r.Remove(h1)
	h2 := r.Add(&client.Client{})
	if h1 == h2 {
		t.Fatal("handle was reused after removal")
	}
}

func TestByFrameAndByWindowLookup(t *testing.T) {
	r := New()
	c := &client.Client{Frame: 42}
	c.Window.Id = 99
	h := r.Add(c)

	got, ok := r.ByFrame(42)
	if !ok || got != h {
		t.Fatalf("ByFrame(42) = %v, %v, want %v, true", got, ok, h)
	}
	got, ok = r.ByWindow(99)
	if !ok || got != h {
		t.Fatalf("ByWindow(99) = %v, %v, want %v, true", got, ok, h)
	}
}
