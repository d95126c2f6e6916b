package atom

import "testing"

func TestNamesCoverEveryEnumValue(t *testing.T) {
	for a := Atom(0); a < atomCount; a++ {
		if a.Name() == "" {
			t.Fatalf("atom %d has no registered name", a)
		}
	}
}

func TestSupportedExcludesViewportAndGeometry(t *testing.T) {
	for _, a := range Supported {
		if a == NetDesktopViewport || a == NetDesktopGeometry {
			t.Fatalf("%s must not be advertised in _NET_SUPPORTED", a.Name())
		}
	}
}

func TestSupportedContainsPrivateAtoms(t *testing.T) {
	found, foundStatus := false, false
	for _, a := range Supported {
		if a == MarsWMStateTiled {
			found = true
		}
		if a == MarsStatus {
			foundStatus = true
		}
	}
	if !found {
		t.Fatal("_MARS_WM_STATE_TILED must be advertised")
	}
	if !foundStatus {
		t.Fatal("_MARS_STATUS must be advertised")
	}
}
