// Package config holds the in-process configuration shape. Parsing a
// configuration file into this struct is a separate tool's concern and is
// intentionally not implemented here; Default returns a working
// configuration so the core can run standalone.
package config

import (
	"regexp"
	"strings"

	"github.com/mars-wm/marswm/internal/layout"
)

// MinClientSize is the smallest a client's frame is ever allowed to be,
// enforced as min(w,h) >= 2*outer + MinClientSize.
const MinClientSize = 40

// Borders is the three concentric border widths a managed frame carries.
type Borders struct {
	Inner uint32 // on the application window
	Frame uint32 // padding between window and frame
	Outer uint32 // on the frame itself
}

// WindowIgnore is a (class-regex, name-regex) pair: windows matching class
// are ignored unless their name also matches name.
type WindowIgnore struct {
	Class string
	Name  string
}

type Config struct {
	WorkspaceNames []string
	Layout         layout.Params

	Borders Borders

	WindowDecoration bool
	WindowIgnore     []WindowIgnore

	EdgeMargin        [4]int // top, right, bottom, left
	EdgeMarginPrimary [4]int

	// WindowFocusDelay is a focus-follows-mouse hover delay in
	// milliseconds. Nothing reads it: entering a frame focuses its client
	// immediately whatever the value.
	WindowFocusDelay int

	// ModKey is the modifier mask keybindings are anchored to (e.g. Mod4
	// for the usual "super" key).
	ModKey uint16
}

// IsIgnored reports whether a window of the given class/name should never
// be managed, per WindowIgnore: a class match ignores the window unless
// its name also matches the same entry's Name regex.
func (cfg *Config) IsIgnored(class, name string) bool {
	lowerClass := strings.ToLower(class)
	lowerName := strings.ToLower(name)
	for _, ig := range cfg.WindowIgnore {
		classRe, err := regexp.Compile(strings.ToLower(ig.Class))
		if err != nil {
			continue
		}
		if !classRe.MatchString(lowerClass) {
			continue
		}
		if ig.Name != "" {
			nameRe, err := regexp.Compile(strings.ToLower(ig.Name))
			if err == nil && nameRe.MatchString(lowerName) {
				continue
			}
		}
		return true
	}
	return false
}

func Default() *Config {
	return &Config{
		WorkspaceNames: []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX"},
		Layout: layout.Params{
			GapWidth:      10,
			MainRatio:     0.6,
			NMain:         1,
			StackPos:      layout.StackRight,
			StackMode:     layout.StackModeSplit,
			DefaultLayout: layout.Stack,
		},
		Borders: Borders{
			Inner: 1,
			Frame: 2,
			Outer: 1,
		},
		WindowDecoration: true,
		WindowIgnore: []WindowIgnore{
			{Class: "^desktop_window$", Name: ""},
			{Class: "^dwm_splash$", Name: ""},
		},
		WindowFocusDelay: 0,
		ModKey:           0x40, // Mod4Mask
	}
}
