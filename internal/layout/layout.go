// Package layout implements the pure layout functions: given a window
// area, an ordered client list and parameters, compute the frame geometry
// of every client. None of these functions touch the X server; they only
// call MoveResize on the narrow Client capability surface.
package layout

import "github.com/mars-wm/marswm/internal/geom"

// Client is the capability surface the layout engine needs: move/resize
// and the fullscreen/floating checks (both kinds are skipped by every
// stacker; their geometry is not the stacker's to set).
type Client interface {
	IsFullscreen() bool
	IsFloating() bool
	MoveResize(x, y, w, h int)
}

type Type int

const (
	Floating Type = iota
	Stack
	BottomStack
	Monocle
	Deck
	Dynamic
)

func (t Type) String() string {
	switch t {
	case Floating:
		return "floating"
	case Stack:
		return "stack"
	case BottomStack:
		return "bottom-stack"
	case Monocle:
		return "monocle"
	case Deck:
		return "deck"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

type StackPosition int

const (
	StackRight StackPosition = iota
	StackLeft
	StackBottom
	StackTop
)

type StackMode int

const (
	StackModeSplit StackMode = iota
	StackModeDeck
)

// Params parameterizes every layout variant; not every field is used by
// every variant (e.g. Floating ignores all of them).
type Params struct {
	GapWidth      int
	MainRatio     float64
	NMain         int
	StackPos      StackPosition
	StackMode     StackMode
	DefaultLayout Type
}

// Apply dispatches to the layout variant named by typ. Layout is
// deterministic: calling Apply twice with the same inputs produces
// identical geometries.
func Apply(typ Type, winArea geom.Rect, clients []Client, p Params) {
	switch typ {
	case Floating:
		// no-op; geometry preserved
	case Stack:
		q := p
		q.StackPos = StackRight
		q.StackMode = StackModeSplit
		applyDynamic(winArea, clients, q)
	case BottomStack:
		q := p
		q.StackPos = StackBottom
		q.StackMode = StackModeSplit
		applyDynamic(winArea, clients, q)
	case Monocle:
		g := p.GapWidth
		stackOntop(winArea.Shrink(g, g, g, g), clients)
	case Deck:
		q := p
		q.StackPos = StackRight
		q.StackMode = StackModeDeck
		applyDynamic(winArea, clients, q)
	case Dynamic:
		applyDynamic(winArea, clients, p)
	}
}

func applyDynamic(winArea geom.Rect, clients []Client, p Params) {
	nclients := len(clients)
	nmain := p.NMain
	if nmain > nclients {
		nmain = nclients
	}
	if nmain < 0 {
		nmain = 0
	}
	mainClients := clients[:nmain]
	stackClients := clients[nmain:]

	var mainArea, stackArea geom.Rect
	switch p.StackPos {
	case StackLeft:
		a, b := splitHorizontal(winArea, 1.0-p.MainRatio, p.GapWidth, p.NMain, nclients)
		stackArea, mainArea = a, b
	case StackTop:
		a, b := splitVertical(winArea, 1.0-p.MainRatio, p.GapWidth, p.NMain, nclients)
		stackArea, mainArea = a, b
	case StackRight:
		mainArea, stackArea = splitHorizontal(winArea, p.MainRatio, p.GapWidth, p.NMain, nclients)
	case StackBottom:
		mainArea, stackArea = splitVertical(winArea, p.MainRatio, p.GapWidth, p.NMain, nclients)
	}

	switch p.StackPos {
	case StackLeft, StackRight:
		stackVertically(mainArea, mainClients, p.GapWidth)
	case StackTop, StackBottom:
		stackHorizontally(mainArea, mainClients, p.GapWidth)
	}

	switch p.StackMode {
	case StackModeDeck:
		stackOntop(stackArea, stackClients)
	case StackModeSplit:
		switch p.StackPos {
		case StackLeft, StackRight:
			stackVertically(stackArea, stackClients, p.GapWidth)
		case StackTop, StackBottom:
			stackHorizontally(stackArea, stackClients, p.GapWidth)
		}
	}
}

// splitHorizontal divides winArea into a main rect (ratio of the width
// left after the leading gap) and a stack rect, handling the nmain==0 and
// nclients<=nmain degenerate cases.
func splitHorizontal(winArea geom.Rect, ratio float64, gap, nmain, nclients int) (main, stack geom.Rect) {
	firstWidth := int(float64(winArea.Width-gap) * ratio)

	switch {
	case nmain == 0:
		stack = geom.Rect{
			X:      winArea.X + gap,
			Y:      winArea.Y + gap,
			Width:  winArea.Width - 2*gap,
			Height: winArea.Height - 2*gap,
		}
		return geom.Rect{}, stack
	case nclients <= nmain:
		main = geom.Rect{
			X:      winArea.X + gap,
			Y:      winArea.Y + gap,
			Width:  winArea.Width - 2*gap,
			Height: winArea.Height - 2*gap,
		}
		return main, geom.Rect{}
	default:
		main = geom.Rect{
			X:      winArea.X + gap,
			Y:      winArea.Y + gap,
			Width:  firstWidth - gap,
			Height: winArea.Height - 2*gap,
		}
		stack = geom.Rect{
			X:      winArea.X + gap + firstWidth,
			Y:      winArea.Y + gap,
			Width:  winArea.Width - gap - firstWidth,
			Height: winArea.Height - 2*gap,
		}
		return main, stack
	}
}

func splitVertical(winArea geom.Rect, ratio float64, gap, nmain, nclients int) (main, stack geom.Rect) {
	firstHeight := int(float64(winArea.Height-gap) * ratio)

	switch {
	case nmain == 0:
		stack = geom.Rect{
			X:      winArea.X + gap,
			Y:      winArea.Y + gap,
			Width:  winArea.Width - 2*gap,
			Height: winArea.Height - 2*gap,
		}
		return geom.Rect{}, stack
	case nclients <= nmain:
		main = geom.Rect{
			X:      winArea.X + gap,
			Y:      winArea.Y + gap,
			Width:  winArea.Width - 2*gap,
			Height: winArea.Height - 2*gap,
		}
		return main, geom.Rect{}
	default:
		main = geom.Rect{
			X:      winArea.X + gap,
			Y:      winArea.Y + gap,
			Width:  winArea.Width - 2*gap,
			Height: firstHeight - gap,
		}
		stack = geom.Rect{
			X:      winArea.X + gap,
			Y:      winArea.Y + gap + firstHeight,
			Width:  winArea.Width - 2*gap,
			Height: winArea.Height - gap - firstHeight,
		}
		return main, stack
	}
}

func stackHorizontally(area geom.Rect, clients []Client, gap int) {
	n := len(clients)
	if n == 0 {
		return
	}
	width := (area.Width - (n-1)*gap) / n
	height := area.Height
	for i, c := range clients {
		if c.IsFullscreen() || c.IsFloating() {
			continue
		}
		x := area.X + i*(width+gap)
		y := area.Y
		// last cell absorbs the integer-division remainder
		w := width
		if i == n-1 {
			w = area.X + area.Width - x
		}
		c.MoveResize(x, y, w, height)
	}
}

func stackVertically(area geom.Rect, clients []Client, gap int) {
	n := len(clients)
	if n == 0 {
		return
	}
	width := area.Width
	height := (area.Height - (n-1)*gap) / n
	for i, c := range clients {
		if c.IsFullscreen() || c.IsFloating() {
			continue
		}
		x := area.X
		y := area.Y + i*(height+gap)
		h := height
		if i == n-1 {
			h = area.Y + area.Height - y
		}
		c.MoveResize(x, y, width, h)
	}
}

func stackOntop(area geom.Rect, clients []Client) {
	for _, c := range clients {
		if c.IsFullscreen() || c.IsFloating() {
			continue
		}
		c.MoveResize(area.X, area.Y, area.Width, area.Height)
	}
}
