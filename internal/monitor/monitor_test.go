package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mars-wm/marswm/internal/geom"
	"github.com/mars-wm/marswm/internal/layout"
)

func TestInitWorkspacesCreatesOnePerName(t *testing.T) {
	m := &Monitor{Full: geom.Rect{Width: 1000, Height: 1000}}
	m.recomputeWorkarea()
	m.InitWorkspaces([]string{"I", "II", "III"}, layout.Stack, layout.Params{})

	assert.Len(t, m.Workspaces, 3)
	assert.Equal(t, "II", m.Workspaces[1].Name)
	assert.Equal(t, 0, m.Current)
	assert.Equal(t, 0, m.Previous)
}

func TestSwitchWorkspaceToCurrentIsNoOp(t *testing.T) {
	m := &Monitor{Full: geom.Rect{Width: 1000, Height: 1000}}
	m.recomputeWorkarea()
	m.InitWorkspaces([]string{"I", "II"}, layout.Stack, layout.Params{})

	changed := m.SwitchWorkspace(nil, 0)
	assert.False(t, changed)
	assert.Equal(t, 0, m.Current)
}

func TestSwitchWorkspaceUpdatesCurrentAndPrevious(t *testing.T) {
	m := &Monitor{Full: geom.Rect{Width: 1000, Height: 1000}}
	m.recomputeWorkarea()
	m.InitWorkspaces([]string{"I", "II", "III"}, layout.Stack, layout.Params{})

	changed := m.SwitchWorkspace(nil, 2)
	assert.True(t, changed)
	assert.Equal(t, 2, m.Current)
	assert.Equal(t, 0, m.Previous)
}

func TestSetStrutsShrinksWorkarea(t *testing.T) {
	m := &Monitor{Full: geom.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}
	m.recomputeWorkarea()
	assert.Equal(t, 1080, m.Workarea.Height)

	m.SetStruts(geom.Struts{Top: 30})
	assert.Equal(t, 1050, m.Workarea.Height)
	assert.Equal(t, 30, m.Workarea.Y)
}

func TestSetAtPointFallsBackToPrimary(t *testing.T) {
	primary := &Monitor{Primary: true, Full: geom.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}
	secondary := &Monitor{Full: geom.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}}
	set := &Set{Monitors: []*Monitor{primary, secondary}}

	assert.Equal(t, secondary, set.AtPoint(geom.Point{X: 2000, Y: 10}))
	assert.Equal(t, primary, set.AtPoint(geom.Point{X: -50, Y: 10}))
}
