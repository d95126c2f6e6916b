// Package monitor queries XRandR for the physical output layout and turns
// it into the Monitor/Set hierarchy, including dock strut accounting that
// shrinks a monitor's workarea.
package monitor

import (
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"

	log "github.com/sirupsen/logrus"

	"github.com/mars-wm/marswm/internal/desktop"
	"github.com/mars-wm/marswm/internal/geom"
	"github.com/mars-wm/marswm/internal/layout"
	"github.com/mars-wm/marswm/internal/registry"
)

// Monitor is one physical output: its full rectangle as reported by
// XRandR, its workarea (full rect minus accumulated dock struts), and the
// fixed ring of workspaces every monitor owns.
type Monitor struct {
	Name       string
	Primary    bool
	Full       geom.Rect
	Workarea   geom.Rect
	EdgeMargin geom.Struts

	Workspaces []*desktop.Workspace
	Current    int
	Previous   int

	struts geom.Struts
}

// recomputeWorkarea re-derives Workarea from Full, struts and EdgeMargin.
// The next ApplyCurrentLayout call picks up the new area; workspaces don't
// cache it themselves.
func (m *Monitor) recomputeWorkarea() {
	area := geom.ApplyStruts(m.Full, m.struts)
	m.Workarea = area.Shrink(m.EdgeMargin.Top, m.EdgeMargin.Right, m.EdgeMargin.Bottom, m.EdgeMargin.Left)
}

// SetStruts replaces this monitor's dock/panel struts with s and
// recomputes the workarea. Docks are tracked by the caller (the wm
// controller) and their struts summed before calling this.
func (m *Monitor) SetStruts(s geom.Struts) {
	m.struts = s
	m.recomputeWorkarea()
}

// InitWorkspaces populates Workspaces with one desktop.Workspace per name,
// all sharing defaultLayout/params.
func (m *Monitor) InitWorkspaces(names []string, defaultLayout layout.Type, params layout.Params) {
	m.Workspaces = make([]*desktop.Workspace, len(names))
	for i, name := range names {
		m.Workspaces[i] = desktop.New(i, name, defaultLayout, params)
	}
}

// CurrentWorkspace returns the workspace this monitor is currently showing.
func (m *Monitor) CurrentWorkspace() *desktop.Workspace {
	return m.Workspaces[m.Current]
}

// ApplyCurrentLayout re-lays-out the current workspace's clients against
// this monitor's workarea.
func (m *Monitor) ApplyCurrentLayout(reg *registry.Registry) {
	m.CurrentWorkspace().ApplyLayout(reg, m.Workarea)
}

// AttachClient attaches h to the current workspace and exports its new
// EWMH desktop number.
func (m *Monitor) AttachClient(reg *registry.Registry, h registry.Handle) {
	m.Workspaces[m.Current].Attach(h)
	if c := reg.Get(h); c != nil {
		c.Workspace = m.Current
		if !c.Pinned {
			c.ExportWorkspace(m.Current)
		}
	}
}

// DetachClient removes h from every workspace this monitor owns.
func (m *Monitor) DetachClient(h registry.Handle) {
	for _, ws := range m.Workspaces {
		ws.Detach(h)
	}
}

// Contains reports whether h currently belongs to any workspace of this
// monitor.
func (m *Monitor) Contains(h registry.Handle) bool {
	for _, ws := range m.Workspaces {
		if ws.Contains(h) {
			return true
		}
	}
	return false
}

// MoveToWorkspace detaches h from whichever workspace on this monitor holds
// it, hides it if the target workspace isn't current and it isn't pinned,
// then attaches it to the target.
func (m *Monitor) MoveToWorkspace(reg *registry.Registry, h registry.Handle, workspaceIdx int) {
	if workspaceIdx < 0 || workspaceIdx >= len(m.Workspaces) {
		return
	}
	m.DetachClient(h)

	c := reg.Get(h)
	if c != nil && workspaceIdx != m.Current && !c.Pinned {
		c.Hide()
	}
	m.Workspaces[workspaceIdx].Attach(h)
	if c != nil {
		c.Workspace = workspaceIdx
		if !c.Pinned {
			c.ExportWorkspace(workspaceIdx)
		}
	}
}

// SwitchWorkspace hides every unpinned client on the current workspace,
// shows every client on workspaceIdx, and updates Current/Previous. A
// switch to the already-current workspace is a no-op.
// Reports whether a switch actually happened.
func (m *Monitor) SwitchWorkspace(reg *registry.Registry, workspaceIdx int) bool {
	if workspaceIdx < 0 || workspaceIdx >= len(m.Workspaces) || workspaceIdx == m.Current {
		return false
	}

	for _, h := range m.Workspaces[m.Current].Clients {
		if c := reg.Get(h); c != nil && !c.Pinned {
			c.Hide()
		}
	}
	for _, h := range m.Workspaces[workspaceIdx].Clients {
		if c := reg.Get(h); c != nil {
			c.Show()
		}
	}

	m.Previous = m.Current
	m.Current = workspaceIdx
	return true
}

// Set is the ordered collection of currently connected monitors. Exactly
// one entry has Primary set, falling back to the largest by area if XRandR
// reports no primary output.
type Set struct {
	Monitors []*Monitor
}

// Primary returns the primary monitor, or the first monitor if somehow none
// is marked primary.
func (s *Set) Primary() *Monitor {
	for _, m := range s.Monitors {
		if m.Primary {
			return m
		}
	}
	if len(s.Monitors) > 0 {
		return s.Monitors[0]
	}
	return nil
}

// AtPoint returns the monitor whose full rectangle contains p, or Primary
// if p falls outside every monitor (e.g. during a drag that briefly leaves
// the screen).
func (s *Set) AtPoint(p geom.Point) *Monitor {
	for _, m := range s.Monitors {
		if m.Full.Contains(p) {
			return m
		}
	}
	return s.Primary()
}

// Query asks XRandR for the current output layout, falling back to the
// root window's geometry as a single monitor when the extension is
// unavailable or reports nothing. Disconnected outputs and outputs
// without an active CRTC are skipped.
func Query(X *xgbutil.XUtil, edgeMargin, edgeMarginPrimary [4]int) (*Set, error) {
	set := &Set{}
	hasPrimary := false
	var biggest *Monitor

	var outputs []randr.Output
	var primaryOutput randr.Output
	resources, err := randr.GetScreenResources(X.Conn(), X.RootWin()).Reply()
	if err != nil {
		log.Warn("RandR screen resources unavailable: ", err)
	} else {
		outputs = resources.Outputs
		if primaryReply, perr := randr.GetOutputPrimary(X.Conn(), X.RootWin()).Reply(); perr == nil {
			primaryOutput = primaryReply.Output
		}
	}

	for _, output := range outputs {
		oinfo, err := randr.GetOutputInfo(X.Conn(), output, 0).Reply()
		if err != nil {
			log.Warn("RandR output info failed for ", output, ": ", err)
			continue
		}
		if oinfo.Connection != randr.ConnectionConnected || oinfo.Crtc == 0 {
			continue
		}
		cinfo, err := randr.GetCrtcInfo(X.Conn(), oinfo.Crtc, 0).Reply()
		if err != nil {
			log.Warn("RandR crtc info failed for ", oinfo.Crtc, ": ", err)
			continue
		}

		m := &Monitor{
			Name:    string(oinfo.Name),
			Primary: primaryOutput != 0 && output == primaryOutput,
			Full: geom.Rect{
				X:      int(cinfo.X),
				Y:      int(cinfo.Y),
				Width:  int(cinfo.Width),
				Height: int(cinfo.Height),
			},
		}
		margin := edgeMargin
		if m.Primary {
			margin = edgeMarginPrimary
		}
		m.EdgeMargin = geom.Struts{Top: margin[0], Right: margin[1], Bottom: margin[2], Left: margin[3]}
		m.recomputeWorkarea()

		set.Monitors = append(set.Monitors, m)
		hasPrimary = hasPrimary || m.Primary
		if biggest == nil || m.Full.Width*m.Full.Height > biggest.Full.Width*biggest.Full.Height {
			biggest = m
		}
	}

	if !hasPrimary && biggest != nil {
		biggest.Primary = true
	}
	if len(set.Monitors) == 0 {
		// XRandR unavailable or reported nothing: fall back to the root
		// window's geometry as a single monitor.
		g, err := xproto.GetGeometry(X.Conn(), xproto.Drawable(X.RootWin())).Reply()
		if err != nil {
			return nil, err
		}
		m := &Monitor{
			Name:    "default",
			Primary: true,
			Full:    geom.Rect{X: 0, Y: 0, Width: int(g.Width), Height: int(g.Height)},
		}
		m.EdgeMargin = geom.Struts{Top: edgeMarginPrimary[0], Right: edgeMarginPrimary[1], Bottom: edgeMarginPrimary[2], Left: edgeMarginPrimary[3]}
		m.recomputeWorkarea()
		set.Monitors = append(set.Monitors, m)
	}
	return set, nil
}
