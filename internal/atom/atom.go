// Package atom is the closed atom catalog: a fixed, enumerated identifier
// set (ICCCM, EWMH, Motif, XEMBED, private) mapped to/from
// server-interned atoms. Resolution is lazy and per-connection, through
// xprop's interning cache.
package atom

import (
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/xprop"
)

type Atom int

const (
	// ICCCM
	WMName Atom = iota
	WMState
	WMProtocols
	WMDeleteWindow
	WMTakeFocus
	WMClass
	WMNormalHints
	WMTransientFor

	// Motif
	MotifWMHints

	// EWMH, root-window
	NetSupported
	NetSupportingWMCheck
	NetClientList
	NetClientListStacking
	NetNumberOfDesktops
	NetCurrentDesktop
	NetDesktopNames
	NetWorkarea
	NetActiveWindow
	NetDesktopViewport
	NetDesktopGeometry

	// EWMH, per-client
	NetWMName
	NetWMDesktop
	NetWMState
	NetWMStateFullscreen
	NetWMWindowType
	NetWMWindowTypeDesktop
	NetWMWindowTypeDialog
	NetWMWindowTypeDock
	NetWMWindowTypeMenu
	NetWMWindowTypeNotification
	NetCloseWindow
	NetFrameExtents
	NetWMStrutPartial

	// XEMBED (tray host support; catalog entries only, not advertised or handled by the core)
	XEmbed
	XEmbedInfo

	// private
	MarsWMStateTiled
	MarsStatus

	atomCount
)

// names is the closed enum ↔ string mapping; round-tripping through the
// server (name → atom → name) is identity for every entry here.
var names = [atomCount]string{
	WMName:         "WM_NAME",
	WMState:        "WM_STATE",
	WMProtocols:    "WM_PROTOCOLS",
	WMDeleteWindow: "WM_DELETE_WINDOW",
	WMTakeFocus:    "WM_TAKE_FOCUS",
	WMClass:        "WM_CLASS",
	WMNormalHints:  "WM_NORMAL_HINTS",
	WMTransientFor: "WM_TRANSIENT_FOR",

	MotifWMHints: "_MOTIF_WM_HINTS",

	NetSupported:           "_NET_SUPPORTED",
	NetSupportingWMCheck:   "_NET_SUPPORTING_WM_CHECK",
	NetClientList:          "_NET_CLIENT_LIST",
	NetClientListStacking:  "_NET_CLIENT_LIST_STACKING",
	NetNumberOfDesktops:    "_NET_NUMBER_OF_DESKTOPS",
	NetCurrentDesktop:      "_NET_CURRENT_DESKTOP",
	NetDesktopNames:        "_NET_DESKTOP_NAMES",
	NetWorkarea:            "_NET_WORKAREA",
	NetActiveWindow:        "_NET_ACTIVE_WINDOW",
	NetDesktopViewport:     "_NET_DESKTOP_VIEWPORT",
	NetDesktopGeometry:     "_NET_DESKTOP_GEOMETRY",

	NetWMName:                    "_NET_WM_NAME",
	NetWMDesktop:                 "_NET_WM_DESKTOP",
	NetWMState:                   "_NET_WM_STATE",
	NetWMStateFullscreen:         "_NET_WM_STATE_FULLSCREEN",
	NetWMWindowType:              "_NET_WM_WINDOW_TYPE",
	NetWMWindowTypeDesktop:       "_NET_WM_WINDOW_TYPE_DESKTOP",
	NetWMWindowTypeDialog:        "_NET_WM_WINDOW_TYPE_DIALOG",
	NetWMWindowTypeDock:          "_NET_WM_WINDOW_TYPE_DOCK",
	NetWMWindowTypeMenu:          "_NET_WM_WINDOW_TYPE_MENU",
	NetWMWindowTypeNotification:  "_NET_WM_WINDOW_TYPE_NOTIFICATION",
	NetCloseWindow:               "_NET_CLOSE_WINDOW",
	NetFrameExtents:              "_NET_FRAME_EXTENTS",
	NetWMStrutPartial:            "_NET_WM_STRUT_PARTIAL",

	XEmbed:     "_XEMBED",
	XEmbedInfo: "_XEMBED_INFO",

	MarsWMStateTiled: "_MARS_WM_STATE_TILED",
	MarsStatus:       "_MARS_STATUS",
}

// Name returns the atom's registered X name.
func (a Atom) Name() string {
	if a < 0 || a >= atomCount {
		return ""
	}
	return names[a]
}

// Intern resolves a to a server-side atom, interning it on first use. The
// xgbutil connection caches the xproto.Atom itself, so repeated calls are
// cheap.
func (a Atom) Intern(X *xgbutil.XUtil) (uint32, error) {
	got, err := xprop.Atm(X, a.Name())
	if err != nil {
		return 0, err
	}
	return uint32(got), nil
}

// Supported lists every atom advertised in _NET_SUPPORTED.
// _NET_DESKTOP_VIEWPORT and _NET_DESKTOP_GEOMETRY are deliberately
// excluded: they're in the catalog for completeness but nothing here
// implements them, and advertising an unimplemented atom misleads pagers.
var Supported = []Atom{
	NetActiveWindow,
	NetClientList,
	NetClientListStacking,
	NetCloseWindow,
	NetCurrentDesktop,
	NetDesktopNames,
	NetNumberOfDesktops,
	NetSupported,
	NetSupportingWMCheck,
	NetWMDesktop,
	NetWMName,
	NetWMState,
	NetWMStateFullscreen,
	NetWMWindowType,
	NetWMWindowTypeDesktop,
	NetWMWindowTypeDialog,
	NetWMWindowTypeDock,
	NetWMWindowTypeMenu,
	NetWMWindowTypeNotification,
	NetWorkarea,
	MarsWMStateTiled,
	MarsStatus,
}
