// Package xserver owns the X connection and the startup handshake: claiming
// the substructure-redirect grant on root, detecting an already-running WM,
// creating the supporting-check window, and advertising _NET_SUPPORTED.
package xserver

import (
	"errors"
	"fmt"
	"time"

	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/xwindow"

	log "github.com/sirupsen/logrus"

	"github.com/mars-wm/marswm/internal/atom"
	"github.com/mars-wm/marswm/internal/buildinfo"
)

// ErrAlreadyRunning means another client already holds the
// substructure-redirect grant on root; only one window manager can run per
// display.
var ErrAlreadyRunning = errors.New("another window manager is already running on this display")

// Conn bundles the xgbutil connection together with the supporting-check
// window and the few pieces of root-level state every subsystem needs.
type Conn struct {
	X        *xgbutil.XUtil
	Root     xproto.Window
	CheckWin xproto.Window
	HasRandR bool
}

// Connect opens a new X connection, claims substructure-redirect on the
// root window, and, if no other WM already holds it, creates the
// supporting-check window and advertises _NET_SUPPORTED. It retries
// transient connection failures.
func Connect(retries int, retryDelay time.Duration) (*Conn, error) {
	var lastErr error
	for i := 0; i <= retries; i++ {
		if i > 0 {
			log.Warn("Retrying X connection (", i, "/", retries, ")...")
			time.Sleep(retryDelay)
		}

		X, err := xgbutil.NewConn()
		if err != nil {
			lastErr = fmt.Errorf("connection to X server failed: %w", err)
			log.Error(lastErr)
			continue
		}

		c := &Conn{X: X, Root: X.RootWin()}
		if err := c.claimWindowManager(); err != nil {
			if errors.Is(err, ErrAlreadyRunning) {
				return nil, err
			}
			lastErr = err
			log.Error(err)
			continue
		}

		if err := randr.Init(X.Conn()); err != nil {
			log.Warn("XRandR unavailable, falling back to root ConfigureNotify polling: ", err)
		} else {
			c.HasRandR = true
			randr.SelectInput(X.Conn(), c.Root,
				randr.NotifyMaskScreenChange|randr.NotifyMaskCrtcChange|randr.NotifyMaskOutputChange)
		}

		log.Info("Starting [", buildinfo.Summary(), "]")
		return c, nil
	}

	return nil, lastErr
}

// claimWindowManager performs the substructure-redirect grab that only one
// client may hold at a time. xproto's Checked request variant makes this a
// synchronous round trip: ChangeWindowAttributesChecked's Check() blocks for
// the server's reply and returns any protocol error directly, so a BadAccess
// here, and only here, means another WM already owns the root event mask.
// No asynchronous error handler is needed.
func (c *Conn) claimWindowManager() error {
	mask := xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify |
		xproto.EventMaskStructureNotify | xproto.EventMaskPropertyChange
	err := xproto.ChangeWindowAttributesChecked(c.X.Conn(), c.Root, xproto.CwEventMask, []uint32{uint32(mask)}).Check()
	if err != nil {
		return ErrAlreadyRunning
	}

	if err := c.createCheckWindow(); err != nil {
		return err
	}
	if err := c.exportSupported(); err != nil {
		return err
	}

	return nil
}

func (c *Conn) createCheckWindow() error {
	win, err := xwindow.Generate(c.X)
	if err != nil {
		return err
	}
	if err := win.CreateChecked(c.Root, 0, 0, 1, 1, 0); err != nil {
		return err
	}
	c.CheckWin = win.Id

	if err := ewmh.SupportingWmCheckSet(c.X, c.Root, win.Id); err != nil {
		return err
	}
	if err := ewmh.SupportingWmCheckSet(c.X, win.Id, win.Id); err != nil {
		return err
	}
	return ewmh.WmNameSet(c.X, win.Id, buildinfo.Name)
}

func (c *Conn) exportSupported() error {
	names := make([]string, len(atom.Supported))
	for i, a := range atom.Supported {
		names[i] = a.Name()
	}
	return ewmh.SupportedSet(c.X, names)
}

// Close closes the X connection and releases the supporting-check window.
func (c *Conn) Close() {
	if c.CheckWin != 0 {
		xproto.DestroyWindow(c.X.Conn(), c.CheckWin)
	}
	c.X.Conn().Close()
}
