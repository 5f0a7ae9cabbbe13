// Package x11 implements the X11 backend of the cursor monitor on top of
// the XFixes extension.
package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// EventHandler receives raw X events drained from a shared Display. The
// return value reports whether the handler claimed the event exclusively;
// returning false lets later handlers registered for the same code see it
// too.
type EventHandler interface {
	HandleXEvent(ev xgb.Event) bool
}

// CursorImage is a raw cursor image as delivered by the X server: ARGB
// samples stored one per pixel in long-sized cells (Xlib-compatible
// layout), so only the low 32 bits of each cell carry pixel data.
type CursorImage struct {
	Width  uint16
	Height uint16
	Xhot   uint16
	Yhot   uint16
	Pixels []uint64
}

// Pointer is the result of a pointer query relative to a target window.
type Pointer struct {
	Root  xproto.Window
	Child xproto.Window
	RootX int16
	RootY int16
	WinX  int16
	WinY  int16
}

// Display wraps a shared X connection. It owns the event-handler registry
// used to dispatch extension events and the error trap that suppresses
// transient X errors during risky requests.
//
// A Display is not safe for concurrent use: every monitor sharing it must
// run on the goroutine that owns the connection, or be externally
// serialized.
type Display struct {
	xu     *xgbutil.XUtil
	logger *slog.Logger

	handlers map[byte][]EventHandler

	xfixesQueried   bool
	xfixesPresent   bool
	xfixesEventBase byte
	xfixesErrorBase byte

	trap *errorTrap
}

// NewDisplay connects to the X server named by display (":0" style; empty
// uses $DISPLAY).
func NewDisplay(display string, logger *slog.Logger) (*Display, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Display{
		xu:       xu,
		logger:   logger,
		handlers: make(map[byte][]EventHandler),
	}, nil
}

// Conn returns the underlying X connection.
func (d *Display) Conn() *xgb.Conn { return d.xu.Conn() }

// XUtil returns the xgbutil handle for EWMH helpers.
func (d *Display) XUtil() *xgbutil.XUtil { return d.xu }

// Root returns the root window of the default screen.
func (d *Display) Root() xproto.Window { return d.xu.RootWin() }

// Close disconnects from the X server. Callers must close every monitor
// using this display first.
func (d *Display) Close() { d.xu.Conn().Close() }

// AddEventHandler registers h for the given event code. Handlers run in
// registration order when ProcessPendingEvents drains a matching event.
func (d *Display) AddEventHandler(code byte, h EventHandler) {
	d.handlers[code] = append(d.handlers[code], h)
}

// RemoveEventHandler removes a previously registered handler. Removing a
// handler that was never added is a no-op.
func (d *Display) RemoveEventHandler(code byte, h EventHandler) {
	hs := d.handlers[code]
	for i, cur := range hs {
		if cur == h {
			d.handlers[code] = append(hs[:i:i], hs[i+1:]...)
			return
		}
	}
}

// ProcessPendingEvents drains every event already queued on the
// connection without blocking and dispatches each to the handlers
// registered for its code. X errors surfacing in the stream are recorded
// by an armed error trap, otherwise logged.
func (d *Display) ProcessPendingEvents() {
	for {
		ev, xerr := d.Conn().PollForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			if d.trap != nil {
				d.trap.record(xerr)
			} else {
				d.logger.Warn("unhandled X error", "error", xerr.Error())
			}
			continue
		}
		code, ok := d.eventCode(ev)
		if !ok {
			continue
		}
		for _, h := range d.handlers[code] {
			if h.HandleXEvent(ev) {
				break
			}
		}
	}
}

// eventCode recovers the wire event code for a decoded event. xgb hands
// back typed values, so extension events map through the extension's
// queried event base.
func (d *Display) eventCode(ev xgb.Event) (byte, bool) {
	switch ev.(type) {
	case xfixes.CursorNotifyEvent:
		if !d.xfixesPresent {
			return 0, false
		}
		return d.xfixesEventBase + xfixes.CursorNotify, true
	}
	return 0, false
}

// QueryXFixes reports whether the XFixes extension is available along
// with its event and error bases. The first call queries and negotiates
// the extension; later calls return the cached answer.
func (d *Display) QueryXFixes() (eventBase, errorBase byte, present bool) {
	if d.xfixesQueried {
		return d.xfixesEventBase, d.xfixesErrorBase, d.xfixesPresent
	}
	d.xfixesQueried = true

	const name = "XFIXES"
	reply, err := xproto.QueryExtension(d.Conn(), uint16(len(name)), name).Reply()
	if err != nil || !reply.Present {
		return 0, 0, false
	}
	if err := xfixes.Init(d.Conn()); err != nil {
		return 0, 0, false
	}
	// The server rejects XFixes requests from clients that have not
	// negotiated a version.
	if _, err := xfixes.QueryVersion(d.Conn(), 2, 0).Reply(); err != nil {
		return 0, 0, false
	}

	d.xfixesPresent = true
	d.xfixesEventBase = reply.FirstEvent
	d.xfixesErrorBase = reply.FirstError
	return d.xfixesEventBase, d.xfixesErrorBase, true
}

// SelectCursorInput asks the server to deliver display-cursor change
// notifications scoped to w.
func (d *Display) SelectCursorInput(w xproto.Window) error {
	return xfixes.SelectCursorInputChecked(d.Conn(), w, xfixes.CursorNotifyMaskDisplayCursor).Check()
}

// CursorImage fetches the current cursor image from the server.
func (d *Display) CursorImage() (*CursorImage, error) {
	reply, err := xfixes.GetCursorImage(d.Conn()).Reply()
	if err != nil {
		return nil, err
	}
	img := &CursorImage{
		Width:  reply.Width,
		Height: reply.Height,
		Xhot:   reply.Xhot,
		Yhot:   reply.Yhot,
		Pixels: make([]uint64, len(reply.CursorImage)),
	}
	for i, p := range reply.CursorImage {
		img.Pixels[i] = uint64(p)
	}
	return img, nil
}

// QueryPointer reports the pointer position relative to w.
func (d *Display) QueryPointer(w xproto.Window) (Pointer, error) {
	reply, err := xproto.QueryPointer(d.Conn(), w).Reply()
	if err != nil {
		return Pointer{}, err
	}
	return Pointer{
		Root:  reply.Root,
		Child: reply.Child,
		RootX: reply.RootX,
		RootY: reply.RootY,
		WinX:  reply.WinX,
		WinY:  reply.WinY,
	}, nil
}

// QueryTree returns the root and immediate parent of w.
func (d *Display) QueryTree(w xproto.Window) (root, parent xproto.Window, err error) {
	reply, err := xproto.QueryTree(d.Conn(), w).Reply()
	if err != nil {
		return 0, 0, err
	}
	return reply.Root, reply.Parent, nil
}
