package x11

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/cursormon/internal/capture"
)

// xserver is the slice of Display the cursor monitor drives. Tests
// substitute a fake so the monitor can run without an X connection.
type xserver interface {
	AddEventHandler(code byte, h EventHandler)
	RemoveEventHandler(code byte, h EventHandler)
	ProcessPendingEvents()
	TrapErrors() ErrorTrap
	QueryXFixes() (eventBase, errorBase byte, present bool)
	SelectCursorInput(w xproto.Window) error
	CursorImage() (*CursorImage, error)
	QueryPointer(w xproto.Window) (Pointer, error)
	QueryTree(w xproto.Window) (root, parent xproto.Window, err error)
}

// CaptureOptions carries the shared resources a monitor binds to.
type CaptureOptions struct {
	Display *Display
	Logger  *slog.Logger
}

// CursorMonitor reports the cursor's shape and its position relative to
// one target window, or to the root in screen mode. Shape changes arrive
// as XFixes CursorNotify events drained at the start of every Capture;
// the position is polled with QueryPointer on every Capture.
//
// All methods must run on the goroutine that owns the shared Display.
type CursorMonitor struct {
	display xserver
	logger  *slog.Logger
	window  xproto.Window

	callback capture.Callback
	mode     capture.Mode

	haveXFixes      bool
	xfixesEventBase byte
	xfixesErrorBase byte

	// cursorShape holds a shape produced by a notification until the next
	// Capture hands it to the callback.
	cursorShape *capture.MouseCursor
}

var (
	_ capture.MouseCursorMonitor = (*CursorMonitor)(nil)
	_ EventHandler               = (*CursorMonitor)(nil)
)

func newCursorMonitor(display xserver, window xproto.Window, logger *slog.Logger) *CursorMonitor {
	return &CursorMonitor{
		display: display,
		logger:  loggerOrDefault(logger),
		window:  window,
		mode:    capture.ShapeAndPosition,
	}
}

// NewCursorMonitorForWindow creates a monitor scoped to the top-level
// ancestor of w. Window IDs discovered through WM_STATE may have been
// re-parented by the window manager for decorations, and QueryPointer
// only accepts direct children of the root, so w is resolved first.
func NewCursorMonitorForWindow(opts CaptureOptions, w xproto.Window) (*CursorMonitor, error) {
	if opts.Display == nil {
		return nil, errors.New("x11: capture options carry no display connection")
	}
	top := topLevelWindow(opts.Display, w, loggerOrDefault(opts.Logger))
	if top == xproto.WindowNone {
		return nil, fmt.Errorf("x11: no top-level window found for 0x%x", uint32(w))
	}
	return newCursorMonitor(opts.Display, top, opts.Logger), nil
}

// NewCursorMonitorForScreen creates a monitor scoped to the whole screen:
// the target is the root window and the cursor is always inside it.
func NewCursorMonitorForScreen(opts CaptureOptions, screen int) (*CursorMonitor, error) {
	if opts.Display == nil {
		return nil, errors.New("x11: capture options carry no display connection")
	}
	return newCursorMonitor(opts.Display, opts.Display.Root(), opts.Logger), nil
}

// Init registers the callback and subscribes to cursor change
// notifications. Calling Init twice, or with a nil callback, is a
// programming error.
func (m *CursorMonitor) Init(callback capture.Callback, mode capture.Mode) {
	if m.callback != nil {
		panic("x11: CursorMonitor.Init called twice")
	}
	if callback == nil {
		panic("x11: CursorMonitor.Init called with nil callback")
	}
	m.callback = callback
	m.mode = mode

	m.xfixesEventBase, m.xfixesErrorBase, m.haveXFixes = m.display.QueryXFixes()
	if !m.haveXFixes {
		m.logger.Info("X server does not support XFixes, cursor shape updates disabled")
		return
	}

	if err := m.display.SelectCursorInput(m.window); err != nil {
		m.logger.Warn("failed to select cursor input", "window", uint32(m.window), "error", err)
	}
	m.display.AddEventHandler(m.notifyCode(), m)

	// Fetch the current shape now so the first Capture has it.
	m.captureCursor()
}

// Close unregisters the shape-change handler. Monitors that never
// subscribed have nothing to tear down.
func (m *CursorMonitor) Close() error {
	if m.haveXFixes {
		m.display.RemoveEventHandler(m.notifyCode(), m)
		m.haveXFixes = false
	}
	return nil
}

// Capture runs one tick: it drains pending shape-change notifications,
// delivers a pending shape if one was produced, and in ShapeAndPosition
// mode polls and reports the pointer position relative to the target.
func (m *CursorMonitor) Capture() {
	if m.callback == nil {
		panic("x11: CursorMonitor.Capture called before Init")
	}

	// XFixes delivers shape changes as events; drain them so
	// captureCursor has run for any notification queued since the last
	// tick.
	m.display.ProcessPendingEvents()

	// cursorShape is set only if a cursor change was notified.
	if m.cursorShape != nil {
		shape := m.cursorShape
		m.cursorShape = nil
		m.callback.OnMouseCursor(shape)
	}

	if m.mode != capture.ShapeAndPosition {
		return
	}

	trap := m.display.TrapErrors()
	ptr, err := m.display.QueryPointer(m.window)
	trapErr := trap.LastError()

	state := capture.CursorOutside
	var pos image.Point
	if err == nil && trapErr == nil {
		pos = image.Pt(int(ptr.WinX), int(ptr.WinY))
		// In screen mode the target is the root, so the cursor is always
		// inside. For a window target the server reports the child of the
		// target under the pointer; None means the pointer is elsewhere.
		if m.window == ptr.Root || ptr.Child != xproto.WindowNone {
			state = capture.CursorInside
		}
	}
	m.callback.OnMouseCursorPosition(state, pos)
}

// HandleXEvent implements EventHandler. It never claims the event: other
// subscribers of cursor notifications must still see it.
func (m *CursorMonitor) HandleXEvent(ev xgb.Event) bool {
	if !m.haveXFixes {
		return false
	}
	if notify, ok := ev.(xfixes.CursorNotifyEvent); ok && notify.Subtype == xfixes.CursorNotifyDisplayCursor {
		m.captureCursor()
	}
	return false
}

func (m *CursorMonitor) notifyCode() byte {
	return m.xfixesEventBase + xfixes.CursorNotify
}

// captureCursor fetches the current cursor image and stores it as the
// pending shape. On a transient X failure the previous pending shape, if
// any, is left untouched.
func (m *CursorMonitor) captureCursor() {
	trap := m.display.TrapErrors()
	img, err := m.display.CursorImage()
	trapErr := trap.LastError()
	if err != nil || trapErr != nil {
		return
	}

	width := int(img.Width)
	height := int(img.Height)
	frame := capture.FrameFromCursorPixels(width, height, img.Pixels)

	// The server can report a hotspot inconsistent with the image; clamp
	// it to the image dimensions.
	hotspot := image.Pt(min(int(img.Xhot), width), min(int(img.Yhot), height))

	m.cursorShape = &capture.MouseCursor{Image: frame, Hotspot: hotspot}
}

// topLevelWindow walks the ancestor chain of w until it reaches a direct
// child of the root. Returns WindowNone if the tree query fails, for
// example when the window has vanished.
func topLevelWindow(d xserver, w xproto.Window, logger *slog.Logger) xproto.Window {
	for {
		root, parent, err := d.QueryTree(w)
		if err != nil {
			logger.Error("failed to query window tree", "window", uint32(w), "error", err)
			return xproto.WindowNone
		}
		if parent == root {
			return w
		}
		w = parent
	}
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
