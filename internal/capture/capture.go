// Package capture defines the platform-neutral contract between cursor
// monitor backends and the capture pipelines that consume them.
package capture

import (
	"fmt"
	"image"
)

// Mode selects what a monitor reports on each Capture tick.
type Mode int

const (
	// ShapeAndPosition reports cursor shape changes and polls the cursor
	// position on every tick.
	ShapeAndPosition Mode = iota
	// ShapeOnly reports cursor shape changes and skips position polling.
	ShapeOnly
)

// CursorState classifies the cursor position relative to the capture
// target.
type CursorState int

const (
	// CursorInside means the cursor is over the target or one of its
	// descendants. In screen mode the cursor is always inside.
	CursorInside CursorState = iota
	// CursorOutside means the cursor is elsewhere, or the position query
	// failed this tick.
	CursorOutside
)

func (s CursorState) String() string {
	switch s {
	case CursorInside:
		return "inside"
	case CursorOutside:
		return "outside"
	}
	return fmt.Sprintf("CursorState(%d)", int(s))
}

// Callback receives the outputs of a Capture tick. Implementations are
// owned by the caller and must outlive the monitor once Init has run.
type Callback interface {
	// OnMouseCursor is called at most once per Capture, when a shape
	// change was pending. Ownership of the cursor transfers to the
	// callback; the monitor never touches it again.
	OnMouseCursor(cursor *MouseCursor)

	// OnMouseCursorPosition is called at most once per Capture, and only
	// when the mode requests position tracking. The position is relative
	// to the capture target and delivered every tick regardless of state.
	OnMouseCursorPosition(state CursorState, pos image.Point)
}

// MouseCursorMonitor reports the cursor's visual shape and its position
// relative to a capture target. Implementations are poll-driven: the
// caller invokes Capture on its own cadence, and all work happens
// synchronously inside that call.
type MouseCursorMonitor interface {
	// Init must be called exactly once before the first Capture. Calling
	// it twice, or with a nil callback, is a programming error.
	Init(callback Callback, mode Mode)

	// Capture runs one tick: it drains pending shape-change notifications
	// and delivers the results through the callback.
	Capture()

	// Close releases the monitor's event subscriptions. The shared
	// display connection is not closed.
	Close() error
}

// Sink is a Callback that retains the most recent shape and position, for
// consumers that want pull access to the latest cursor state.
type Sink struct {
	Shape *MouseCursor
	State CursorState
	Pos   image.Point
}

func (s *Sink) OnMouseCursor(cursor *MouseCursor) { s.Shape = cursor }

func (s *Sink) OnMouseCursorPosition(state CursorState, pos image.Point) {
	s.State, s.Pos = state, pos
}
