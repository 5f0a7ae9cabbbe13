package main

import (
	"flag"
	"image"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/cursormon/internal/capture"
	"github.com/1broseidon/cursormon/internal/config"
	"github.com/1broseidon/cursormon/internal/x11"
)

// watchReporter logs every shape change and every position movement.
type watchReporter struct {
	logger *slog.Logger

	havePos   bool
	lastState capture.CursorState
	lastPos   image.Point
}

func (r *watchReporter) OnMouseCursor(cursor *capture.MouseCursor) {
	r.logger.Info("cursor shape changed",
		"width", cursor.Image.Width,
		"height", cursor.Image.Height,
		"hotspot_x", cursor.Hotspot.X,
		"hotspot_y", cursor.Hotspot.Y)
}

func (r *watchReporter) OnMouseCursorPosition(state capture.CursorState, pos image.Point) {
	// The monitor reports every tick; only log movement and state flips.
	if r.havePos && state == r.lastState && pos == r.lastPos {
		return
	}
	r.havePos = true
	r.lastState = state
	r.lastPos = pos
	r.logger.Info("cursor position",
		"state", state.String(),
		"x", pos.X,
		"y", pos.Y)
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	title := fs.String("title", "", "monitor the window whose title contains this substring (default: whole screen)")
	windowID := fs.Uint("window", 0, "monitor this X window id")
	interval := fs.Duration("interval", 0, "tick interval (default: from config)")
	shapeOnly := fs.Bool("shape-only", false, "report shape changes only, skip position polling")
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := newLogger(cfg)

	display, err := x11.NewDisplay(cfg.Display, logger)
	if err != nil {
		log.Fatalf("Failed to connect to X server: %v", err)
	}
	defer display.Close()

	monitor, err := newMonitor(display, logger, *title, *windowID)
	if err != nil {
		log.Fatalf("Failed to create cursor monitor: %v", err)
	}
	defer monitor.Close()

	mode := cfg.CaptureMode()
	if *shapeOnly {
		mode = capture.ShapeOnly
	}
	monitor.Init(&watchReporter{logger: logger}, mode)

	tick := cfg.Interval()
	if *interval > 0 {
		tick = *interval
	}

	return watchLoop(monitor, tick)
}

// newMonitor resolves the capture target from the flags: an explicit
// window id wins, then a title search, then the whole screen.
func newMonitor(display *x11.Display, logger *slog.Logger, title string, windowID uint) (*x11.CursorMonitor, error) {
	opts := x11.CaptureOptions{Display: display, Logger: logger}
	if windowID != 0 {
		return x11.NewCursorMonitorForWindow(opts, xproto.Window(windowID))
	}
	if title != "" {
		win, err := display.FindWindowByTitle(title)
		if err != nil {
			return nil, err
		}
		return x11.NewCursorMonitorForWindow(opts, win)
	}
	return x11.NewCursorMonitorForScreen(opts, 0)
}

func watchLoop(monitor *x11.CursorMonitor, tick time.Duration) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			return 0
		case <-ticker.C:
			monitor.Capture()
		}
	}
}
