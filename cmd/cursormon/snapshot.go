package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/1broseidon/cursormon/internal/capture"
	"github.com/1broseidon/cursormon/internal/config"
	"github.com/1broseidon/cursormon/internal/overlay"
	"github.com/1broseidon/cursormon/internal/x11"
)

func runSnapshot(args []string) int {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	out := fs.String("o", "", "output PNG path (default: timestamped file in output_dir)")
	displayIndex := fs.Int("display", 0, "display index to capture")
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

	opts := x11.CaptureOptions{Display: display, Logger: logger}
	monitor, err := x11.NewCursorMonitorForScreen(opts, *displayIndex)
	if err != nil {
		log.Fatalf("Failed to create cursor monitor: %v", err)
	}
	defer monitor.Close()

	sink := &capture.Sink{}
	monitor.Init(sink, capture.ShapeAndPosition)
	monitor.Capture()

	img, err := overlay.Composite(*displayIndex, sink.Shape, sink.State, sink.Pos)
	if err != nil {
		log.Fatalf("Failed to capture screen: %v", err)
	}

	path := *out
	if path == "" {
		name := time.Now().Format("cursormon-20060102-150405.png")
		path = filepath.Join(cfg.OutputDir, name)
	}
	if err := overlay.WritePNG(path, img); err != nil {
		log.Fatalf("Failed to write snapshot: %v", err)
	}

	fmt.Println(path)
	return 0
}
