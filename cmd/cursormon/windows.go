package main

import (
	"fmt"
	"log"

	"github.com/1broseidon/cursormon/internal/config"
	"github.com/1broseidon/cursormon/internal/x11"
)

func runWindows(args []string) int {
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

	infos, err := display.ListWindows()
	if err != nil {
		log.Fatalf("Failed to list windows: %v", err)
	}
	for _, info := range infos {
		title := info.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("0x%08x  %s\n", uint32(info.ID), title)
	}
	return 0
}
