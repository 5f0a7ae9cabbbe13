// Package mcp exposes the cursor monitor to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/cursormon/internal/capture"
	"github.com/1broseidon/cursormon/internal/config"
	"github.com/1broseidon/cursormon/internal/x11"
)

const (
	ServerName    = "cursormon"
	ServerVersion = "0.1.0"
)

// Server is the MCP server backed by a screen-scoped cursor monitor.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	logger    *slog.Logger

	// mu serializes tool handlers: the shared X connection and the
	// monitor are single-threaded.
	mu      sync.Mutex
	display *x11.Display
	monitor capture.MouseCursorMonitor
	sink    *capture.Sink
}

// NewServer connects to the X server and builds a monitor for the whole
// screen.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	display, err := x11.NewDisplay(cfg.Display, logger)
	if err != nil {
		return nil, err
	}
	opts := x11.CaptureOptions{Display: display, Logger: logger}
	monitor, err := x11.NewCursorMonitorForScreen(opts, 0)
	if err != nil {
		display.Close()
		return nil, fmt.Errorf("failed to create cursor monitor: %w", err)
	}
	sink := &capture.Sink{}
	monitor.Init(sink, capture.ShapeAndPosition)

	s := &Server{
		config:  cfg,
		logger:  logger,
		display: display,
		monitor: monitor,
		sink:    sink,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close releases the monitor and the display connection.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.monitor.Close(); err != nil {
		return err
	}
	s.display.Close()
	return nil
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "cursor_position",
		Description: "Report the current mouse cursor position in screen coordinates. Runs one capture tick against the X server.",
	}, s.handleCursorPosition)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "cursor_shape",
		Description: "Report the current cursor shape metadata (bitmap dimensions and hotspot). available is false until the X server has delivered a shape, or always when XFixes is missing.",
	}, s.handleCursorShape)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "screen_snapshot",
		Description: "Capture a display as PNG with the mouse cursor composited at its current position. Returns the written file path.",
	}, s.handleScreenSnapshot)
}
