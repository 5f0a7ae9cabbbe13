package mcp

import (
	"context"
	"path/filepath"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/cursormon/internal/overlay"
)

func (s *Server) handleCursorPosition(_ context.Context, _ *mcpsdk.CallToolRequest, _ CursorPositionInput) (*mcpsdk.CallToolResult, CursorPositionOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.monitor.Capture()
	return nil, CursorPositionOutput{
		State: s.sink.State.String(),
		X:     s.sink.Pos.X,
		Y:     s.sink.Pos.Y,
	}, nil
}

func (s *Server) handleCursorShape(_ context.Context, _ *mcpsdk.CallToolRequest, _ CursorShapeInput) (*mcpsdk.CallToolResult, CursorShapeOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.monitor.Capture()
	shape := s.sink.Shape
	if shape == nil {
		return nil, CursorShapeOutput{}, nil
	}
	return nil, CursorShapeOutput{
		Available: true,
		Width:     shape.Image.Width,
		Height:    shape.Image.Height,
		HotspotX:  shape.Hotspot.X,
		HotspotY:  shape.Hotspot.Y,
	}, nil
}

func (s *Server) handleScreenSnapshot(_ context.Context, _ *mcpsdk.CallToolRequest, args ScreenSnapshotInput) (*mcpsdk.CallToolResult, ScreenSnapshotOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.monitor.Capture()
	img, err := overlay.Composite(args.Display, s.sink.Shape, s.sink.State, s.sink.Pos)
	if err != nil {
		return nil, ScreenSnapshotOutput{}, err
	}

	path := args.Path
	if path == "" {
		name := time.Now().Format("cursormon-20060102-150405.png")
		path = filepath.Join(s.config.OutputDir, name)
	}
	if err := overlay.WritePNG(path, img); err != nil {
		return nil, ScreenSnapshotOutput{}, err
	}

	bounds := img.Bounds()
	s.logger.Info("wrote snapshot", "path", path, "width", bounds.Dx(), "height", bounds.Dy())
	return nil, ScreenSnapshotOutput{
		Path:   path,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
