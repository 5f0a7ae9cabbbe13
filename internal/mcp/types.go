package mcp

// CursorPositionInput is the input for the cursor_position tool.
type CursorPositionInput struct{}

// CursorPositionOutput is the output for the cursor_position tool.
type CursorPositionOutput struct {
	State string `json:"state"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// CursorShapeInput is the input for the cursor_shape tool.
type CursorShapeInput struct{}

// CursorShapeOutput is the output for the cursor_shape tool.
type CursorShapeOutput struct {
	Available bool `json:"available"`
	Width     int  `json:"width,omitempty"`
	Height    int  `json:"height,omitempty"`
	HotspotX  int  `json:"hotspot_x,omitempty"`
	HotspotY  int  `json:"hotspot_y,omitempty"`
}

// ScreenSnapshotInput is the input for the screen_snapshot tool.
type ScreenSnapshotInput struct {
	Display int    `json:"display,omitempty" jsonschema:"Display index to capture (default: 0)"`
	Path    string `json:"path,omitempty" jsonschema:"Output PNG path (default: timestamped file in the configured output directory)"`
}

// ScreenSnapshotOutput is the output for the screen_snapshot tool.
type ScreenSnapshotOutput struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
