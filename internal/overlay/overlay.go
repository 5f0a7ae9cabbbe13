// Package overlay composites a captured cursor shape onto screen frames.
package overlay

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/kbinani/screenshot"

	"github.com/1broseidon/cursormon/internal/capture"
)

// Draw blends cursor over dst with the hotspot anchored at pos, clipping
// to the destination bounds. Cursor pixels are premultiplied ARGB: fully
// transparent pixels are skipped, opaque pixels replace the destination,
// everything else is blended.
func Draw(dst *image.RGBA, cursor *capture.MouseCursor, pos image.Point) {
	if cursor == nil || cursor.Image == nil {
		return
	}
	frame := cursor.Image
	origin := pos.Sub(cursor.Hotspot)
	bounds := dst.Bounds()

	for y := 0; y < frame.Height; y++ {
		dy := origin.Y + y
		if dy < bounds.Min.Y || dy >= bounds.Max.Y {
			continue
		}
		for x := 0; x < frame.Width; x++ {
			dx := origin.X + x
			if dx < bounds.Min.X || dx >= bounds.Max.X {
				continue
			}
			i := (y*frame.Width + x) * 4
			b, g, r, a := frame.Data[i], frame.Data[i+1], frame.Data[i+2], frame.Data[i+3]
			if a == 0 {
				continue
			}
			o := dst.PixOffset(dx, dy)
			if a == 255 {
				dst.Pix[o+0] = r
				dst.Pix[o+1] = g
				dst.Pix[o+2] = b
				continue
			}
			dst.Pix[o+0] = blendPremul(r, dst.Pix[o+0], a)
			dst.Pix[o+1] = blendPremul(g, dst.Pix[o+1], a)
			dst.Pix[o+2] = blendPremul(b, dst.Pix[o+2], a)
		}
	}
}

// blendPremul composites one premultiplied source channel over a
// destination channel: out = src + dst*(255-a)/255.
func blendPremul(src, dst, alpha uint8) uint8 {
	v := uint32(src) + uint32(dst)*uint32(255-alpha)/255
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// Composite grabs the given display and draws the cursor at pos when the
// state reports it inside the captured area.
func Composite(displayIndex int, cursor *capture.MouseCursor, state capture.CursorState, pos image.Point) (*image.RGBA, error) {
	img, err := screenshot.CaptureDisplay(displayIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to capture display %d: %w", displayIndex, err)
	}
	if cursor != nil && state == capture.CursorInside {
		Draw(img, cursor, pos)
	}
	return img, nil
}

// WritePNG encodes img to path, creating parent directories as needed.
func WritePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}
