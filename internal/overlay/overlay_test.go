package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/1broseidon/cursormon/internal/capture"
)

func solidFrame(w, h int, argb uint64) *capture.Frame {
	cells := make([]uint64, w*h)
	for i := range cells {
		cells[i] = argb
	}
	return capture.FrameFromCursorPixels(w, h, cells)
}

func grayBackground(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = 100
		img.Pix[i+1] = 100
		img.Pix[i+2] = 100
		img.Pix[i+3] = 255
	}
	return img
}

func TestDraw_OpaquePixelReplaces(t *testing.T) {
	dst := grayBackground(4, 4)
	cursor := &capture.MouseCursor{Image: solidFrame(1, 1, 0xffff0000)} // opaque red
	Draw(dst, cursor, image.Pt(2, 2))

	if got := dst.RGBAAt(2, 2); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("expected opaque red at (2,2), got %v", got)
	}
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{100, 100, 100, 255}) {
		t.Fatalf("pixel outside the cursor was touched: %v", got)
	}
}

func TestDraw_TransparentPixelSkipped(t *testing.T) {
	dst := grayBackground(4, 4)
	cursor := &capture.MouseCursor{Image: solidFrame(1, 1, 0x00000000)}
	Draw(dst, cursor, image.Pt(2, 2))

	if got := dst.RGBAAt(2, 2); got != (color.RGBA{100, 100, 100, 255}) {
		t.Fatalf("transparent cursor pixel changed the destination: %v", got)
	}
}

func TestDraw_BlendsPremultiplied(t *testing.T) {
	dst := grayBackground(4, 4)
	// Half-transparent premultiplied white: a=128, channels already
	// multiplied down to 128.
	cursor := &capture.MouseCursor{Image: solidFrame(1, 1, 0x80808080)}
	Draw(dst, cursor, image.Pt(0, 0))

	// out = 128 + 100*(255-128)/255 = 128 + 49 = 177.
	got := dst.RGBAAt(0, 0)
	if got.R != 177 || got.G != 177 || got.B != 177 {
		t.Fatalf("expected blended 177 channels, got %v", got)
	}
}

func TestDraw_HotspotAnchorsImage(t *testing.T) {
	dst := grayBackground(8, 8)
	cursor := &capture.MouseCursor{
		Image:   solidFrame(2, 2, 0xff00ff00), // opaque green
		Hotspot: image.Pt(1, 1),
	}
	Draw(dst, cursor, image.Pt(4, 4))

	// Top-left corner of the bitmap lands at pos - hotspot = (3,3).
	if got := dst.RGBAAt(3, 3); got != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("expected green at (3,3), got %v", got)
	}
	if got := dst.RGBAAt(5, 5); got != (color.RGBA{100, 100, 100, 255}) {
		t.Fatalf("cursor drawn past its extent at (5,5): %v", got)
	}
}

func TestDraw_ClipsToBounds(t *testing.T) {
	dst := grayBackground(4, 4)
	cursor := &capture.MouseCursor{Image: solidFrame(4, 4, 0xffff0000)}
	// Mostly off the top-left corner.
	Draw(dst, cursor, image.Pt(-2, -2))

	if got := dst.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("expected the visible corner drawn, got %v", got)
	}
	if got := dst.RGBAAt(3, 3); got != (color.RGBA{100, 100, 100, 255}) {
		t.Fatalf("pixel outside the cursor extent was touched: %v", got)
	}
}

func TestDraw_NilCursorIsNoop(t *testing.T) {
	dst := grayBackground(2, 2)
	Draw(dst, nil, image.Pt(0, 0))
	Draw(dst, &capture.MouseCursor{}, image.Pt(0, 0))
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{100, 100, 100, 255}) {
		t.Fatalf("nil cursor modified the destination: %v", got)
	}
}
