package capture

import (
	"encoding/binary"
	"image"
)

const bytesPerPixel = 4

// Frame is an owned bitmap in 32-bit-per-pixel BGRA order with a top-left
// origin and no stride padding: Data holds exactly Width*Height pixels in
// row-major, left-to-right, top-to-bottom order.
type Frame struct {
	Width  int
	Height int
	Data   []byte
}

// NewFrame allocates a zeroed frame of the given dimensions.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Data:   make([]byte, width*height*bytesPerPixel),
	}
}

// FrameFromCursorPixels builds a frame from a raw cursor image as the
// windowing system delivers it: one ARGB sample per pixel in long-sized
// cells, where only the low 32 bits of each cell are meaningful. The high
// bits are discarded.
func FrameFromCursorPixels(width, height int, cells []uint64) *Frame {
	f := NewFrame(width, height)
	n := width * height
	if len(cells) < n {
		n = len(cells)
	}
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(f.Data[i*bytesPerPixel:], uint32(cells[i]))
	}
	return f
}

// ToRGBA copies the frame into an image.RGBA. The alpha channel is carried
// through unchanged; cursor frames keep their premultiplied values.
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			i := (y*f.Width + x) * bytesPerPixel
			o := img.PixOffset(x, y)
			img.Pix[o+0] = f.Data[i+2]
			img.Pix[o+1] = f.Data[i+1]
			img.Pix[o+2] = f.Data[i+0]
			img.Pix[o+3] = f.Data[i+3]
		}
	}
	return img
}

// MouseCursor is a cursor shape: the bitmap plus the hotspot, the pixel
// within the bitmap that sits on the logical pointer position.
type MouseCursor struct {
	Image   *Frame
	Hotspot image.Point
}
