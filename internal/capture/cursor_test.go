package capture

import (
	"bytes"
	"encoding/binary"
	"image"
	"testing"
)

func TestFrameFromCursorPixels_TruncatesToLow32Bits(t *testing.T) {
	// 2x2 image; every cell carries garbage in its high 32 bits.
	cells := []uint64{
		0xdeadbeef_ff102030,
		0xcafebabe_80405060,
		0x01234567_00000000,
		0xffffffff_ffffffff,
	}
	f := FrameFromCursorPixels(2, 2, cells)

	if f.Width != 2 || f.Height != 2 {
		t.Fatalf("unexpected frame size %dx%d", f.Width, f.Height)
	}
	if len(f.Data) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(f.Data))
	}

	want := make([]byte, 16)
	for i, c := range cells {
		binary.LittleEndian.PutUint32(want[i*4:], uint32(c))
	}
	if !bytes.Equal(f.Data, want) {
		t.Fatalf("frame bytes do not match low 32 bits of source cells\n got %x\nwant %x", f.Data, want)
	}
}

func TestFrameFromCursorPixels_RowMajorOrder(t *testing.T) {
	// 3x2 with a distinct value per pixel: cell i must land at offset 4*i.
	cells := make([]uint64, 6)
	for i := range cells {
		cells[i] = uint64(0x11 * (i + 1))
	}
	f := FrameFromCursorPixels(3, 2, cells)
	for i := range cells {
		got := binary.LittleEndian.Uint32(f.Data[i*4:])
		if got != uint32(cells[i]) {
			t.Fatalf("pixel %d: got %#x, want %#x", i, got, uint32(cells[i]))
		}
	}
}

func TestFrameFromCursorPixels_ShortBuffer(t *testing.T) {
	// A malformed reply with fewer cells than width*height must not panic;
	// missing pixels stay zero.
	f := FrameFromCursorPixels(2, 2, []uint64{0xffffffff})
	if got := binary.LittleEndian.Uint32(f.Data[0:]); got != 0xffffffff {
		t.Fatalf("first pixel: got %#x", got)
	}
	for i := 4; i < len(f.Data); i++ {
		if f.Data[i] != 0 {
			t.Fatalf("expected zero fill at byte %d, got %#x", i, f.Data[i])
		}
	}
}

func TestFrameToRGBA_SwapsChannels(t *testing.T) {
	// One pixel, premultiplied ARGB 0xAARRGGBB = 0x80402010.
	f := FrameFromCursorPixels(1, 1, []uint64{0x80402010})
	img := f.ToRGBA()

	if img.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	r, g, b, a := img.Pix[0], img.Pix[1], img.Pix[2], img.Pix[3]
	if r != 0x40 || g != 0x20 || b != 0x10 || a != 0x80 {
		t.Fatalf("got RGBA %02x %02x %02x %02x, want 40 20 10 80", r, g, b, a)
	}
}

func TestCursorStateString(t *testing.T) {
	if CursorInside.String() != "inside" || CursorOutside.String() != "outside" {
		t.Fatalf("unexpected state strings %q %q", CursorInside, CursorOutside)
	}
}

func TestSinkRetainsLatest(t *testing.T) {
	s := &Sink{}
	first := &MouseCursor{Image: NewFrame(1, 1)}
	second := &MouseCursor{Image: NewFrame(2, 2)}
	s.OnMouseCursor(first)
	s.OnMouseCursor(second)
	s.OnMouseCursorPosition(CursorOutside, image.Pt(3, 4))

	if s.Shape != second {
		t.Fatalf("sink did not retain latest shape")
	}
	if s.State != CursorOutside || s.Pos != image.Pt(3, 4) {
		t.Fatalf("sink did not retain latest position, got %v %v", s.State, s.Pos)
	}
}
