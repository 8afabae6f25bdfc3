package compose

import (
	"testing"

	"github.com/framegrace/cellframe/cell"
)

// solid builds a WxH pixel buffer of one RGBA value with optional row
// padding, in the requested channel order.
func solid(w, h, stride int, format PixelFormat, r, g, b, a byte) []byte {
	data := make([]byte, h*stride)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := y*stride + x*4
			switch format {
			case FormatRGBA8Unorm:
				data[p+0], data[p+1], data[p+2], data[p+3] = r, g, b, a
			case FormatBGRA8Unorm:
				data[p+0], data[p+1], data[p+2], data[p+3] = b, g, r, a
			}
		}
	}
	return data
}

func TestSuperSampleSolidColor(t *testing.T) {
	dst := newBuf(t, 4, 4)
	img := SuperSampleImage{
		Data:               solid(4, 4, 16, FormatRGBA8Unorm, 255, 0, 0, 255),
		Format:             FormatRGBA8Unorm,
		Width:              4,
		Height:             4,
		AlignedBytesPerRow: 16,
		FactorX:            2,
		FactorY:            2,
	}
	if err := DrawSuperSampleBuffer(dst, 0, 0, img); err != nil {
		t.Fatalf("supersample failed: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			c, _ := dst.CellAt(x, y)
			if c.Bg.R < 0.99 || c.Bg.G != 0 || c.Bg.B != 0 {
				t.Fatalf("cell (%d,%d) bg %+v", x, y, c.Bg)
			}
			if c.Rune != ' ' {
				t.Fatalf("cell (%d,%d) rune %q", x, y, c.Rune)
			}
		}
	}
	// Cells past the sampled area are untouched.
	c, _ := dst.CellAt(2, 0)
	if c.Bg != cell.Transparent {
		t.Fatalf("unsampled cell modified: %+v", c.Bg)
	}
}

func TestSuperSampleBoxAverage(t *testing.T) {
	// 2x2 pixels into one cell: two white, two black -> mid gray.
	data := []byte{
		255, 255, 255, 255, 0, 0, 0, 255,
		0, 0, 0, 255, 255, 255, 255, 255,
	}
	dst := newBuf(t, 1, 1)
	img := SuperSampleImage{
		Data: data, Format: FormatRGBA8Unorm,
		Width: 2, Height: 2, AlignedBytesPerRow: 8,
		FactorX: 2, FactorY: 2,
	}
	if err := DrawSuperSampleBuffer(dst, 0, 0, img); err != nil {
		t.Fatalf("supersample failed: %v", err)
	}
	c, _ := dst.CellAt(0, 0)
	if c.Bg.R < 0.49 || c.Bg.R > 0.51 {
		t.Fatalf("expected mid gray, got %+v", c.Bg)
	}
}

func TestSuperSampleBGRAOrder(t *testing.T) {
	dst := newBuf(t, 1, 1)
	img := SuperSampleImage{
		Data:               solid(1, 1, 4, FormatBGRA8Unorm, 255, 0, 0, 255),
		Format:             FormatBGRA8Unorm,
		Width:              1,
		Height:             1,
		AlignedBytesPerRow: 4,
		FactorX:            1,
		FactorY:            1,
	}
	if err := DrawSuperSampleBuffer(dst, 0, 0, img); err != nil {
		t.Fatalf("supersample failed: %v", err)
	}
	c, _ := dst.CellAt(0, 0)
	if c.Bg.R < 0.99 || c.Bg.B != 0 {
		t.Fatalf("channel order wrong: %+v", c.Bg)
	}
}

func TestSuperSampleToleratesRowPadding(t *testing.T) {
	dst := newBuf(t, 2, 1)
	stride := 2*4 + 8 // 8 bytes of padding per row
	img := SuperSampleImage{
		Data:               solid(2, 1, stride, FormatRGBA8Unorm, 0, 255, 0, 255),
		Format:             FormatRGBA8Unorm,
		Width:              2,
		Height:             1,
		AlignedBytesPerRow: stride,
		FactorX:            1,
		FactorY:            1,
	}
	if err := DrawSuperSampleBuffer(dst, 0, 0, img); err != nil {
		t.Fatalf("supersample failed: %v", err)
	}
	c, _ := dst.CellAt(1, 0)
	if c.Bg.G < 0.99 {
		t.Fatalf("padded stride misread: %+v", c.Bg)
	}
}

func TestSuperSampleRejectsBadGeometry(t *testing.T) {
	dst := newBuf(t, 4, 4)
	base := SuperSampleImage{
		Data:               solid(4, 4, 16, FormatRGBA8Unorm, 1, 2, 3, 255),
		Format:             FormatRGBA8Unorm,
		Width:              4,
		Height:             4,
		AlignedBytesPerRow: 16,
		FactorX:            2,
		FactorY:            2,
	}

	short := base
	short.Data = short.Data[:len(short.Data)-4]
	if err := DrawSuperSampleBuffer(dst, 0, 0, short); err != ErrFormatMismatch {
		t.Fatalf("short data accepted: %v", err)
	}

	badStride := base
	badStride.AlignedBytesPerRow = 15
	if err := DrawSuperSampleBuffer(dst, 0, 0, badStride); err != ErrFormatMismatch {
		t.Fatalf("narrow stride accepted: %v", err)
	}

	badFactor := base
	badFactor.FactorX = 3 // 4 % 3 != 0
	if err := DrawSuperSampleBuffer(dst, 0, 0, badFactor); err != ErrFormatMismatch {
		t.Fatalf("non-integral factor accepted: %v", err)
	}
}

func TestSuperSampleClipsOffscreenCells(t *testing.T) {
	dst := newBuf(t, 2, 2)
	before, _ := dst.CellAt(0, 0)
	img := SuperSampleImage{
		Data:               solid(4, 4, 16, FormatRGBA8Unorm, 255, 255, 255, 255),
		Format:             FormatRGBA8Unorm,
		Width:              4,
		Height:             4,
		AlignedBytesPerRow: 16,
		FactorX:            2,
		FactorY:            2,
	}
	if err := DrawSuperSampleBuffer(dst, 5, 5, img); err != nil {
		t.Fatalf("offscreen draw errored: %v", err)
	}
	after, _ := dst.CellAt(0, 0)
	if before != after {
		t.Fatalf("offscreen draw touched buffer")
	}
}
