package compose

import (
	"errors"

	"github.com/framegrace/cellframe/cell"
)

// PixelFormat identifies the channel order of supersample input.
type PixelFormat uint8

const (
	FormatBGRA8Unorm PixelFormat = iota
	FormatRGBA8Unorm
)

var (
	// ErrFormatMismatch means the declared geometry, stride, or sampling
	// factors do not match the supplied data. The input is rejected rather
	// than risking an out-of-range read.
	ErrFormatMismatch = errors.New("compose: supersample geometry does not match data")
)

// SuperSampleImage describes a raw 8-bit/channel pixel buffer to be
// downsampled into cell colors. Width and Height are in pixels and must be
// whole multiples of FactorX and FactorY, the pixels-per-cell sampling
// factors. AlignedBytesPerRow is the row stride and may exceed Width*4 for
// alignment padding.
type SuperSampleImage struct {
	Data               []byte
	Format             PixelFormat
	Width, Height      int
	AlignedBytesPerRow int
	FactorX, FactorY   int
}

func (img SuperSampleImage) validate() error {
	if img.Width <= 0 || img.Height <= 0 || img.FactorX <= 0 || img.FactorY <= 0 {
		return ErrFormatMismatch
	}
	if img.Width%img.FactorX != 0 || img.Height%img.FactorY != 0 {
		return ErrFormatMismatch
	}
	if img.AlignedBytesPerRow < img.Width*4 {
		return ErrFormatMismatch
	}
	if img.Format != FormatBGRA8Unorm && img.Format != FormatRGBA8Unorm {
		return ErrFormatMismatch
	}
	// The last row does not need stride padding, only its pixels.
	need := (img.Height-1)*img.AlignedBytesPerRow + img.Width*4
	if len(img.Data) < need {
		return ErrFormatMismatch
	}
	return nil
}

// DrawSuperSampleBuffer box-averages each FactorX×FactorY pixel block of
// img into the background color of one destination cell, starting at cell
// (x,y). Cells outside dst are skipped. Which glyph represents sub-cell
// detail is a downstream concern; the cell rune is reset to a space.
func DrawSuperSampleBuffer(dst *cell.Buffer, x, y int, img SuperSampleImage) error {
	if err := img.validate(); err != nil {
		return err
	}

	cellsW := img.Width / img.FactorX
	cellsH := img.Height / img.FactorY
	samples := float32(img.FactorX * img.FactorY)

	for cy := 0; cy < cellsH; cy++ {
		for cx := 0; cx < cellsW; cx++ {
			if !dst.InBounds(x+cx, y+cy) {
				continue
			}
			var r, g, b, a float32
			for py := 0; py < img.FactorY; py++ {
				row := (cy*img.FactorY + py) * img.AlignedBytesPerRow
				for px := 0; px < img.FactorX; px++ {
					p := row + (cx*img.FactorX+px)*4
					switch img.Format {
					case FormatBGRA8Unorm:
						b += float32(img.Data[p+0])
						g += float32(img.Data[p+1])
						r += float32(img.Data[p+2])
					case FormatRGBA8Unorm:
						r += float32(img.Data[p+0])
						g += float32(img.Data[p+1])
						b += float32(img.Data[p+2])
					}
					a += float32(img.Data[p+3])
				}
			}
			avg := cell.RGBA{
				R: r / samples / 255,
				G: g / samples / 255,
				B: b / samples / 255,
				A: a / samples / 255,
			}
			dst.FillRect(x+cx, y+cy, 1, 1, avg)
		}
	}
	return nil
}
