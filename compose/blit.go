// Package compose moves cell data between buffers and raw pixel or wire
// formats: rectangular blits, pixel-to-cell downsampling, and packed-record
// pastes. All operations clip silently against buffer bounds; only format
// violations surface as errors.
package compose

import "github.com/framegrace/cellframe/cell"

// DrawFrameBuffer copies a rectangular region of src into dst at
// (destX,destY), clipped against both buffers. A zero or negative srcW/srcH
// selects the whole source. When dst has respectAlpha set, the copied cells
// blend alpha-over; otherwise they overwrite.
func DrawFrameBuffer(dst *cell.Buffer, destX, destY int, src *cell.Buffer, srcX, srcY, srcW, srcH int) {
	if dst == nil || src == nil {
		return
	}
	if srcW <= 0 {
		srcW = src.Width()
	}
	if srcH <= 0 {
		srcH = src.Height()
	}

	// Clip the source rect against the source buffer, shifting the
	// destination origin along with any left/top trim.
	if srcX < 0 {
		destX -= srcX
		srcW += srcX
		srcX = 0
	}
	if srcY < 0 {
		destY -= srcY
		srcH += srcY
		srcY = 0
	}
	if srcX+srcW > src.Width() {
		srcW = src.Width() - srcX
	}
	if srcY+srcH > src.Height() {
		srcH = src.Height() - srcY
	}

	// Clip against the destination.
	if destX < 0 {
		srcX -= destX
		srcW += destX
		destX = 0
	}
	if destY < 0 {
		srcY -= destY
		srcH += destY
		destY = 0
	}
	if destX+srcW > dst.Width() {
		srcW = dst.Width() - destX
	}
	if destY+srcH > dst.Height() {
		srcH = dst.Height() - destY
	}
	if srcW <= 0 || srcH <= 0 {
		return
	}

	for row := 0; row < srcH; row++ {
		for col := 0; col < srcW; col++ {
			c, _ := src.CellAt(srcX+col, srcY+row)
			dst.SetCell(destX+col, destY+row, c.Rune, c.Fg, c.Bg, c.Attrs)
		}
	}
}
