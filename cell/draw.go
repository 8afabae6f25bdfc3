package cell

// SetCell writes one cell. With respectAlpha the fg and bg are blended
// alpha-over into the existing colors; otherwise they overwrite. The rune
// and attributes always replace. Out-of-bounds coordinates are a no-op,
// never an error: drawing sits on a UI hot path and must not crash on
// geometry.
func (b *Buffer) SetCell(x, y int, r rune, fg, bg RGBA, attrs Attr) {
	if !b.InBounds(x, y) {
		return
	}
	i := b.index(x, y)
	b.runes[i] = r
	b.attrs[i] = uint8(attrs)
	if b.respectAlpha {
		b.storeFg(i, b.fgAt(i).Over(fg))
		b.storeBg(i, b.bgAt(i).Over(bg))
	} else {
		b.storeFg(i, fg)
		b.storeBg(i, bg)
	}
}

// SetBg updates only the background of one cell, honoring respectAlpha.
// The rune, foreground, and attributes are preserved.
func (b *Buffer) SetBg(x, y int, bg RGBA) {
	if !b.InBounds(x, y) {
		return
	}
	i := b.index(x, y)
	if b.respectAlpha {
		b.storeBg(i, b.bgAt(i).Over(bg))
	} else {
		b.storeBg(i, bg)
	}
}

// DrawText writes the text left to right starting at (x,y), one codepoint
// per cell, preserving each cell's existing background. Cells falling
// outside the buffer are skipped. No grapheme clustering or wide-rune
// doubling happens here; a codepoint occupies exactly one cell.
func (b *Buffer) DrawText(x, y int, text string, fg RGBA, attrs Attr) {
	col := x
	for _, r := range text {
		if b.InBounds(col, y) {
			i := b.index(col, y)
			b.runes[i] = r
			b.attrs[i] = uint8(attrs)
			if b.respectAlpha {
				b.storeFg(i, b.fgAt(i).Over(fg))
			} else {
				b.storeFg(i, fg)
			}
		}
		col++
	}
}

// DrawTextWithBg is DrawText with an explicit background per cell.
func (b *Buffer) DrawTextWithBg(x, y int, text string, fg, bg RGBA, attrs Attr) {
	col := x
	for _, r := range text {
		b.SetCell(col, y, r, fg, bg, attrs)
		col++
	}
}

// FillRect sets the background of every cell in the intersection of the
// rect with the buffer, resetting runes to spaces and clearing attributes.
// Foregrounds are left as they were. Non-positive width or height is a
// no-op.
func (b *Buffer) FillRect(x, y, w, h int, bg RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, b.width), min(y+h, b.height)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			i := b.index(cx, cy)
			b.runes[i] = ' '
			b.attrs[i] = 0
			if b.respectAlpha {
				b.storeBg(i, b.bgAt(i).Over(bg))
			} else {
				b.storeBg(i, bg)
			}
		}
	}
}
