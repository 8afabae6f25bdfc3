package cell

import "errors"

// ErrBadDimensions is returned when a buffer is created or resized with
// non-positive width or height.
var ErrBadDimensions = errors.New("cell: buffer dimensions must be positive")

// Buffer is a width×height grid of cells stored structure-of-arrays: four
// flat, row-major arrays indexed y*width+x. The layout keeps bulk blits
// cache-friendly and lets callers borrow the raw arrays directly.
//
// Buffers carry a respectAlpha flag: when false every write overwrites the
// cell (opaque assumption), when true writes blend alpha-over into the
// existing colors. The flag affects future writes only.
type Buffer struct {
	width, height int
	respectAlpha  bool

	runes []rune    // codepoints, len = width*height
	fg    []float32 // RGBA quads, len = 4*width*height
	bg    []float32 // RGBA quads, len = 4*width*height
	attrs []uint8   // attribute bitmasks, len = width*height
}

// NewBuffer allocates a buffer of the given size with every cell set to a
// space on a transparent background.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrBadDimensions
	}
	b := &Buffer{width: width, height: height}
	b.alloc()
	b.Clear(Transparent)
	return b, nil
}

func (b *Buffer) alloc() {
	n := b.width * b.height
	b.runes = make([]rune, n)
	b.fg = make([]float32, 4*n)
	b.bg = make([]float32, 4*n)
	b.attrs = make([]uint8, n)
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Size returns the cell count (width*height).
func (b *Buffer) Size() int { return b.width * b.height }

func (b *Buffer) RespectAlpha() bool { return b.respectAlpha }

// SetRespectAlpha toggles blending for future writes. Existing cells are
// not reprocessed.
func (b *Buffer) SetRespectAlpha(v bool) { b.respectAlpha = v }

// InBounds reports whether (x,y) addresses a cell.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) index(x, y int) int { return y*b.width + x }

// Resize reallocates all four arrays to the new geometry. Prior contents
// are discarded: the resized buffer comes back cleared to default cells.
// Callers needing continuity must blit through a scratch buffer first.
// Bulk views borrowed before Resize are invalid afterward.
func (b *Buffer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrBadDimensions
	}
	b.width, b.height = width, height
	b.alloc()
	b.Clear(Transparent)
	return nil
}

// Clear sets every cell to a space with the given background, default
// foreground, and no attributes.
func (b *Buffer) Clear(bg RGBA) {
	for i := range b.runes {
		b.runes[i] = ' '
		b.attrs[i] = 0
	}
	for i := 0; i < len(b.fg); i += 4 {
		b.fg[i+0] = DefaultFg.R
		b.fg[i+1] = DefaultFg.G
		b.fg[i+2] = DefaultFg.B
		b.fg[i+3] = DefaultFg.A
		b.bg[i+0] = bg.R
		b.bg[i+1] = bg.G
		b.bg[i+2] = bg.B
		b.bg[i+3] = bg.A
	}
}

// CellAt returns the cell at (x,y). The second result is false out of
// bounds.
func (b *Buffer) CellAt(x, y int) (Cell, bool) {
	if !b.InBounds(x, y) {
		return Cell{}, false
	}
	i := b.index(x, y)
	return Cell{
		Rune:  b.runes[i],
		Fg:    b.fgAt(i),
		Bg:    b.bgAt(i),
		Attrs: Attr(b.attrs[i]),
	}, true
}

func (b *Buffer) fgAt(i int) RGBA {
	q := 4 * i
	return RGBA{b.fg[q], b.fg[q+1], b.fg[q+2], b.fg[q+3]}
}

func (b *Buffer) bgAt(i int) RGBA {
	q := 4 * i
	return RGBA{b.bg[q], b.bg[q+1], b.bg[q+2], b.bg[q+3]}
}

func (b *Buffer) storeFg(i int, c RGBA) {
	q := 4 * i
	b.fg[q], b.fg[q+1], b.fg[q+2], b.fg[q+3] = c.R, c.G, c.B, c.A
}

func (b *Buffer) storeBg(i int, c RGBA) {
	q := 4 * i
	b.bg[q], b.bg[q+1], b.bg[q+2], b.bg[q+3] = c.R, c.G, c.B, c.A
}

// Bulk views. The returned slices alias the buffer's storage and stay valid
// until the next Resize. Runes and Attrs have one entry per cell; Fg and Bg
// hold RGBA quads, four float32 per cell.

func (b *Buffer) Runes() []rune  { return b.runes }
func (b *Buffer) Fg() []float32  { return b.fg }
func (b *Buffer) Bg() []float32  { return b.bg }
func (b *Buffer) Attrs() []uint8 { return b.attrs }
