// Package cell implements the frame-buffer data model: a grid of terminal
// character cells stored as parallel arrays, with alpha-aware drawing
// primitives. Buffers are the unit of composition for the render and
// compose packages.
package cell

// Attr is a bitmask of text decorations. The set is owned by whichever
// backend interprets it; the buffer only stores and copies the bits.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrUnderline
	AttrReverse
	AttrBlink
	AttrDim
	AttrItalic

	AttrNone Attr = 0
)

// Cell is a convenience view of one buffer position. The buffer itself does
// not store cells as records; see Buffer.
type Cell struct {
	Rune  rune
	Fg    RGBA
	Bg    RGBA
	Attrs Attr
}
