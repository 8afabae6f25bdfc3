package render

import (
	"sync"

	"github.com/framegrace/cellframe/cell"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type styleKey struct {
	fg, bg cell.RGBA
	attrs  cell.Attr
}

// TcellBackend adapts a tcell.Screen to the RenderBackend interface. It
// converts float RGBA cells into tcell styles, compositing translucent
// colors over the configured default background, and applies cursor state
// on every flush.
type TcellBackend struct {
	screen tcell.Screen

	mu         sync.Mutex
	defaultBg  cell.RGBA
	styleCache map[styleKey]tcell.Style
}

// NewTcellBackend wraps an initialized tcell screen. The caller keeps
// ownership of event polling; the backend only writes output.
func NewTcellBackend(screen tcell.Screen) *TcellBackend {
	return &TcellBackend{
		screen:     screen,
		defaultBg:  cell.Black,
		styleCache: make(map[styleKey]tcell.Style),
	}
}

// SetDefaultBackground sets the color translucent cells composite over.
// Clears the style cache since cached conversions embed the old
// background.
func (t *TcellBackend) SetDefaultBackground(bg cell.RGBA) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.defaultBg = bg
	t.styleCache = make(map[styleKey]tcell.Style)
}

func (t *TcellBackend) Size() (int, int) {
	return t.screen.Size()
}

func (t *TcellBackend) Flush(buf *cell.Buffer, cursor CursorState) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			c, _ := buf.CellAt(x, y)
			style := t.styleFor(c)
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			t.screen.SetContent(x, y, r, nil, style)
			// A double-width rune owns the following cell; skipping it
			// keeps tcell from clobbering the glyph with the neighbor.
			if runewidth.RuneWidth(r) == 2 {
				x++
			}
		}
	}

	t.applyCursor(cursor)
	t.screen.Show()
	return nil
}

func (t *TcellBackend) styleFor(c cell.Cell) tcell.Style {
	key := styleKey{fg: c.Fg, bg: c.Bg, attrs: c.Attrs}
	if st, ok := t.styleCache[key]; ok {
		return st
	}
	st := tcell.StyleDefault.
		Foreground(t.toColor(c.Fg)).
		Background(t.toColor(c.Bg))
	if c.Attrs&cell.AttrBold != 0 {
		st = st.Bold(true)
	}
	if c.Attrs&cell.AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if c.Attrs&cell.AttrReverse != 0 {
		st = st.Reverse(true)
	}
	if c.Attrs&cell.AttrBlink != 0 {
		st = st.Blink(true)
	}
	if c.Attrs&cell.AttrDim != 0 {
		st = st.Dim(true)
	}
	if c.Attrs&cell.AttrItalic != 0 {
		st = st.Italic(true)
	}
	t.styleCache[key] = st
	return st
}

// toColor flattens a straight-alpha color onto the default background,
// since the terminal has no alpha channel of its own.
func (t *TcellBackend) toColor(c cell.RGBA) tcell.Color {
	flat := t.defaultBg.Over(c)
	r, g, b, _ := flat.RGBA8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (t *TcellBackend) applyCursor(cur CursorState) {
	if !cur.Visible {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(cur.X, cur.Y)
	t.screen.SetCursorStyle(cursorStyleFor(cur), t.toColor(cur.Color))
}

func cursorStyleFor(cur CursorState) tcell.CursorStyle {
	switch cur.Style {
	case CursorUnderline:
		if cur.Blinking {
			return tcell.CursorStyleBlinkingUnderline
		}
		return tcell.CursorStyleSteadyUnderline
	case CursorBar:
		if cur.Blinking {
			return tcell.CursorStyleBlinkingBar
		}
		return tcell.CursorStyleSteadyBar
	default:
		if cur.Blinking {
			return tcell.CursorStyleBlinkingBlock
		}
		return tcell.CursorStyleSteadyBlock
	}
}

func (t *TcellBackend) Clear() error {
	t.screen.Clear()
	t.screen.Sync()
	return nil
}

func (t *TcellBackend) Close() error {
	t.screen.Fini()
	return nil
}
