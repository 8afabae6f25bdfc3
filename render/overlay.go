package render

import (
	"fmt"

	"github.com/framegrace/cellframe/cell"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// OverlayCorner places the debug overlay in one of the four corners.
type OverlayCorner int

const (
	CornerTopLeft OverlayCorner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// ParseCorner maps a config string ("top-left", "bottom-right", ...) to a
// corner, defaulting to top-right.
func ParseCorner(s string) OverlayCorner {
	switch s {
	case "top-left":
		return CornerTopLeft
	case "top-right":
		return CornerTopRight
	case "bottom-left":
		return CornerBottomLeft
	case "bottom-right":
		return CornerBottomRight
	}
	return CornerTopRight
}

var overlayBg = cell.RGBA{R: 0, G: 0, B: 0, A: 0.75}

// fpsColor ramps red (stalled) through yellow to green (60+) on the hue
// wheel.
func fpsColor(fps float64) cell.RGBA {
	frac := fps / 60
	if frac > 1 {
		frac = 1
	}
	if frac < 0 {
		frac = 0
	}
	c := colorful.Hsv(120*frac, 0.9, 1)
	return cell.RGBA{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: 1}
}

// drawDebugOverlay paints the stats block into buf at the configured
// corner. It runs inside Render after all host drawing, so the overlay is
// always topmost.
func (r *Renderer) drawDebugOverlay(buf *cell.Buffer) {
	lines := []string{
		fmt.Sprintf("fps %5.1f", r.stats.FPS),
		fmt.Sprintf("cb  %5.2fms", r.stats.FrameCallbackTime*1000),
		fmt.Sprintf("flu %5.2fms", float64(r.lastFlush.Load())/1e6),
		fmt.Sprintf("heap %s", formatBytes(r.memStats.HeapUsed)),
		fmt.Sprintf("buf  %s", formatBytes(r.memStats.ArrayBuffers)),
	}

	width := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}
	width += 2 // 1 cell padding each side
	height := len(lines)

	x, y := 0, 0
	switch r.overlayCorner {
	case CornerTopRight:
		x = buf.Width() - width
	case CornerBottomLeft:
		y = buf.Height() - height
	case CornerBottomRight:
		x = buf.Width() - width
		y = buf.Height() - height
	}

	fg := fpsColor(r.stats.FPS)
	buf.FillRect(x, y, width, height, overlayBg)
	for i, line := range lines {
		buf.DrawText(x+1, y+i, line, fg, cell.AttrNone)
	}
}

func formatBytes(n uint64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1fG", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%dB", n)
}
