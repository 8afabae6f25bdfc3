package render

// HitGrid maps every cell position to the id of the UI element that owns
// it, rebuilt each frame. It is an owner-id raster rather than a rectangle
// list: Add costs O(area) but Hit stays O(1), and overlapping rectangles
// resolve by last write wins, which matches paint order (later-drawn
// elements are topmost).
type HitGrid struct {
	width, height int
	ids           []uint32
}

// NewHitGrid allocates an empty grid. Non-positive dimensions yield a grid
// that absorbs every call and reports no hits.
func NewHitGrid(width, height int) *HitGrid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &HitGrid{width: width, height: height, ids: make([]uint32, width*height)}
}

// Add registers id over the given rectangle, overwriting any earlier owner
// on shared cells. A zero id is the empty sentinel and unregisters the
// covered cells. The rectangle is clipped against the grid.
func (g *HitGrid) Add(x, y, w, h int, id uint32) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, g.width), min(y+h, g.height)
	for cy := y0; cy < y1; cy++ {
		row := cy * g.width
		for cx := x0; cx < x1; cx++ {
			g.ids[row+cx] = id
		}
	}
}

// Hit returns the owner id at (x,y), or 0 when nothing was registered
// there or the position is outside the grid.
func (g *HitGrid) Hit(x, y int) uint32 {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0
	}
	return g.ids[y*g.width+x]
}

// Clear resets every cell to the empty sentinel. Ids registered before the
// call are unqueryable afterward.
func (g *HitGrid) Clear() {
	for i := range g.ids {
		g.ids[i] = 0
	}
}

// Resize reallocates the raster. Registered ids are discarded, as after
// Clear.
func (g *HitGrid) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g.width, g.height = width, height
	g.ids = make([]uint32, width*height)
}
