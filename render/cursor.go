package render

import (
	"sync"

	"github.com/framegrace/cellframe/cell"
)

// CursorStyle selects the physical cursor shape. The set is small and
// closed; backends map it onto whatever the terminal supports.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
)

// CursorState is a snapshot of the physical cursor: position, shape,
// blink, color, visibility.
type CursorState struct {
	X, Y     int
	Visible  bool
	Blinking bool
	Style    CursorStyle
	Color    cell.RGBA
}

// CursorController owns the cursor state for one terminal. There is exactly
// one physical cursor no matter how many buffers exist, so the renderer
// holds a single controller and hands its snapshot to the backend at flush.
// It is an owned instance rather than package state so tests can run
// independent renderers side by side.
type CursorController struct {
	mu    sync.Mutex
	state CursorState
}

// NewCursorController starts with a hidden block cursor.
func NewCursorController() *CursorController {
	return &CursorController{state: CursorState{Style: CursorBlock, Blinking: true}}
}

func (c *CursorController) SetPosition(x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.X, c.state.Y = x, y
}

func (c *CursorController) SetStyle(style CursorStyle, blinking bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Style = style
	c.state.Blinking = blinking
}

func (c *CursorController) SetColor(color cell.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Color = color
}

func (c *CursorController) SetVisible(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Visible = v
}

// State returns the current snapshot.
func (c *CursorController) State() CursorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
