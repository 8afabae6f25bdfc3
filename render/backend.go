// Package render owns the per-frame pipeline: a Renderer with a front/back
// buffer pair, a hit grid for pointer resolution, cursor state, stats, and
// a debug overlay. Terminal output goes through the RenderBackend
// interface; the tcell implementation lives in backend_tcell.go.
package render

import (
	"sync"

	"github.com/framegrace/cellframe/cell"
	"github.com/framegrace/cellframe/compose"
)

// RenderBackend is the output channel the renderer flushes into. Flush
// receives the buffer for the frame being presented together with the
// cursor state to apply; it must not retain the buffer past the call.
type RenderBackend interface {
	Size() (int, int)
	Flush(buf *cell.Buffer, cursor CursorState) error
	Clear() error
	Close() error
}

// backgroundAware is implemented by backends that composite translucent
// cell colors over a configurable terminal background.
type backgroundAware interface {
	SetDefaultBackground(cell.RGBA)
}

// MemoryBackend is an in-process backend that keeps a copy of the last
// flushed frame. It backs headless rendering and tests.
type MemoryBackend struct {
	mu      sync.Mutex
	width   int
	height  int
	last    *cell.Buffer
	cursor  CursorState
	flushes int
	clears  int
}

// NewMemoryBackend creates a headless backend of the given size.
func NewMemoryBackend(width, height int) *MemoryBackend {
	return &MemoryBackend{width: width, height: height}
}

func (m *MemoryBackend) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

func (m *MemoryBackend) Flush(buf *cell.Buffer, cursor CursorState) error {
	copied, err := cell.NewBuffer(buf.Width(), buf.Height())
	if err != nil {
		return err
	}
	compose.DrawFrameBuffer(copied, 0, 0, buf, 0, 0, 0, 0)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = copied
	m.cursor = cursor
	m.flushes++
	return nil
}

func (m *MemoryBackend) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = nil
	m.clears++
	return nil
}

func (m *MemoryBackend) Close() error { return nil }

// LastFrame returns a copy-safe reference to the most recently flushed
// frame, or nil before the first flush.
func (m *MemoryBackend) LastFrame() *cell.Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Cursor returns the cursor state that accompanied the last flush.
func (m *MemoryBackend) Cursor() CursorState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// FlushCount reports how many frames have been flushed.
func (m *MemoryBackend) FlushCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

// ClearCount reports how many full clears were requested.
func (m *MemoryBackend) ClearCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}
