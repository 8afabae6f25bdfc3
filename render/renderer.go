package render

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/framegrace/cellframe/cell"
)

// ErrClosed is returned when rendering through a closed renderer.
var ErrClosed = errors.New("render: renderer is closed")

// Renderer orchestrates per-frame drawing: the host obtains the back
// buffer with GetNextBuffer, draws into it, registers hit regions, then
// calls Render to flush and swap. Drawing is single-threaded by contract;
// the renderer adds no locking around buffer mutation. Only one renderer
// should be active per process, since the terminal and its cursor are a
// single shared resource.
type Renderer struct {
	backend RenderBackend

	width, height int
	background    cell.RGBA
	front, back   *cell.Buffer

	hits   *HitGrid
	cursor *CursorController

	stats    Stats
	memStats MemoryStats
	observer FlushObserver

	overlayEnabled bool
	overlayCorner  OverlayCorner

	// Threaded flush: one worker, unbuffered channel. Submission blocks
	// until the worker accepts, so frames flush in strict submission order
	// and the buffer being drawn is never the one being flushed.
	threaded bool
	flushCh  chan flushRequest
	workerWG sync.WaitGroup
	inFlight sync.WaitGroup

	frame        uint64
	lastFlush    atomic.Int64 // nanoseconds
	clearPending bool
	closed       bool
	closeOnce    sync.Once
}

type flushRequest struct {
	buf    *cell.Buffer
	cursor CursorState
	clear  bool
	frame  uint64
}

// New allocates the front/back buffer pair and starts the flush worker.
// The renderer owns both buffers; Close releases them along with the
// worker.
func New(backend RenderBackend, width, height int) (*Renderer, error) {
	front, err := cell.NewBuffer(width, height)
	if err != nil {
		return nil, err
	}
	back, err := cell.NewBuffer(width, height)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		backend: backend,
		width:   width,
		height:  height,
		front:   front,
		back:    back,
		hits:    NewHitGrid(width, height),
		cursor:  NewCursorController(),
		flushCh: make(chan flushRequest),
	}
	r.workerWG.Add(1)
	go r.flushWorker()
	return r, nil
}

func (r *Renderer) Width() int  { return r.width }
func (r *Renderer) Height() int { return r.height }

// GetNextBuffer returns the buffer being built for the next Render call.
func (r *Renderer) GetNextBuffer() *cell.Buffer { return r.back }

// GetCurrentBuffer returns the last presented buffer. Buffer identity is
// not stable across Resize.
func (r *Renderer) GetCurrentBuffer() *cell.Buffer { return r.front }

// Cursor returns the renderer's cursor controller.
func (r *Renderer) Cursor() *CursorController { return r.cursor }

// HitGrid returns the grid populated for the current frame.
func (r *Renderer) HitGrid() *HitGrid { return r.hits }

// AddToHitGrid registers id over a cell rectangle for pointer resolution.
func (r *Renderer) AddToHitGrid(x, y, w, h int, id uint32) { r.hits.Add(x, y, w, h, id) }

// CheckHit resolves a pointer position against the most recently built
// grid.
func (r *Renderer) CheckHit(x, y int) uint32 { return r.hits.Hit(x, y) }

// ClearHitGrid drops all registered ids, typically once per frame before
// repopulation.
func (r *Renderer) ClearHitGrid() { r.hits.Clear() }

// SetBackgroundColor sets the color translucent cells composite over.
func (r *Renderer) SetBackgroundColor(c cell.RGBA) {
	r.background = c
	if ba, ok := r.backend.(backgroundAware); ok {
		ba.SetDefaultBackground(c)
	}
}

// BackgroundColor returns the configured background.
func (r *Renderer) BackgroundColor() cell.RGBA { return r.background }

// UpdateStats stores the host timing snapshot for the overlay.
func (r *Renderer) UpdateStats(s Stats) { r.stats = s }

// UpdateMemoryStats stores host memory counters for the overlay.
func (r *Renderer) UpdateMemoryStats(m MemoryStats) { r.memStats = m }

// SetFlushObserver installs an observer notified after each presented
// frame.
func (r *Renderer) SetFlushObserver(o FlushObserver) { r.observer = o }

// SetDebugOverlay toggles the stats overlay and picks its corner.
func (r *Renderer) SetDebugOverlay(enabled bool, corner OverlayCorner) {
	r.overlayEnabled = enabled
	r.overlayCorner = corner
}

// SetThreadedFlush moves the terminal-output step of Render onto the flush
// worker. Draw calls stay on the caller's goroutine either way.
func (r *Renderer) SetThreadedFlush(enabled bool) {
	// Joining the worker keeps the mode switch race-free.
	r.inFlight.Wait()
	r.threaded = enabled
}

// ClearTerminal requests a full clear-and-redraw on the next flush, used
// after resize or output corruption.
func (r *Renderer) ClearTerminal() { r.clearPending = true }

// Render presents the back buffer: the debug overlay is painted last, the
// frame is flushed to the backend, and the front/back pair is swapped.
// In threaded mode the flush runs on the worker; ordering is strict and
// frames are never dropped. Backend flush failures are logged, not
// returned, so a transient terminal error never stalls the frame loop.
func (r *Renderer) Render() error {
	if r.closed {
		return ErrClosed
	}
	if r.overlayEnabled {
		r.drawDebugOverlay(r.back)
	}

	req := flushRequest{
		buf:    r.back,
		cursor: r.cursor.State(),
		clear:  r.clearPending,
		frame:  r.frame,
	}
	r.clearPending = false
	r.frame++

	if r.threaded {
		r.inFlight.Add(1)
		r.flushCh <- req
	} else {
		r.flush(req)
	}

	r.front, r.back = r.back, r.front
	return nil
}

func (r *Renderer) flushWorker() {
	defer r.workerWG.Done()
	for req := range r.flushCh {
		r.flush(req)
		r.inFlight.Done()
	}
}

func (r *Renderer) flush(req flushRequest) {
	start := time.Now()
	if req.clear {
		if err := r.backend.Clear(); err != nil {
			log.Printf("Renderer: terminal clear failed: %v", err)
		}
	}
	if err := r.backend.Flush(req.buf, req.cursor); err != nil {
		log.Printf("Renderer: flush of frame %d failed: %v", req.frame, err)
	}
	elapsed := time.Since(start)
	r.lastFlush.Store(int64(elapsed))
	if r.observer != nil {
		r.observer.ObserveFlush(req.frame, elapsed)
	}
}

// Resize reallocates both internal buffers and the hit grid to the new
// geometry and schedules a full redraw. Standalone buffers owned by
// callers are unaffected. Contents are not preserved; the host is expected
// to repaint the next frame in full.
func (r *Renderer) Resize(width, height int) error {
	if r.closed {
		return ErrClosed
	}
	// An in-flight flush still holds the front buffer.
	r.inFlight.Wait()

	if err := r.front.Resize(width, height); err != nil {
		return err
	}
	if err := r.back.Resize(width, height); err != nil {
		return err
	}
	r.width, r.height = width, height
	r.hits.Resize(width, height)
	r.clearPending = true
	return nil
}

// Close joins any in-flight flush, stops the worker, and closes the
// backend. No flush may outlive the renderer's buffers. Close is
// idempotent.
func (r *Renderer) Close() error {
	var err error
	r.closeOnce.Do(func() {
		r.closed = true
		r.inFlight.Wait()
		close(r.flushCh)
		r.workerWG.Wait()
		err = r.backend.Close()
	})
	return err
}
