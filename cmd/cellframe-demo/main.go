// Command cellframe-demo exercises the rendering core against a live
// terminal: panel fills, syntax-highlighted text, pixel downsampling, the
// debug overlay, and mouse hit testing. Press q to quit, o to toggle the
// overlay, s to capture the current frame.
package main

import (
	"flag"
	"log"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/cellframe/capture"
	"github.com/framegrace/cellframe/cell"
	"github.com/framegrace/cellframe/compose"
	"github.com/framegrace/cellframe/config"
	"github.com/framegrace/cellframe/render"
)

const (
	hitPanelSource uint32 = iota + 1
	hitPanelPlasma
)

func main() {
	configPath := flag.String("config", "cellframe.json", "config file")
	filePath := flag.String("file", "", "source file to display highlighted (defaults to this demo)")
	flag.Parse()

	logFile, err := os.OpenFile("cellframe-demo.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("Demo: stdout is not a terminal")
	}

	cfg := config.Load(*configPath)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Demo: create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Demo: init screen: %v", err)
	}
	screen.EnableMouse()

	backend := render.NewTcellBackend(screen)
	w, h := backend.Size()
	r, err := render.New(backend, w, h)
	if err != nil {
		screen.Fini()
		log.Fatalf("Demo: create renderer: %v", err)
	}
	defer r.Close()

	bg, err := cfg.BackgroundColor()
	if err != nil {
		log.Printf("Demo: %v, using black", err)
		bg = cell.Black
	}
	r.SetBackgroundColor(bg)
	r.SetThreadedFlush(cfg.ThreadedFlush)
	r.SetDebugOverlay(cfg.DebugOverlay, render.ParseCorner(cfg.OverlayCorner))

	var store *capture.SQLiteStore
	if cfg.CapturePath != "" {
		store, err = capture.Open(cfg.CapturePath)
		if err != nil {
			log.Printf("Demo: capture disabled: %v", err)
		} else {
			defer store.Close()
		}
	}

	source := *filePath
	if source == "" {
		source = "cmd/cellframe-demo/main.go"
	}
	lines := highlightFile(source)

	run(r, screen, store, cfg, bg, lines)
}

type demoState struct {
	phase    float64
	selected uint32
	overlay  bool
	corner   render.OverlayCorner
}

func run(r *render.Renderer, screen tcell.Screen, store *capture.SQLiteStore,
	cfg config.Config, bg cell.RGBA, lines []styledLine) {

	events := make(chan tcell.Event, 10)
	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	interval := 16 * time.Millisecond
	if cfg.TargetFPS > 0 {
		interval = time.Second / time.Duration(cfg.TargetFPS)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	state := demoState{
		overlay: cfg.DebugOverlay,
		corner:  render.ParseCorner(cfg.OverlayCorner),
	}
	start := time.Now()
	frames := 0
	lastStats := start

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
					close(quit)
					return
				case ev.Rune() == 'o':
					state.overlay = !state.overlay
					r.SetDebugOverlay(state.overlay, state.corner)
				case ev.Rune() == 's' && store != nil:
					if err := store.Save(r.GetCurrentBuffer()); err != nil {
						log.Printf("Demo: capture failed: %v", err)
					}
				}
			case *tcell.EventMouse:
				if ev.Buttons()&tcell.Button1 != 0 {
					x, y := ev.Position()
					state.selected = r.CheckHit(x, y)
				}
			case *tcell.EventResize:
				screen.Sync()
				w, h := screen.Size()
				if err := r.Resize(w, h); err != nil {
					log.Printf("Demo: resize failed: %v", err)
				}
			}
		case <-ticker.C:
			state.phase = time.Since(start).Seconds()
			drawFrame(r, bg, lines, &state)
			if err := r.Render(); err != nil {
				log.Printf("Demo: render failed: %v", err)
				return
			}
			frames++
			if since := time.Since(lastStats); since >= time.Second {
				r.UpdateStats(render.Stats{
					Time: time.Since(start).Seconds(),
					FPS:  float64(frames) / since.Seconds(),
				})
				var mem MemorySampler
				r.UpdateMemoryStats(mem.Sample())
				frames = 0
				lastStats = time.Now()
			}
		}
	}
}

func drawFrame(r *render.Renderer, bg cell.RGBA, lines []styledLine, state *demoState) {
	buf := r.GetNextBuffer()
	buf.Clear(bg)
	r.ClearHitGrid()

	w, h := buf.Width(), buf.Height()
	split := w / 2

	// Left panel: highlighted source.
	sourceBg := cell.RGBA{R: 0.08, G: 0.08, B: 0.12, A: 1}
	if state.selected == hitPanelSource {
		sourceBg = cell.RGBA{R: 0.12, G: 0.12, B: 0.2, A: 1}
	}
	buf.FillRect(0, 0, split, h, sourceBg)
	for y, line := range lines {
		if y+1 >= h-1 {
			break
		}
		x := 1
		for _, span := range line {
			runes := []rune(span.text)
			if room := split - 1 - x; len(runes) > room {
				runes = runes[:max(room, 0)]
			}
			buf.DrawText(x, y+1, string(runes), span.fg, span.attrs)
			x += len(runes)
			if x >= split-1 {
				break
			}
		}
	}
	r.AddToHitGrid(0, 0, split, h, hitPanelSource)

	// Right panel: animated plasma downsampled from pixel space.
	plasmaBg := cell.RGBA{R: 0.05, G: 0.05, B: 0.05, A: 1}
	if state.selected == hitPanelPlasma {
		plasmaBg = cell.RGBA{R: 0.1, G: 0.1, B: 0.05, A: 1}
	}
	buf.FillRect(split, 0, w-split, h, plasmaBg)
	img := plasma(w-split-2, h-2, state.phase)
	if err := compose.DrawSuperSampleBuffer(buf, split+1, 1, img); err != nil {
		log.Printf("Demo: supersample failed: %v", err)
	}
	r.AddToHitGrid(split, 0, w-split, h, hitPanelPlasma)

	buf.DrawText(1, 0, " cellframe demo | q quits, o overlay, s capture ",
		cell.White, cell.AttrBold)

	cur := r.Cursor()
	cur.SetVisible(state.selected != 0)
	if state.selected == hitPanelSource {
		cur.SetPosition(0, 0)
	} else if state.selected == hitPanelPlasma {
		cur.SetPosition(split, 0)
	}
}

// plasma renders a classic sine-interference pattern at 2x2 pixels per
// cell, which DrawSuperSampleBuffer box-averages back down.
func plasma(cellsW, cellsH int, t float64) compose.SuperSampleImage {
	const factor = 2
	pw, ph := cellsW*factor, cellsH*factor
	if pw < factor {
		pw = factor
	}
	if ph < factor {
		ph = factor
	}
	stride := pw * 4
	data := make([]byte, ph*stride)
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			v := math.Sin(float64(x)/7+t) +
				math.Sin(float64(y)/5-t) +
				math.Sin(float64(x+y)/11)
			v = (v + 3) / 6
			p := y*stride + x*4
			data[p+0] = byte(40 + 180*v)          // R
			data[p+1] = byte(20 + 100*(1-v))      // G
			data[p+2] = byte(80 + 160*v*(1-v)*4)  // B
			data[p+3] = 255
		}
	}
	return compose.SuperSampleImage{
		Data:               data,
		Format:             compose.FormatRGBA8Unorm,
		Width:              pw,
		Height:             ph,
		AlignedBytesPerRow: stride,
		FactorX:            factor,
		FactorY:            factor,
	}
}
