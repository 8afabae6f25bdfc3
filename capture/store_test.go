package capture

import (
	"path/filepath"
	"testing"

	"github.com/framegrace/cellframe/cell"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "frames.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testFrame(t *testing.T, marker string) *cell.Buffer {
	t.Helper()
	b, err := cell.NewBuffer(12, 4)
	if err != nil {
		t.Fatalf("buffer: %v", err)
	}
	b.Clear(cell.RGBA{R: 0.1, G: 0.1, B: 0.2, A: 1})
	b.DrawText(0, 0, marker, cell.RGBA{R: 1, G: 1, B: 0, A: 1}, cell.AttrBold)
	return b
}

func TestSaveAndRestore(t *testing.T) {
	s := openTestStore(t)
	src := testFrame(t, "frame-one")

	if err := s.Save(src); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	f, err := s.Latest()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if f.Width != 12 || f.Height != 4 {
		t.Fatalf("stored geometry wrong: %dx%d", f.Width, f.Height)
	}

	restored, err := f.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 12; x++ {
			want, _ := src.CellAt(x, y)
			got, _ := restored.CellAt(x, y)
			if want != got {
				t.Fatalf("cell (%d,%d) drifted through store: %+v vs %+v", x, y, want, got)
			}
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	for _, marker := range []string{"a", "b", "c"} {
		if err := s.Save(testFrame(t, marker)); err != nil {
			t.Fatalf("save %q: %v", marker, err)
		}
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	frames, err := s.List(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("listed %d frames, want 3", len(frames))
	}
	if frames[0].ID <= frames[1].ID || frames[1].ID <= frames[2].ID {
		t.Fatalf("list not newest first: %v %v %v", frames[0].ID, frames[1].ID, frames[2].ID)
	}

	byID, err := s.Frame(frames[2].ID)
	if err != nil {
		t.Fatalf("frame by id: %v", err)
	}
	restored, err := byID.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	c, _ := restored.CellAt(0, 0)
	if c.Rune != 'a' {
		t.Fatalf("oldest frame content wrong: %q", c.Rune)
	}
}

func TestMissingFrame(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Latest(); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Frame(99); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCloseFlushesPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Save(testFrame(t, "pending")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.Latest(); err != nil {
		t.Fatalf("frame queued at close was lost: %v", err)
	}
}
