package wire

import (
	"testing"

	"github.com/framegrace/cellframe/cell"
)

func TestFrameRoundTrip(t *testing.T) {
	b, err := cell.NewBuffer(5, 3)
	if err != nil {
		t.Fatalf("buffer: %v", err)
	}
	b.Clear(cell.RGBA{R: 0.1, G: 0.2, B: 0.3, A: 1})
	b.DrawText(0, 0, "héllo", cell.RGBA{R: 1, G: 0.5, B: 0, A: 1}, cell.AttrBold)
	b.FillRect(2, 1, 2, 2, cell.RGBA{R: 0, G: 0, B: 1, A: 0.5})

	data := EncodeFrame(b)
	got, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Width() != 5 || got.Height() != 3 {
		t.Fatalf("geometry mismatch: %dx%d", got.Width(), got.Height())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			want, _ := b.CellAt(x, y)
			have, _ := got.CellAt(x, y)
			if want != have {
				t.Fatalf("cell (%d,%d) mismatch: %+v vs %+v", x, y, want, have)
			}
		}
	}
}

func TestDecodeFrameRejectsCorruption(t *testing.T) {
	b, _ := cell.NewBuffer(2, 2)
	data := EncodeFrame(b)

	if _, err := DecodeFrame(data[:10]); err != ErrShortPayload {
		t.Fatalf("expected short payload, got %v", err)
	}

	bad := append([]byte(nil), data...)
	bad[0] ^= 0xFF
	if _, err := DecodeFrame(bad); err != ErrInvalidMagic {
		t.Fatalf("expected invalid magic, got %v", err)
	}

	bad = append([]byte(nil), data...)
	bad[len(bad)-1] ^= 0xFF
	if _, err := DecodeFrame(bad); err != ErrChecksumMismatch {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}

	bad = append([]byte(nil), data...)
	bad[4] = Version + 1
	if _, err := DecodeFrame(bad); err != ErrUnsupportedVer {
		t.Fatalf("expected unsupported version, got %v", err)
	}
}

func TestRecordCount(t *testing.T) {
	if _, err := RecordCount(make([]byte, RecordSize+1)); err != ErrBadRecordRun {
		t.Fatalf("expected bad record run, got %v", err)
	}
	n, err := RecordCount(make([]byte, 3*RecordSize))
	if err != nil || n != 3 {
		t.Fatalf("got n=%d err=%v", n, err)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	want := cell.Cell{
		Rune:  '█',
		Fg:    cell.RGBA{R: 0.25, G: 0.5, B: 0.75, A: 1},
		Bg:    cell.RGBA{R: 1, G: 0, B: 0, A: 0.5},
		Attrs: cell.AttrReverse | cell.AttrBold,
	}
	data := AppendCell(nil, want.Rune, want.Fg, want.Bg, want.Attrs)
	if len(data) != RecordSize {
		t.Fatalf("record size %d", len(data))
	}
	if got := RecordAt(data, 0); got != want {
		t.Fatalf("mismatch: %+v vs %+v", got, want)
	}
}
