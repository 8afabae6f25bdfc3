package cell

import (
	"math"
	"testing"
)

func approxEq(a, b RGBA) bool {
	const eps = 1e-6
	return math.Abs(float64(a.R-b.R)) < eps &&
		math.Abs(float64(a.G-b.G)) < eps &&
		math.Abs(float64(a.B-b.B)) < eps &&
		math.Abs(float64(a.A-b.A)) < eps
}

func TestOverOpaqueSourceWins(t *testing.T) {
	dst := RGBA{0.1, 0.2, 0.3, 0.4}
	src := RGBA{0.9, 0.8, 0.7, 1}
	if got := dst.Over(src); got != src {
		t.Fatalf("opaque source should replace: %+v", got)
	}
}

func TestOverTransparentSourceKeepsDestination(t *testing.T) {
	dst := RGBA{0.1, 0.2, 0.3, 0.9}
	src := RGBA{1, 1, 1, 0}
	if got := dst.Over(src); got != dst {
		t.Fatalf("transparent source should leave destination: %+v", got)
	}
}

func TestOverHalfAlpha(t *testing.T) {
	dst := RGBA{0, 0, 0, 1}
	src := RGBA{1, 1, 1, 0.5}
	want := RGBA{0.5, 0.5, 0.5, 1}
	if got := dst.Over(src); !approxEq(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestOverAccumulatesAlpha(t *testing.T) {
	dst := RGBA{0, 0, 0, 0.5}
	src := RGBA{1, 0, 0, 0.5}
	got := dst.Over(src)
	if !approxEq(RGBA{A: got.A}, RGBA{A: 0.75}) {
		t.Fatalf("alpha should be 0.75, got %v", got.A)
	}
}

func TestBlendingThroughSetCell(t *testing.T) {
	b := mustBuffer(t, 1, 1)
	b.Clear(RGBA{0, 0, 0, 1})
	b.SetRespectAlpha(true)

	b.SetCell(0, 0, '*', White, RGBA{1, 0, 0, 0.5}, AttrNone)
	c, _ := b.CellAt(0, 0)
	if !approxEq(c.Bg, RGBA{0.5, 0, 0, 1}) {
		t.Fatalf("blended bg wrong: %+v", c.Bg)
	}

	// Opaque write through a blending buffer is still exact.
	green := RGBA{0, 1, 0, 1}
	b.SetCell(0, 0, '*', White, green, AttrNone)
	c, _ = b.CellAt(0, 0)
	if c.Bg != green {
		t.Fatalf("opaque blend not exact: %+v", c.Bg)
	}
}

func TestRGBA8RoundTrip(t *testing.T) {
	c := FromRGBA8(128, 64, 255, 0)
	r, g, b, a := c.RGBA8()
	if r != 128 || g != 64 || b != 255 || a != 0 {
		t.Fatalf("round trip drifted: %d %d %d %d", r, g, b, a)
	}
}
