package cell

// RGBA is a straight-alpha color with float32 channels in [0,1].
// Alpha 0 is fully transparent, alpha 1 fully opaque.
type RGBA struct {
	R, G, B, A float32
}

// Predefined colors.
var (
	Transparent = RGBA{}
	Black       = RGBA{0, 0, 0, 1}
	White       = RGBA{1, 1, 1, 1}
)

// DefaultFg is the foreground applied by Clear.
var DefaultFg = White

// Over composites src over dst using straight alpha:
// out = src*src.A + dst*(1-src.A) per channel, out.A = src.A + dst.A*(1-src.A).
func (dst RGBA) Over(src RGBA) RGBA {
	if src.A >= 1 {
		return src
	}
	if src.A <= 0 {
		return dst
	}
	inv := 1 - src.A
	return RGBA{
		R: src.R*src.A + dst.R*inv,
		G: src.G*src.A + dst.G*inv,
		B: src.B*src.A + dst.B*inv,
		A: src.A + dst.A*inv,
	}
}

// RGBA8 returns the color quantized to 8-bit channels, with the color
// channels composited as-is (no premultiplication).
func (c RGBA) RGBA8() (r, g, b, a uint8) {
	return quantize(c.R), quantize(c.G), quantize(c.B), quantize(c.A)
}

// FromRGBA8 converts 8-bit channels into the [0,1] float representation.
func FromRGBA8(r, g, b, a uint8) RGBA {
	return RGBA{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
