package render

// Color is a linear RGBA colour with components in [0, 1]
type Color struct {
	R, G, B, A float64
}

// Named colours
var (
	Red     = Color{1, 0, 0, 1}
	Green   = Color{0, 1, 0, 1}
	Blue    = Color{0, 0, 1, 1}
	Yellow  = Color{1, 1, 0, 1}
	Magenta = Color{1, 0, 1, 1}
	Cyan    = Color{0, 1, 1, 1}
	Black   = Color{0, 0, 0, 1}
	White   = Color{1, 1, 1, 1}
	Gray    = Color{.5, .5, .5, 1}
)

// RGBA builds a colour from its components
func RGBA(r, g, b, a float64) Color {
	return Color{r, g, b, a}
}

// Scale multiplies the RGB channels by f, alpha is kept
func (c Color) Scale(f float64) Color {
	return Color{clamp01(c.R * f), clamp01(c.G * f), clamp01(c.B * f), c.A}
}

// Add sums the RGB channels, alpha is kept from c
func (c Color) Add(o Color) Color {
	return Color{clamp01(c.R + o.R), clamp01(c.G + o.G), clamp01(c.B + o.B), c.A}
}

// Modulate multiplies channel-wise
func (c Color) Modulate(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// WithAlpha returns c with alpha replaced
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// RGB8 converts to 8-bit channels
func (c Color) RGB8() (r, g, b uint8) {
	return to8(c.R), to8(c.G), to8(c.B)
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
