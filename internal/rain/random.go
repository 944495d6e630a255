package rain

import "dualrain/internal/surface"

// Random is the source of randomness for a Field. *math/rand/v2.Rand
// satisfies it; tests supply scripted sequences.
type Random interface {
	Float64() float64 // uniform in [0, 1)
	IntN(n int) int   // uniform in [0, n)
}

// colorSpace is the number of non-background 24-bit colors.
const colorSpace = 1<<24 - 1

// Vary derives base*(1+u) with u uniform in [-variation, +variation].
// Results are clamped at zero so that variations above 1 never produce
// backward motion or negative opacity.
func Vary(rng Random, base, variation float64) float64 {
	u := (rng.Float64()*2 - 1) * variation
	return max(base*(1+u), 0)
}

// RandomColor draws uniformly from every 24-bit color except black.
func RandomColor(rng Random) surface.Color {
	n := 1 + rng.IntN(colorSpace)
	return surface.Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}
}

// tintedColor draws a random brightness of tint, never below half.
func tintedColor(rng Random, tint surface.Color) surface.Color {
	c := tint.Dim(0.5 + 0.5*rng.Float64())
	if c == surface.Black {
		return tint
	}
	return c
}
