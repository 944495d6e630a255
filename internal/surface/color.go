package surface

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a 24-bit RGB color value.
type Color struct{ R, G, B uint8 }

// Black is the background color of every surface.
var Black = Color{}

// ParseHex parses a "#rrggbb" string into a Color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return FromColorful(c), nil
}

// FromColorful quantizes a colorful.Color to 8 bits per channel.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b}
}

// Colorful returns the color in go-colorful's float representation.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Hex returns the "#rrggbb" form of the color.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Dim scales each channel by factor, clamped to [0, 1].
func (c Color) Dim(factor float64) Color {
	factor = clamp(factor, 0, 1)
	return Color{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
