// Package rain simulates columns of words travelling from a viewport edge
// toward its horizontal centerline.
package rain

import (
	"errors"
	"fmt"
	"math"

	"dualrain/internal/surface"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid rain configuration")

// Variation bounds how far each per-column parameter may deviate from its
// base value, as a fraction of that base.
type Variation struct {
	FallSpeed      float64
	FadingStrength float64
	FadingSpeed    float64
}

// Config holds the static parameters of one rain stream.
type Config struct {
	Words          []string       // Pool a column's word is drawn from
	GlyphSize      float64        // Pixel edge of a monospace cell
	FallSpeed      float64        // Base advance per tick, in glyph units
	FadingStrength float64        // Base opacity of the per-frame background fill
	FadingSpeed    float64        // Base fading speed carried by each column
	Variation      Variation      // Per-column deviation bounds
	Tint           *surface.Color // Optional fixed hue; nil draws random colors
}

// NewConfig validates c and returns an immutable copy of it.
func NewConfig(c Config) (*Config, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	cfg := c
	cfg.Words = append([]string(nil), c.Words...)
	if c.Tint != nil {
		tint := *c.Tint
		cfg.Tint = &tint
	}
	return &cfg, nil
}

// validate checks the configuration for validity.
func (c *Config) validate() error {
	if len(c.Words) == 0 {
		return fmt.Errorf("%w: word pool cannot be empty", ErrInvalidConfig)
	}
	if !(c.GlyphSize > 0) || math.IsInf(c.GlyphSize, 0) {
		return fmt.Errorf("%w: glyph size must be positive: got %g", ErrInvalidConfig, c.GlyphSize)
	}
	params := []struct {
		name string
		v    float64
	}{
		{"fall speed", c.FallSpeed},
		{"fading strength", c.FadingStrength},
		{"fading speed", c.FadingSpeed},
		{"fall speed variation", c.Variation.FallSpeed},
		{"fading strength variation", c.Variation.FadingStrength},
		{"fading speed variation", c.Variation.FadingSpeed},
	}
	for _, p := range params {
		if !nonNegative(p.v) {
			return fmt.Errorf("%w: %s must be a finite non-negative number: got %g", ErrInvalidConfig, p.name, p.v)
		}
	}
	if c.Tint != nil && *c.Tint == surface.Black {
		return fmt.Errorf("%w: tint cannot be the background color", ErrInvalidConfig)
	}
	return nil
}

// nonNegative reports whether v is finite and >= 0. NaN fails every comparison.
func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
