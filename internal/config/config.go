// Package config parses command-line flags into the rain configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"dualrain/internal/rain"
	"dualrain/internal/surface"
)

// Default configuration values for the animation.
const (
	defaultFPS            = 30
	defaultWords          = "matrix"
	defaultGlyphSize      = 16.0
	defaultFallSpeed      = 1.0
	defaultFadingStrength = 0.05
	defaultFadingSpeed    = 0.05
	defaultVariation      = "0.5,0.5,0.5"
	defaultCell           = "8x16"
	defaultColor          = "random"
	defaultBackend        = BackendANSI
)

// Supported terminal backends.
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// ErrListRequested signals that options were listed and the program should exit.
var ErrListRequested = errors.New("list options requested")

// Config holds the configuration for the dual rain animation.
type Config struct {
	Top     *rain.Config    // Stream falling from the top edge
	Bottom  *rain.Config    // Stream rising from the bottom edge
	FPS     int             // Ticks per second
	Metrics surface.Metrics // Pixel size of a terminal cell
	Backend string          // Terminal backend name
	Debug   bool            // Enable debug logging
}

// Interval returns the scheduler period for the configured FPS.
func (c *Config) Interval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// validate checks the parts of the configuration not covered by rain.NewConfig.
func (c *Config) validate() error {
	if c.FPS < 1 || c.FPS > 60 {
		return fmt.Errorf("fps out of range (1-60): got %d", c.FPS)
	}
	if !positive(c.Metrics.CellWidth) || !positive(c.Metrics.CellHeight) {
		return fmt.Errorf("cell size must be positive: got %gx%g", c.Metrics.CellWidth, c.Metrics.CellHeight)
	}
	if c.Backend != BackendANSI && c.Backend != BackendTcell {
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Parser parses command-line flags into a Config.
type Parser struct {
	configData ConfigData
	out        io.Writer
}

// NewParser creates a Parser over the given themes and word sets. Usage and
// option listings are written to out.
func NewParser(configData ConfigData, out io.Writer) *Parser {
	return &Parser{configData: configData, out: out}
}

// Parse processes args (without the program name) and returns a Config.
func (p *Parser) Parse(args []string) (*Config, error) {
	var (
		wordsName       string
		bottomWordsName string
		glyphSize       float64
		fallSpeed       float64
		fadingStrength  float64
		fadingSpeed     float64
		variation       string
		colorName       string
		cell            string
		listOptions     bool
	)
	cfg := &Config{}

	fs := flag.NewFlagSet("dualrain", flag.ContinueOnError)
	fs.SetOutput(p.out)
	fs.StringVar(&wordsName, "words", defaultWords, "word set name or comma-separated words")
	fs.StringVar(&bottomWordsName, "bottom-words", "", "word set for the bottom stream (defaults to -words)")
	fs.Float64Var(&glyphSize, "glyph", defaultGlyphSize, "glyph size in pixels")
	fs.Float64Var(&fallSpeed, "speed", defaultFallSpeed, "base fall speed in glyphs per tick")
	fs.Float64Var(&fadingStrength, "fade", defaultFadingStrength, "base fading strength (background fill opacity)")
	fs.Float64Var(&fadingSpeed, "fade-speed", defaultFadingSpeed, "base fading speed")
	fs.StringVar(&variation, "variation", defaultVariation, "variation fractions for speed,fade,fade-speed (or one value for all)")
	fs.StringVar(&colorName, "color", defaultColor, "color theme name, #rrggbb, or random")
	fs.StringVar(&cell, "cell", defaultCell, "terminal cell size in pixels, WxH")
	fs.IntVar(&cfg.FPS, "fps", defaultFPS, "frames per second (1-60)")
	fs.StringVar(&cfg.Backend, "backend", defaultBackend, "terminal backend (ansi, tcell)")
	fs.BoolVar(&listOptions, "list", false, "list available options")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if listOptions {
		return nil, p.listOptions()
	}

	var err error
	if cfg.Metrics, err = parseCell(cell); err != nil {
		return nil, err
	}
	vary, err := parseVariation(variation)
	if err != nil {
		return nil, err
	}
	tint, err := p.resolveColor(colorName)
	if err != nil {
		return nil, err
	}
	if bottomWordsName == "" {
		bottomWordsName = wordsName
	}

	base := rain.Config{
		GlyphSize:      glyphSize,
		FallSpeed:      fallSpeed,
		FadingStrength: fadingStrength,
		FadingSpeed:    fadingSpeed,
		Variation:      vary,
		Tint:           tint,
	}
	if cfg.Top, err = p.streamConfig(base, wordsName); err != nil {
		return nil, fmt.Errorf("top stream: %w", err)
	}
	if cfg.Bottom, err = p.streamConfig(base, bottomWordsName); err != nil {
		return nil, fmt.Errorf("bottom stream: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (p *Parser) streamConfig(base rain.Config, wordsName string) (*rain.Config, error) {
	base.Words = p.resolveWords(wordsName)
	return rain.NewConfig(base)
}

// resolveWords converts a word set name or comma-separated list to words.
func (p *Parser) resolveWords(name string) []string {
	if set, ok := p.configData.WordSets[strings.ToLower(name)]; ok {
		return set
	}
	var words []string
	for _, w := range strings.Split(name, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// resolveColor returns nil for random colors, otherwise the fixed tint.
func (p *Parser) resolveColor(name string) (*surface.Color, error) {
	name = strings.ToLower(name)
	if name == defaultColor {
		return nil, nil
	}
	if c, ok := p.configData.ColorThemes[name]; ok {
		return &c, nil
	}
	if strings.HasPrefix(name, "#") {
		c, err := surface.ParseHex(name)
		if err != nil {
			return nil, err
		}
		return &c, nil
	}
	return nil, fmt.Errorf("unknown color theme: %s", name)
}

func parseVariation(s string) (rain.Variation, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return rain.Variation{}, fmt.Errorf("invalid variation %q: %w", s, err)
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		return rain.Variation{FallSpeed: vals[0], FadingStrength: vals[0], FadingSpeed: vals[0]}, nil
	case 3:
		return rain.Variation{FallSpeed: vals[0], FadingStrength: vals[1], FadingSpeed: vals[2]}, nil
	default:
		return rain.Variation{}, fmt.Errorf("variation needs 1 or 3 values: got %d", len(vals))
	}
}

func parseCell(s string) (surface.Metrics, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return surface.Metrics{}, fmt.Errorf("invalid cell size %q: want WxH", s)
	}
	cw, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return surface.Metrics{}, fmt.Errorf("invalid cell width %q: %w", w, err)
	}
	ch, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return surface.Metrics{}, fmt.Errorf("invalid cell height %q: %w", h, err)
	}
	return surface.Metrics{CellWidth: cw, CellHeight: ch}, nil
}

// listOptions prints available options and returns ErrListRequested.
func (p *Parser) listOptions() error {
	r := lipgloss.NewRenderer(p.out)
	heading := r.NewStyle().Bold(true).Underline(true)
	muted := r.NewStyle().Faint(true)

	fmt.Fprintln(p.out, heading.Render("Colors:"))
	for _, name := range sortedKeys(p.configData.ColorThemes) {
		c := p.configData.ColorThemes[name]
		swatch := r.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("██")
		fmt.Fprintf(p.out, "  %s %s %s\n", swatch, name, muted.Render(c.Hex()))
	}
	fmt.Fprintf(p.out, "  %s\n", muted.Render("random (default), or any #rrggbb"))

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, heading.Render("Word Sets:"))
	for _, name := range sortedKeys(p.configData.WordSets) {
		fmt.Fprintf(p.out, "  %s %s\n", name, muted.Render(strings.Join(p.configData.WordSets[name], " ")))
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "FPS: 1-60")
	fmt.Fprintln(p.out, "Backends: ansi, tcell")
	fmt.Fprintln(p.out, "Debug: enable with -debug")
	return ErrListRequested
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
