package canvas

import (
	"image/color"

	"github.com/gogpu/gg"
)

// Config enumerates every attribute an item can be constructed with.
// Items ignore the fields they do not have.
type Config struct {
	Name string

	// Group translation and clip size. A width or height <= 0 means the
	// group is not clipped.
	X, Y          float64
	Width, Height float64

	Transform    *gg.Matrix
	ClipPath     *gg.Path
	ClipFillRule gg.FillRule

	Visibility          Visibility
	VisibilityThreshold float64
	PointerEvents       PointerEvents

	// Shape paint. A nil color disables that part of the paint.
	FillColor   color.Color
	StrokeColor color.Color
	LineWidth   float64
	FillRule    gg.FillRule
}

// DefaultConfig returns the attribute defaults: no translation, no clip
// size (-1), no transform or clip path, visible, pointer events
// VisiblePainted and a line width of 1.
func DefaultConfig() Config {
	return Config{
		Width:         -1,
		Height:        -1,
		Visibility:    VisibilityVisible,
		PointerEvents: PointerEventsVisiblePainted,
		LineWidth:     1,
		FillRule:      gg.FillRuleNonZero,
		ClipFillRule:  gg.FillRuleNonZero,
	}
}

// Option configures an item during creation.
//
// Example:
//
//	g := canvas.NewGroup(root,
//		canvas.WithPosition(10, 20),
//		canvas.WithSize(100, 50),
//	)
type Option func(*Config)

// buildConfig applies opts over the defaults.
func buildConfig(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithConfig replaces the whole configuration record. Options listed after
// it still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// WithName sets the item's debug name.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithPosition sets a group's translation.
func WithPosition(x, y float64) Option {
	return func(c *Config) {
		c.X, c.Y = x, y
	}
}

// WithSize sets a group's clip size.
func WithSize(width, height float64) Option {
	return func(c *Config) {
		c.Width, c.Height = width, height
	}
}

// WithTransform sets the local-to-parent transform.
func WithTransform(m gg.Matrix) Option {
	return func(c *Config) {
		c.Transform = &m
	}
}

// WithClipPath sets the clip path and its fill rule.
func WithClipPath(p *gg.Path, rule gg.FillRule) Option {
	return func(c *Config) {
		c.ClipPath = p
		c.ClipFillRule = rule
	}
}

// WithVisibility sets the visibility mode.
func WithVisibility(v Visibility) Option {
	return func(c *Config) {
		c.Visibility = v
	}
}

// WithVisibilityThreshold makes the item visible only at scales >= t.
func WithVisibilityThreshold(t float64) Option {
	return func(c *Config) {
		c.Visibility = VisibilityAboveThreshold
		c.VisibilityThreshold = t
	}
}

// WithPointerEvents sets the pointer-event policy.
func WithPointerEvents(p PointerEvents) Option {
	return func(c *Config) {
		c.PointerEvents = p
	}
}

// WithFill sets a shape's fill color.
func WithFill(col color.Color) Option {
	return func(c *Config) {
		c.FillColor = col
	}
}

// WithStroke sets a shape's stroke color and line width.
func WithStroke(col color.Color, width float64) Option {
	return func(c *Config) {
		c.StrokeColor = col
		c.LineWidth = width
	}
}

// WithFillRule sets a shape's fill rule.
func WithFillRule(rule gg.FillRule) Option {
	return func(c *Config) {
		c.FillRule = rule
	}
}
