package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// GGContext is a DrawContext backed by a gg software context.
//
// gg flattens paths into device space as they are built, so GGContext keeps
// its own device-space copy of the last built path to answer PointInFill
// with the fill rule in effect.
type GGContext struct {
	dc    *gg.Context
	path  *gg.Path // device space, subpaths closed
	rule  gg.FillRule
	depth int
}

var _ DrawContext = (*GGContext)(nil)

// NewGGContext creates a context drawing into a new width x height pixmap.
func NewGGContext(width, height int) *GGContext {
	return WrapGGContext(gg.NewContext(width, height))
}

// WrapGGContext adapts an existing gg context.
func WrapGGContext(dc *gg.Context) *GGContext {
	return &GGContext{dc: dc, path: gg.NewPath()}
}

// GG returns the underlying gg context.
func (c *GGContext) GG() *gg.Context { return c.dc }

// Image returns the rendered pixels.
func (c *GGContext) Image() image.Image { return c.dc.Image() }

// Depth returns the number of Save calls not yet matched by Restore.
func (c *GGContext) Depth() int { return c.depth }

// Close releases the gg context.
func (c *GGContext) Close() error { return c.dc.Close() }

// Reset clears the pixels to col, resets the transform to m and drops any
// saved state left over from a previous frame.
func (c *GGContext) Reset(col color.Color, m gg.Matrix) {
	for c.depth > 0 {
		c.Restore()
	}
	c.dc.ResetClip()
	if col == nil {
		c.dc.Clear()
	} else {
		c.dc.ClearWithColor(gg.FromColor(col))
	}
	c.dc.SetTransform(m)
	c.dc.ClearPath()
	c.path.Clear()
}

// SetTransform replaces the current transform.
func (c *GGContext) SetTransform(m gg.Matrix) { c.dc.SetTransform(m) }

func (c *GGContext) Save() {
	c.depth++
	c.dc.Push()
}

func (c *GGContext) Restore() {
	if c.depth == 0 {
		panic("canvas: Restore without matching Save")
	}
	c.depth--
	c.dc.Pop()
}

func (c *GGContext) Transform(m gg.Matrix) { c.dc.Transform(m) }

func (c *GGContext) Translate(dx, dy float64) { c.dc.Translate(dx, dy) }

func (c *GGContext) DeviceToUser(x, y float64) (float64, float64) {
	return deviceToUser(c.dc.GetTransform(), x, y)
}

func (c *GGContext) UserToDevice(x, y float64) (float64, float64) {
	return c.dc.TransformPoint(x, y)
}

// BuildPath replaces the current path with p, interpreted in the current
// user frame.
func (c *GGContext) BuildPath(p *gg.Path) {
	c.dc.ClearPath()
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			c.dc.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			c.dc.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			c.dc.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			c.dc.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			c.dc.ClosePath()
		}
	}
	c.path = closeSubpaths(p).Transform(c.dc.GetTransform())
}

func (c *GGContext) SetFillRule(rule gg.FillRule) {
	c.rule = rule
	c.dc.SetFillRule(rule)
}

// PointInFill reports whether the user-space point lies inside the last
// built path under the current fill rule.
func (c *GGContext) PointInFill(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	dx, dy := c.UserToDevice(x, y)
	return windingInside(c.path.Winding(gg.Pt(dx, dy)), c.rule)
}

func (c *GGContext) Clip() {
	c.dc.Clip()
	c.path.Clear()
}

// ClipRect clips to the rectangle in the current user frame. gg's own
// ClipRect maps only two corners, so a rotated or skewed frame clips to the
// rectangle's corner polygon instead.
func (c *GGContext) ClipRect(x, y, w, h float64) {
	m := c.dc.GetTransform()
	if m.B == 0 && m.D == 0 {
		c.dc.ClipRect(x, y, w, h)
		return
	}
	c.dc.ClearPath()
	c.dc.MoveTo(x, y)
	c.dc.LineTo(x+w, y)
	c.dc.LineTo(x+w, y+h)
	c.dc.LineTo(x, y+h)
	c.dc.ClosePath()
	c.dc.Clip()
	c.path.Clear()
}

func (c *GGContext) SetColor(col color.Color) { c.dc.SetColor(col) }

func (c *GGContext) SetLineWidth(w float64) { c.dc.SetLineWidth(w) }

func (c *GGContext) Fill() error {
	c.path.Clear()
	return c.dc.Fill()
}

func (c *GGContext) Stroke() error {
	c.path.Clear()
	return c.dc.Stroke()
}

// windingInside applies a fill rule to a winding number.
func windingInside(winding int, rule gg.FillRule) bool {
	if rule == gg.FillRuleEvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// closeSubpaths returns a copy of p in which every open subpath is closed,
// matching how a fill treats the path.
func closeSubpaths(p *gg.Path) *gg.Path {
	out := gg.NewPath()
	open := false
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			if open {
				out.Close()
			}
			out.MoveTo(e.Point.X, e.Point.Y)
			open = false
		case gg.LineTo:
			out.LineTo(e.Point.X, e.Point.Y)
			open = true
		case gg.QuadTo:
			out.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
			open = true
		case gg.CubicTo:
			out.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
			open = true
		case gg.Close:
			out.Close()
			open = false
		}
	}
	if open {
		out.Close()
	}
	return out
}
