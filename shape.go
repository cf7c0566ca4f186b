package canvas

import (
	"image/color"
	"slices"

	"github.com/gogpu/gg"
)

// Shape is a leaf item drawing a gg path in its local frame. It is filled
// and then stroked; either part is skipped when its color is nil.
type Shape struct {
	Simple

	path        *gg.Path
	fillColor   color.Color
	strokeColor color.Color
	lineWidth   float64
	fillRule    gg.FillRule
}

// NewShape creates a shape for path. If parent is non-nil the shape is
// appended to its children.
func NewShape(parent Item, path *gg.Path, opts ...Option) *Shape {
	cfg := buildConfig(opts)
	if path == nil {
		path = gg.NewPath()
	}
	sh := &Shape{
		path:        path,
		fillColor:   cfg.FillColor,
		strokeColor: cfg.StrokeColor,
		lineWidth:   cfg.LineWidth,
		fillRule:    cfg.FillRule,
	}
	sh.Simple.init(sh, cfg)
	if parent != nil {
		parent.AsSimple().AddChild(sh, -1)
	}
	return sh
}

// NewRect is a convenience creating a rectangular shape.
func NewRect(parent Item, x, y, w, h float64, opts ...Option) *Shape {
	p := gg.NewPath()
	p.Rectangle(x, y, w, h)
	return NewShape(parent, p, opts...)
}

// --- Attributes ---

// Path returns the shape's path. Call SetPath after modifying it.
func (sh *Shape) Path() *gg.Path { return sh.path }

// SetPath replaces the shape's path.
func (sh *Shape) SetPath(p *gg.Path) {
	if p == nil {
		p = gg.NewPath()
	}
	sh.path = p
	sh.Changed(true)
}

// FillColor returns the fill color, or nil.
func (sh *Shape) FillColor() color.Color { return sh.fillColor }

// SetFillColor sets the fill color; nil disables the fill.
func (sh *Shape) SetFillColor(c color.Color) {
	sh.fillColor = c
	sh.Changed(false)
}

// StrokeColor returns the stroke color, or nil.
func (sh *Shape) StrokeColor() color.Color { return sh.strokeColor }

// SetStrokeColor sets the stroke color; nil disables the stroke.
func (sh *Shape) SetStrokeColor(c color.Color) {
	sh.strokeColor = c
	sh.Changed(true)
}

// LineWidth returns the stroke width.
func (sh *Shape) LineWidth() float64 { return sh.lineWidth }

// SetLineWidth sets the stroke width.
func (sh *Shape) SetLineWidth(w float64) {
	sh.lineWidth = w
	sh.Changed(true)
}

// FillRule returns the fill rule.
func (sh *Shape) FillRule() gg.FillRule { return sh.fillRule }

// SetFillRule sets the fill rule.
func (sh *Shape) SetFillRule(rule gg.FillRule) {
	sh.fillRule = rule
	sh.Changed(false)
}

// --- Traversals ---

// Update recomputes the device-space box around the transformed path,
// widened by half the line width when the shape is stroked.
func (sh *Shape) Update(entireTree bool, ctx DrawContext) Bounds {
	s := &sh.Simple
	if !entireTree && !s.needUpdate {
		return s.bounds
	}
	s.needUpdate = false
	s.needEntireSubtreeUpdate = false

	if len(sh.path.Elements()) == 0 {
		s.bounds = Bounds{}
		return s.bounds
	}

	r := sh.path.BoundingBox()
	if sh.strokeColor != nil && sh.lineWidth > 0 {
		half := sh.lineWidth / 2
		r.Min.X -= half
		r.Min.Y -= half
		r.Max.X += half
		r.Max.Y += half
	}

	ctx.Save()
	defer ctx.Restore()
	applyFrame(ctx, s.transform, 0, 0)
	s.bounds = deviceBounds(ctx, r)
	return s.bounds
}

// Paint fills and strokes the path.
func (sh *Shape) Paint(ctx DrawContext, exposed Bounds, scale float64) {
	s := &sh.Simple
	if !s.bounds.Intersects(exposed) || !s.VisibleAt(scale) {
		return
	}
	if sh.fillColor == nil && sh.strokeColor == nil {
		return
	}

	ctx.Save()
	defer ctx.Restore()
	applyFrame(ctx, s.transform, 0, 0)

	if s.clipPath != nil {
		ctx.BuildPath(s.clipPath)
		ctx.SetFillRule(s.clipFillRule)
		ctx.Clip()
	}

	if sh.fillColor != nil {
		ctx.BuildPath(sh.path)
		ctx.SetFillRule(sh.fillRule)
		ctx.SetColor(sh.fillColor)
		if err := ctx.Fill(); err != nil {
			Logger().Warn("canvas: shape fill failed", "item", s.ID, "error", err)
		}
	}
	if sh.strokeColor != nil && sh.lineWidth > 0 {
		ctx.BuildPath(sh.path)
		ctx.SetColor(sh.strokeColor)
		ctx.SetLineWidth(sh.lineWidth)
		if err := ctx.Stroke(); err != nil {
			Logger().Warn("canvas: shape stroke failed", "item", s.ID, "error", err)
		}
	}
}

// HitTest prepends the shape when the point lies in its fill region.
// Pointer queries honour the pointer-event policy: the fill mask must be
// set, and with the painted mask the shape must have a fill color.
func (sh *Shape) HitTest(x, y float64, ctx DrawContext, q HitQuery, found []Item) []Item {
	s := &sh.Simple
	if s.needUpdate {
		sh.Update(false, ctx)
	}
	if !s.bounds.Contains(x, y) {
		return found
	}

	visible := q.ParentVisible && s.VisibleAt(q.Scale)
	if q.Pointer {
		if !s.pointerEvents.accepts(visible) || s.pointerEvents&PointerEventsFillMask == 0 {
			return found
		}
		if s.pointerEvents&PointerEventsPaintedMask != 0 && sh.fillColor == nil {
			return found
		}
	}

	ctx.Save()
	defer ctx.Restore()
	applyFrame(ctx, s.transform, 0, 0)
	ux, uy := ctx.DeviceToUser(x, y)

	if s.clipPath != nil {
		ctx.BuildPath(s.clipPath)
		ctx.SetFillRule(s.clipFillRule)
		if !ctx.PointInFill(ux, uy) {
			return found
		}
	}

	ctx.BuildPath(sh.path)
	ctx.SetFillRule(sh.fillRule)
	if !ctx.PointInFill(ux, uy) {
		return found
	}
	return slices.Insert(found, 0, Item(sh))
}
