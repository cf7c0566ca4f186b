package canvas

// Group is a container item. Its children are painted in order, later
// children above earlier ones. The group translates its children by (X, Y)
// after its own transform, and clips them to (0, 0, Width, Height) when both
// sizes are positive.
//
// A group never matches a hit test itself; only its descendants do.
type Group struct {
	Simple

	x, y          float64
	width, height float64
}

// NewGroup creates a group. If parent is non-nil the group is appended to
// its children.
func NewGroup(parent Item, opts ...Option) *Group {
	cfg := buildConfig(opts)
	g := &Group{
		x:      cfg.X,
		y:      cfg.Y,
		width:  cfg.Width,
		height: cfg.Height,
	}
	g.Simple.init(g, cfg)
	if parent != nil {
		parent.AsSimple().AddChild(g, -1)
	}
	return g
}

// --- Geometry attributes ---

// X returns the horizontal translation applied to the children.
func (g *Group) X() float64 { return g.x }

// Y returns the vertical translation applied to the children.
func (g *Group) Y() float64 { return g.y }

// Width returns the clip width; <= 0 means unclipped.
func (g *Group) Width() float64 { return g.width }

// Height returns the clip height; <= 0 means unclipped.
func (g *Group) Height() float64 { return g.height }

// SetX sets the horizontal translation.
func (g *Group) SetX(x float64) {
	g.x = x
	g.Changed(true)
}

// SetY sets the vertical translation.
func (g *Group) SetY(y float64) {
	g.y = y
	g.Changed(true)
}

// SetPosition sets both translations.
func (g *Group) SetPosition(x, y float64) {
	g.x, g.y = x, y
	g.Changed(true)
}

// SetWidth sets the clip width.
func (g *Group) SetWidth(w float64) {
	g.width = w
	g.Changed(true)
}

// SetHeight sets the clip height.
func (g *Group) SetHeight(h float64) {
	g.height = h
	g.Changed(true)
}

// SetSize sets the clip size.
func (g *Group) SetSize(w, h float64) {
	g.width, g.height = w, h
	g.Changed(true)
}

func (g *Group) clipped() bool {
	return g.width > 0 && g.height > 0
}

// --- Traversals ---

// Update recomputes the group's bounds as the union of its children's
// bounds when the group is dirty or entireTree is set; otherwise the cached
// bounds are returned untouched. The clip does not shrink the bounds.
func (g *Group) Update(entireTree bool, ctx DrawContext) Bounds {
	s := &g.Simple
	if !entireTree && !s.needUpdate {
		return s.bounds
	}
	if s.needEntireSubtreeUpdate {
		entireTree = true
	}
	s.needUpdate = false
	s.needEntireSubtreeUpdate = false

	s.bounds = Bounds{}
	if len(s.children) > 0 {
		s.bounds = g.updateChildren(entireTree, ctx)
	}
	return s.bounds
}

func (g *Group) updateChildren(entireTree bool, ctx DrawContext) Bounds {
	ctx.Save()
	defer ctx.Restore()
	applyFrame(ctx, g.transform, g.x, g.y)

	var bounds Bounds
	for _, child := range g.children {
		bounds = bounds.Union(child.Update(entireTree, ctx))
	}
	return bounds
}

// Paint paints the children bottom to top. Nothing is drawn, and the
// context is not touched, when the group's bounds miss exposed or the group
// is not visible at scale.
func (g *Group) Paint(ctx DrawContext, exposed Bounds, scale float64) {
	s := &g.Simple
	if !s.bounds.Intersects(exposed) {
		return
	}
	if !s.VisibleAt(scale) {
		return
	}

	ctx.Save()
	defer ctx.Restore()
	applyFrame(ctx, s.transform, g.x, g.y)

	if s.clipPath != nil {
		ctx.BuildPath(s.clipPath)
		ctx.SetFillRule(s.clipFillRule)
		ctx.Clip()
	}
	if g.clipped() {
		ctx.ClipRect(0, 0, g.width, g.height)
	}

	for _, child := range s.children {
		child.Paint(ctx, exposed, scale)
	}
}

// HitTest walks the children bottom to top; each child prepends its own
// matches, so the returned list is topmost first.
func (g *Group) HitTest(x, y float64, ctx DrawContext, q HitQuery, found []Item) []Item {
	s := &g.Simple
	if s.needUpdate {
		// ctx still holds the parent's frame, as during Update.
		g.Update(false, ctx)
	}

	if !s.bounds.Contains(x, y) {
		return found
	}

	visible := q.ParentVisible && s.VisibleAt(q.Scale)
	if q.Pointer && !s.pointerEvents.accepts(visible) {
		return found
	}

	ctx.Save()
	defer ctx.Restore()
	applyFrame(ctx, s.transform, g.x, g.y)

	if s.clipPath != nil {
		ux, uy := ctx.DeviceToUser(x, y)
		ctx.BuildPath(s.clipPath)
		ctx.SetFillRule(s.clipFillRule)
		if !ctx.PointInFill(ux, uy) {
			return found
		}
	}

	if g.clipped() {
		ux, uy := ctx.DeviceToUser(x, y)
		if !(ux >= 0 && ux < g.width && uy >= 0 && uy < g.height) {
			return found
		}
	}

	cq := q
	cq.ParentVisible = visible
	for _, child := range s.children {
		found = child.HitTest(x, y, ctx, cq, found)
	}
	return found
}
