package canvas

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/gogpu/gg"
)

// CanvasConfig configures a Canvas.
type CanvasConfig struct {
	// Width and Height are the render target size in pixels.
	Width, Height int
	// Scale is the number of pixels per canvas unit. Zero means 1.
	Scale float64
	// Extents is the visible area in canvas units. Empty means
	// (0, 0, Width, Height).
	Extents Bounds
	// Background is the clear color. Nil selects DefaultBackground.
	Background color.Color
	// Debug turns on debug mode (see Canvas.SetDebugMode). The tree checks
	// it enables are process-wide; leaving Debug false does not turn them
	// off for a canvas that already enabled them.
	Debug bool
}

// Canvas is the root of an item tree. It owns the root item, the display
// scale and a gg render target, and drives the update that must precede
// every paint and hit test.
//
// The base transform maps canvas units to pixels: scale, then a
// translation by the negated extents origin. Cached item bounds and hit
// test coordinates are in pixels.
type Canvas struct {
	root       Item
	scale      float64
	extents    Bounds
	width      int
	height     int
	background color.Color
	debug      bool

	target     *GGContext
	needUpdate bool
	needRedraw bool

	// ebiten glue (run.go)
	frame   frameBuffer
	hovered Item
}

// NewCanvas creates a canvas with an empty root group.
func NewCanvas(cfg CanvasConfig) *Canvas {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Extents.Empty() {
		cfg.Extents = Bounds{X2: float64(cfg.Width), Y2: float64(cfg.Height)}
	}
	if cfg.Background == nil {
		cfg.Background = DefaultBackground
	}
	c := &Canvas{
		scale:      cfg.Scale,
		extents:    cfg.Extents,
		width:      cfg.Width,
		height:     cfg.Height,
		background: cfg.Background,
		needUpdate: true,
		needRedraw: true,
	}
	if cfg.Debug {
		c.SetDebugMode(true)
	}
	c.SetRoot(NewGroup(nil, WithName("root")))
	return c
}

// Root returns the root item.
func (c *Canvas) Root() Item {
	return c.root
}

// SetRoot replaces the root item. The new root is detached from any parent.
func (c *Canvas) SetRoot(it Item) {
	if c.root != nil {
		c.root.AsSimple().canvas = nil
	}
	c.root = it
	if it != nil {
		s := it.AsSimple()
		s.Remove()
		s.canvas = c
		markSubtreeDirty(s)
	}
	c.requestUpdate()
}

// Size returns the render target size in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Scale returns the display scale.
func (c *Canvas) Scale() float64 {
	return c.scale
}

// SetScale sets the display scale. Every cached bound is in pixels, so the
// whole tree is revalidated on the next update.
func (c *Canvas) SetScale(scale float64) {
	if scale <= 0 || scale == c.scale {
		return
	}
	c.scale = scale
	c.invalidateTree()
}

// Extents returns the visible area in canvas units.
func (c *Canvas) Extents() Bounds {
	return c.extents
}

// SetExtents sets the visible area in canvas units.
func (c *Canvas) SetExtents(b Bounds) {
	c.extents = b
	c.invalidateTree()
}

func (c *Canvas) invalidateTree() {
	if c.root != nil {
		markSubtreeDirty(c.root.AsSimple())
	}
	c.requestUpdate()
}

// BaseTransform returns the canvas-units-to-pixels transform.
func (c *Canvas) BaseTransform() gg.Matrix {
	return gg.Scale(c.scale, c.scale).Multiply(gg.Translate(-c.extents.X1, -c.extents.Y1))
}

// ConvertToPixels converts a point in canvas units to pixels.
func (c *Canvas) ConvertToPixels(x, y float64) (float64, float64) {
	p := c.BaseTransform().TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}

// ConvertFromPixels converts a point in pixels to canvas units.
func (c *Canvas) ConvertFromPixels(x, y float64) (float64, float64) {
	p := c.BaseTransform().Invert().TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}

// NeedsUpdate reports whether an update is pending.
func (c *Canvas) NeedsUpdate() bool {
	return c.needUpdate || (c.root != nil && c.root.AsSimple().needUpdate)
}

// NeedsRedraw reports whether anything changed since the last Render.
func (c *Canvas) NeedsRedraw() bool {
	return c.needRedraw
}

func (c *Canvas) requestUpdate() {
	c.needUpdate = true
	c.needRedraw = true
}

func (c *Canvas) requestRedraw() {
	c.needRedraw = true
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-item
// use panics, tree depth and child count warnings are logged, unbalanced
// context saves panic, and per-frame timings are logged at debug level.
// The tree checks are shared by every canvas in the process and follow the
// most recent call.
func (c *Canvas) SetDebugMode(enabled bool) {
	c.debug = enabled
	debugMode = enabled
}

// renderTarget returns the gg context, creating it on first use.
func (c *Canvas) renderTarget() *GGContext {
	if c.target == nil {
		w, h := max(c.width, 1), max(c.height, 1)
		c.target = NewGGContext(w, h)
	}
	return c.target
}

// Update revalidates dirty items. It is a no-op when nothing changed.
func (c *Canvas) Update() {
	c.update()
}

// update runs the update traversal if one is pending and reports how long
// it took.
func (c *Canvas) update() (time.Duration, bool) {
	if c.root == nil || !c.NeedsUpdate() {
		c.needUpdate = false
		return 0, false
	}
	t0 := time.Now()
	ctx := c.renderTarget()
	ctx.SetTransform(c.BaseTransform())
	c.root.Update(false, ctx)
	if c.debug {
		debugCheckBalanced(ctx, "Update")
	}
	c.needUpdate = false
	return time.Since(t0), true
}

// Paint updates the tree and paints it into ctx, which must already hold
// the base transform. exposed is in pixels.
func (c *Canvas) Paint(ctx DrawContext, exposed Bounds) {
	c.update()
	if c.root == nil {
		return
	}
	c.root.Paint(ctx, exposed, c.scale)
}

// ItemsAt returns the items under the pixel (x, y), topmost first. A
// pointer query honours each item's pointer-event policy and visibility.
func (c *Canvas) ItemsAt(x, y float64, pointer bool) []Item {
	c.update()
	if c.root == nil {
		return nil
	}
	ctx := c.renderTarget()
	ctx.SetTransform(c.BaseTransform())
	found := c.root.HitTest(x, y, ctx, HitQuery{
		Pointer:       pointer,
		ParentVisible: true,
		Scale:         c.scale,
	}, nil)
	if c.debug {
		debugCheckBalanced(ctx, "HitTest")
	}
	return found
}

// ItemAt returns the topmost item under the pixel (x, y), or nil.
func (c *Canvas) ItemAt(x, y float64, pointer bool) Item {
	found := c.ItemsAt(x, y, pointer)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// Render updates and paints the whole canvas into the render target and
// returns its pixels.
func (c *Canvas) Render() image.Image {
	var stats debugStats
	stats.updateTime, stats.updated = c.update()

	ctx := c.renderTarget()
	t0 := time.Now()
	ctx.Reset(c.background, c.BaseTransform())
	if c.root != nil {
		c.root.Paint(ctx, Bounds{X2: float64(c.width), Y2: float64(c.height)}, c.scale)
	}
	if c.debug {
		debugCheckBalanced(ctx, "Paint")
		stats.paintTime = time.Since(t0)
		stats.itemCount = countItems(c.root)
		c.debugLog(stats)
	}
	c.needRedraw = false
	return ctx.Image()
}

// WritePNG renders the canvas and encodes it as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	c.Render()
	if err := c.renderTarget().GG().EncodePNG(w); err != nil {
		return fmt.Errorf("encode canvas png: %w", err)
	}
	return nil
}

// Close releases the render target.
func (c *Canvas) Close() error {
	c.frame.dispose()
	if c.target == nil {
		return nil
	}
	err := c.target.Close()
	c.target = nil
	return err
}
