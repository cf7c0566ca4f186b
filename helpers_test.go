package canvas

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"testing"

	"github.com/gogpu/gg"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertBounds(t *testing.T, name string, got, want Bounds) {
	t.Helper()
	if math.Abs(got.X1-want.X1) > epsilon || math.Abs(got.Y1-want.Y1) > epsilon ||
		math.Abs(got.X2-want.X2) > epsilon || math.Abs(got.Y2-want.Y2) > epsilon {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

func assertItems(t *testing.T, name string, got []Item, want ...Item) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("%s = %v, want %v", name, itemNames(got), itemNames(want))
	}
}

func itemNames(items []Item) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.AsSimple().Name
	}
	return names
}

// --- recordingContext ---

// recordingContext is a DrawContext double. It tracks the transform stack
// so coordinate conversions behave like a real context, and records every
// call other than Save and Restore in ops.
type recordingContext struct {
	matrix   gg.Matrix
	stack    []gg.Matrix
	path     *gg.Path
	rule     gg.FillRule
	saves    int
	restores int
	maxDepth int
	ops      []string
}

var _ DrawContext = (*recordingContext)(nil)

func newRecordingContext() *recordingContext {
	return &recordingContext{matrix: gg.Identity(), path: gg.NewPath()}
}

func (r *recordingContext) depth() int { return len(r.stack) }

func (r *recordingContext) Save() {
	r.saves++
	r.stack = append(r.stack, r.matrix)
	r.maxDepth = max(r.maxDepth, len(r.stack))
}

func (r *recordingContext) Restore() {
	if len(r.stack) == 0 {
		panic("recordingContext: Restore without Save")
	}
	r.restores++
	r.matrix = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *recordingContext) Transform(m gg.Matrix) {
	r.ops = append(r.ops, "transform")
	r.matrix = r.matrix.Multiply(m)
}

func (r *recordingContext) Translate(dx, dy float64) {
	r.ops = append(r.ops, fmt.Sprintf("translate %g %g", dx, dy))
	r.matrix = r.matrix.Multiply(gg.Translate(dx, dy))
}

func (r *recordingContext) DeviceToUser(x, y float64) (float64, float64) {
	return deviceToUser(r.matrix, x, y)
}

func (r *recordingContext) UserToDevice(x, y float64) (float64, float64) {
	p := r.matrix.TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}

func (r *recordingContext) BuildPath(p *gg.Path) {
	r.ops = append(r.ops, "path")
	r.path = closeSubpaths(p).Transform(r.matrix)
}

func (r *recordingContext) SetFillRule(rule gg.FillRule) {
	r.ops = append(r.ops, "fill-rule")
	r.rule = rule
}

func (r *recordingContext) PointInFill(x, y float64) bool {
	r.ops = append(r.ops, "in-fill")
	dx, dy := r.UserToDevice(x, y)
	return windingInside(r.path.Winding(gg.Pt(dx, dy)), r.rule)
}

func (r *recordingContext) Clip() { r.ops = append(r.ops, "clip") }

func (r *recordingContext) ClipRect(x, y, w, h float64) {
	r.ops = append(r.ops, fmt.Sprintf("clip-rect %g %g %g %g", x, y, w, h))
}

func (r *recordingContext) SetColor(color.Color) { r.ops = append(r.ops, "color") }

func (r *recordingContext) SetLineWidth(float64) { r.ops = append(r.ops, "line-width") }

func (r *recordingContext) Fill() error {
	r.ops = append(r.ops, "fill")
	return nil
}

func (r *recordingContext) Stroke() error {
	r.ops = append(r.ops, "stroke")
	return nil
}

// --- probe ---

// probe is a leaf item covering a fixed local rectangle. It counts calls
// to its traversals and answers hit tests with the closed rectangle.
type probe struct {
	Simple

	rect       gg.Rect
	calls      int // Update calls
	recomputes int // Update calls that recomputed the bounds
	paints     int
}

func newProbe(parent Item, name string, x1, y1, x2, y2 float64, opts ...Option) *probe {
	p := &probe{rect: gg.Rect{Min: gg.Pt(x1, y1), Max: gg.Pt(x2, y2)}}
	p.Simple.init(p, buildConfig(append([]Option{WithName(name)}, opts...)))
	if parent != nil {
		parent.AsSimple().AddChild(p, -1)
	}
	return p
}

func (p *probe) setRect(x1, y1, x2, y2 float64) {
	p.rect = gg.Rect{Min: gg.Pt(x1, y1), Max: gg.Pt(x2, y2)}
	p.Changed(false)
}

func (p *probe) Update(entireTree bool, ctx DrawContext) Bounds {
	p.calls++
	if !entireTree && !p.needUpdate {
		return p.bounds
	}
	p.recomputes++
	p.needUpdate = false
	p.needEntireSubtreeUpdate = false

	ctx.Save()
	defer ctx.Restore()
	applyFrame(ctx, p.transform, 0, 0)
	p.bounds = deviceBounds(ctx, p.rect)
	return p.bounds
}

func (p *probe) Paint(ctx DrawContext, exposed Bounds, scale float64) {
	if !p.bounds.Intersects(exposed) || !p.VisibleAt(scale) {
		return
	}
	p.paints++
	ctx.Save()
	defer ctx.Restore()
	applyFrame(ctx, p.transform, 0, 0)
	ctx.SetColor(color.Black)
	_ = ctx.Fill()
}

func (p *probe) HitTest(x, y float64, ctx DrawContext, q HitQuery, found []Item) []Item {
	if p.needUpdate {
		p.Update(false, ctx)
	}
	if !p.bounds.Contains(x, y) {
		return found
	}
	visible := q.ParentVisible && p.VisibleAt(q.Scale)
	if q.Pointer && !p.pointerEvents.accepts(visible) {
		return found
	}
	ctx.Save()
	defer ctx.Restore()
	applyFrame(ctx, p.transform, 0, 0)
	ux, uy := ctx.DeviceToUser(x, y)
	if !p.rect.Contains(gg.Pt(ux, uy)) {
		return found
	}
	return slices.Insert(found, 0, Item(p))
}

// updateRoot runs a top-level update with a fresh identity context.
func updateRoot(it Item) Bounds {
	return it.Update(false, newRecordingContext())
}

// hitAll runs a non-pointer query at scale 1.
func hitAll(it Item, x, y float64) []Item {
	return it.HitTest(x, y, newRecordingContext(), HitQuery{ParentVisible: true, Scale: 1}, nil)
}

// hitPointer runs a pointer query at the given scale.
func hitPointer(it Item, x, y, scale float64) []Item {
	return it.HitTest(x, y, newRecordingContext(), HitQuery{Pointer: true, ParentVisible: true, Scale: scale}, nil)
}
