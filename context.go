package canvas

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// DrawContext is the drawing capability consumed by the item traversals.
//
// Save and Restore bracket a scoped state (transform and clip). Every Save
// made by an item is matched by exactly one Restore before the item returns,
// on every path; an unbalanced stack corrupts the frame of every sibling
// painted afterwards.
//
// BuildPath replaces the current path. PointInFill, Clip, Fill and Stroke
// operate on the most recently built path. Coordinates passed to BuildPath,
// ClipRect and PointInFill are in the current user frame.
type DrawContext interface {
	Save()
	Restore()

	// Transform composes m onto the current transform (current * m).
	Transform(m gg.Matrix)
	Translate(dx, dy float64)

	// DeviceToUser returns NaN coordinates when the current transform is
	// singular, so no containment test accepts the point.
	DeviceToUser(x, y float64) (float64, float64)
	UserToDevice(x, y float64) (float64, float64)

	BuildPath(p *gg.Path)
	SetFillRule(rule gg.FillRule)
	PointInFill(x, y float64) bool

	// Clip intersects the clip region with the current path.
	Clip()
	// ClipRect intersects the clip region with a user-space rectangle.
	ClipRect(x, y, w, h float64)

	SetColor(c color.Color)
	SetLineWidth(w float64)
	Fill() error
	Stroke() error
}

// applyFrame pushes an item's local transform followed by its translation
// onto ctx. An absent transform is the identity.
func applyFrame(ctx DrawContext, m *gg.Matrix, dx, dy float64) {
	if m != nil {
		ctx.Transform(*m)
	}
	if dx != 0 || dy != 0 {
		ctx.Translate(dx, dy)
	}
}

// singularDet is the determinant below which gg treats a matrix as not
// invertible.
const singularDet = 1e-10

// deviceToUser maps a device point through the inverse of m. A singular m
// collapses the user frame, and the result is NaN.
func deviceToUser(m gg.Matrix, x, y float64) (float64, float64) {
	if math.Abs(m.A*m.E-m.B*m.D) < singularDet {
		return math.NaN(), math.NaN()
	}
	p := m.Invert().TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}
