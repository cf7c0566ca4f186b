package canvas

import (
	"math"

	"github.com/gogpu/gg"
)

// Bounds is an axis-aligned rectangle given by its corners. Bounds are cached
// in device space: the union of an item's extent after every ancestor
// transform and translation has been applied.
//
// The zero value is empty. A Bounds is empty when X1 >= X2 or Y1 >= Y2.
type Bounds struct {
	X1, Y1, X2, Y2 float64
}

// BoundsFromRect converts a gg rectangle.
func BoundsFromRect(r gg.Rect) Bounds {
	return Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// Empty reports whether b encloses no area.
func (b Bounds) Empty() bool {
	return b.X1 >= b.X2 || b.Y1 >= b.Y2
}

// Width returns X2 - X1.
func (b Bounds) Width() float64 { return b.X2 - b.X1 }

// Height returns Y2 - Y1.
func (b Bounds) Height() float64 { return b.Y2 - b.Y1 }

// Union returns the smallest bounds enclosing b and other. An empty side is
// ignored so that it cannot drag the result toward the origin.
func (b Bounds) Union(other Bounds) Bounds {
	if other.Empty() {
		return b
	}
	if b.Empty() {
		return other
	}
	return Bounds{
		X1: math.Min(b.X1, other.X1),
		Y1: math.Min(b.Y1, other.Y1),
		X2: math.Max(b.X2, other.X2),
		Y2: math.Max(b.Y2, other.Y2),
	}
}

// Intersects reports whether b and other overlap.
// Bounds sharing only an edge are considered intersecting.
func (b Bounds) Intersects(other Bounds) bool {
	return b.X1 <= other.X2 && b.X2 >= other.X1 &&
		b.Y1 <= other.Y2 && b.Y2 >= other.Y1
}

// Contains reports whether the point (x, y) lies inside b.
// Points on the edge are considered inside.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.X1 && x <= b.X2 && y >= b.Y1 && y <= b.Y2
}

// Rect converts b to a gg rectangle.
func (b Bounds) Rect() gg.Rect {
	return gg.Rect{Min: gg.Pt(b.X1, b.Y1), Max: gg.Pt(b.X2, b.Y2)}
}

// deviceBounds maps the user-space rectangle r through the context's current
// transform and returns the axis-aligned box around the four corners.
func deviceBounds(ctx DrawContext, r gg.Rect) Bounds {
	xs := [4]float64{r.Min.X, r.Max.X, r.Max.X, r.Min.X}
	ys := [4]float64{r.Min.Y, r.Min.Y, r.Max.Y, r.Max.Y}

	var b Bounds
	for i := range xs {
		dx, dy := ctx.UserToDevice(xs[i], ys[i])
		if i == 0 {
			b = Bounds{dx, dy, dx, dy}
			continue
		}
		b.X1 = math.Min(b.X1, dx)
		b.Y1 = math.Min(b.Y1, dy)
		b.X2 = math.Max(b.X2, dx)
		b.Y2 = math.Max(b.Y2, dy)
	}
	return b
}
