package canvas

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values of one item together. Create one via
// TweenPosition, TweenRotation or TweenFillColor and call Update(dt) each
// frame. Values are written through the item's setters, so the usual dirty
// propagation applies. If the target item is disposed, the group stops
// immediately.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	values [4]float64
	apply  func(v *[4]float64)
	target *Simple
	Done   bool
}

// Update advances all tweens by dt seconds and applies the new values to the
// target. A disposed target sets Done without writing anything.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(&g.values)
}

func newTweenGroup(target *Simple, from, to []float64, duration float32, fn ease.TweenFunc, apply func(v *[4]float64)) *TweenGroup {
	g := &TweenGroup{count: len(from), target: target, apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
		g.values[i] = from[i]
	}
	return g
}

// TweenPosition moves a group's translation to (toX, toY).
func TweenPosition(grp *Group, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(&grp.Simple,
		[]float64{grp.X(), grp.Y()}, []float64{toX, toY}, duration, fn,
		func(v *[4]float64) { grp.SetPosition(v[0], v[1]) })
}

// TweenRotation turns an item from one angle to another, in radians. Each
// step replaces the item's transform with a pure rotation.
func TweenRotation(it Item, from, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	s := it.AsSimple()
	return newTweenGroup(s, []float64{from}, []float64{to}, duration, fn,
		func(v *[4]float64) { s.SetTransform(gg.Rotate(v[0])) })
}

// TweenFillColor fades a shape's fill color to the target. A shape without
// a fill starts from transparent.
func TweenFillColor(sh *Shape, to color.Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := rgbaComponents(sh.FillColor())
	target := rgbaComponents(to)
	return newTweenGroup(&sh.Simple, from[:], target[:], duration, fn,
		func(v *[4]float64) {
			sh.SetFillColor(color.RGBA{R: channel(v[0]), G: channel(v[1]), B: channel(v[2]), A: channel(v[3])})
		})
}

// rgbaComponents returns the 8-bit premultiplied components of c. Nil is
// transparent.
func rgbaComponents(c color.Color) [4]float64 {
	if c == nil {
		return [4]float64{}
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return [4]float64{float64(rgba.R), float64(rgba.G), float64(rgba.B), float64(rgba.A)}
}

// channel rounds v into a color channel. Overshooting easings are clamped.
func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
