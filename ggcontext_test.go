package canvas

import (
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func newTestGG(t *testing.T) *GGContext {
	t.Helper()
	c := NewGGContext(40, 40)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGGContextSaveRestore(t *testing.T) {
	c := newTestGG(t)
	c.Save()
	c.Translate(10, 0)
	c.Save()
	c.Transform(gg.Scale(2, 2))
	if c.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", c.Depth())
	}

	x, y := c.UserToDevice(1, 1)
	assertNear(t, "x", x, 12)
	assertNear(t, "y", y, 2)

	c.Restore()
	x, _ = c.UserToDevice(1, 1)
	assertNear(t, "x after restore", x, 11)
	c.Restore()
	x, _ = c.UserToDevice(1, 1)
	assertNear(t, "x after second restore", x, 1)

	expectPanic(t, "underflow", c.Restore)
}

func TestGGContextDeviceToUser(t *testing.T) {
	c := newTestGG(t)
	c.Transform(gg.Scale(2, 4))
	c.Translate(5, 5)

	x, y := c.DeviceToUser(30, 40)
	assertNear(t, "x", x, 10)
	assertNear(t, "y", y, 5)

	dx, dy := c.UserToDevice(x, y)
	assertNear(t, "round trip x", dx, 30)
	assertNear(t, "round trip y", dy, 40)
}

func TestGGContextDeviceToUserSingular(t *testing.T) {
	c := newTestGG(t)
	c.Transform(gg.Scale(0, 1))

	x, y := c.DeviceToUser(0, 5)
	if !math.IsNaN(x) || !math.IsNaN(y) {
		t.Errorf("DeviceToUser = (%v, %v), want NaN", x, y)
	}
	c.BuildPath(rectPath(-10, -10, 20, 20))
	if c.PointInFill(x, y) {
		t.Error("NaN point inside fill")
	}
}

func TestGGContextClipRectRotated(t *testing.T) {
	c := newTestGG(t)
	c.Reset(color.White, gg.Identity())
	c.Save()
	c.Transform(gg.Translate(20, 20).Multiply(gg.Rotate(math.Pi / 4)))
	c.ClipRect(0, 0, 10, 10)
	c.BuildPath(rectPath(-40, -40, 80, 80))
	c.SetColor(color.RGBA{R: 255, A: 255})
	if err := c.Fill(); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	c.Restore()

	img := c.Image()
	if r, g, _, _ := img.At(20, 27).RGBA(); r>>8 != 255 || g>>8 != 0 {
		t.Errorf("pixel inside rotated clip = %v, want red", img.At(20, 27))
	}
	// Inside the axis-aligned box around the clip but outside the clip.
	if _, g, _, _ := img.At(26, 21).RGBA(); g>>8 != 255 {
		t.Errorf("pixel outside rotated clip = %v, want white", img.At(26, 21))
	}
}

func TestGGContextPointInFill(t *testing.T) {
	c := newTestGG(t)
	ring := rectPath(0, 0, 20, 20)
	ring.Rectangle(5, 5, 10, 10)

	c.BuildPath(ring)
	c.SetFillRule(gg.FillRuleNonZero)
	if !c.PointInFill(10, 10) || !c.PointInFill(2, 2) {
		t.Error("non-zero: inner square should be filled")
	}
	if c.PointInFill(25, 10) {
		t.Error("non-zero: point outside filled")
	}

	c.SetFillRule(gg.FillRuleEvenOdd)
	if c.PointInFill(10, 10) {
		t.Error("even-odd: hole filled")
	}
	if !c.PointInFill(2, 2) {
		t.Error("even-odd: ring not filled")
	}
}

func TestGGContextPointInFillUserSpace(t *testing.T) {
	c := newTestGG(t)
	c.Translate(100, 100)
	c.BuildPath(rectPath(0, 0, 10, 10))
	c.SetFillRule(gg.FillRuleNonZero)

	// Both the path and the point are in the translated frame.
	if !c.PointInFill(5, 5) {
		t.Error("user-space point inside not matched")
	}
	if c.PointInFill(105, 105) {
		t.Error("device-space coordinates treated as user space")
	}
}

func TestGGContextPointInFillOpenPath(t *testing.T) {
	c := newTestGG(t)
	tri := gg.NewPath()
	tri.MoveTo(0, 0)
	tri.LineTo(20, 0)
	tri.LineTo(0, 20)

	c.BuildPath(tri)
	c.SetFillRule(gg.FillRuleNonZero)
	if !c.PointInFill(4, 4) {
		t.Error("open subpath not closed for the fill test")
	}
	if c.PointInFill(15, 15) {
		t.Error("point past the hypotenuse filled")
	}
}

func TestGGContextFillClearsPath(t *testing.T) {
	c := newTestGG(t)
	c.BuildPath(rectPath(0, 0, 10, 10))
	c.SetColor(color.Black)
	if err := c.Fill(); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if c.PointInFill(5, 5) {
		t.Error("path survived Fill")
	}
}

func TestGGContextReset(t *testing.T) {
	c := newTestGG(t)
	c.Save()
	c.Save()
	c.Translate(7, 7)

	c.Reset(color.White, gg.Scale(2, 2))
	if c.Depth() != 0 {
		t.Errorf("Depth after Reset = %d", c.Depth())
	}
	x, y := c.UserToDevice(1, 1)
	assertNear(t, "x", x, 2)
	assertNear(t, "y", y, 2)

	r, g, b, a := c.Image().At(3, 3).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 || a>>8 != 255 {
		t.Errorf("pixel after Reset = %d,%d,%d,%d, want white", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestGGContextFillPixels(t *testing.T) {
	c := newTestGG(t)
	c.Reset(color.White, gg.Identity())
	c.BuildPath(rectPath(10, 10, 20, 20))
	c.SetColor(color.RGBA{R: 255, A: 255})
	if err := c.Fill(); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	img := c.Image()
	if r, g, _, _ := img.At(20, 20).RGBA(); r>>8 != 255 || g>>8 != 0 {
		t.Errorf("inside pixel = %v, want red", img.At(20, 20))
	}
	if _, g, _, _ := img.At(2, 2).RGBA(); g>>8 != 255 {
		t.Errorf("outside pixel = %v, want white", img.At(2, 2))
	}
}

func TestWindingInside(t *testing.T) {
	tests := []struct {
		winding int
		rule    gg.FillRule
		want    bool
	}{
		{0, gg.FillRuleNonZero, false},
		{1, gg.FillRuleNonZero, true},
		{-2, gg.FillRuleNonZero, true},
		{0, gg.FillRuleEvenOdd, false},
		{1, gg.FillRuleEvenOdd, true},
		{2, gg.FillRuleEvenOdd, false},
		{-1, gg.FillRuleEvenOdd, true},
	}
	for _, tt := range tests {
		if got := windingInside(tt.winding, tt.rule); got != tt.want {
			t.Errorf("windingInside(%d, %v) = %v, want %v", tt.winding, tt.rule, got, tt.want)
		}
	}
}
