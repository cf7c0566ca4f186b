package canvas

import (
	"image/color"
	"testing"
)

// setupBenchCanvas creates a canvas with n rectangles in groups of 100.
func setupBenchCanvas(n int) (*Canvas, []*Shape) {
	c := NewCanvas(CanvasConfig{Width: 1280, Height: 720})
	shapes := make([]*Shape, 0, n)
	var g *Group
	for i := 0; i < n; i++ {
		if i%100 == 0 {
			g = NewGroup(c.Root(), WithPosition(float64(i/100%32)*40, float64(i/3200)*40))
		}
		shapes = append(shapes, NewRect(g, float64(i%10)*4, float64(i%100/10)*4, 3, 3,
			WithFill(color.RGBA{R: 200, A: 255})))
	}
	c.Update()
	return c, shapes
}

// --- Update Benchmarks ---

func BenchmarkUpdate_10000Items_Clean(b *testing.B) {
	c, _ := setupBenchCanvas(10000)
	defer c.Close()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Update()
	}
}

func BenchmarkUpdate_10000Items_OneDirty(b *testing.B) {
	c, shapes := setupBenchCanvas(10000)
	defer c.Close()
	leaf := shapes[len(shapes)/2]

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		leaf.SetLineWidth(float64(i%3 + 1))
		c.Update()
	}
}

func BenchmarkUpdate_10000Items_Rescale(b *testing.B) {
	c, _ := setupBenchCanvas(10000)
	defer c.Close()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.SetScale(1 + float64(i%2))
		c.Update()
	}
}

// --- Query Benchmarks ---

func BenchmarkItemsAt_10000Items(b *testing.B) {
	c, _ := setupBenchCanvas(10000)
	defer c.Close()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.ItemsAt(float64(i%1280), float64(i%720), true)
	}
}

// --- Render Benchmarks ---

func BenchmarkRender_10000Items(b *testing.B) {
	c, _ := setupBenchCanvas(10000)
	defer c.Close()
	c.Render() // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Render()
	}
}
