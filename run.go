package canvas

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// frameBuffer holds the ebiten image the rendered canvas is uploaded to.
type frameBuffer struct {
	img *ebiten.Image
}

// upload copies the RGBA pixels of rgba into the buffer, reallocating it
// when the size changed.
func (f *frameBuffer) upload(rgba *image.RGBA) *ebiten.Image {
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if f.img != nil {
		if b := f.img.Bounds(); b.Dx() != w || b.Dy() != h {
			f.dispose()
		}
	}
	if f.img == nil {
		f.img = ebiten.NewImage(w, h)
	}
	f.img.WritePixels(rgba.Pix)
	return f.img
}

func (f *frameBuffer) dispose() {
	if f.img != nil {
		f.img.Deallocate()
		f.img = nil
	}
}

// Draw renders the canvas when it changed and draws it onto screen.
func (c *Canvas) Draw(screen *ebiten.Image) {
	if c.needRedraw || c.NeedsUpdate() || c.frame.img == nil {
		img := c.Render()
		rgba, ok := img.(*image.RGBA)
		if !ok {
			Logger().Warn("canvas: unexpected render image type", "type", fmt.Sprintf("%T", img))
			return
		}
		c.frame.upload(rgba)
	}
	screen.DrawImage(c.frame.img, nil)
}

// Hovered returns the item that was topmost under the cursor at the last
// pointer update, or nil.
func (c *Canvas) Hovered() Item {
	return c.hovered
}

// UpdatePointer runs a pointer query at the pixel (x, y) and records the
// topmost match as the hovered item.
func (c *Canvas) UpdatePointer(x, y float64) Item {
	c.hovered = c.ItemAt(x, y, true)
	return c.hovered
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Update, if set, is called once per tick before the pointer query.
	Update func(c *Canvas) error
}

// game adapts a Canvas to ebiten.Game.
type game struct {
	canvas *Canvas
	cfg    RunConfig
}

func (g *game) Update() error {
	if g.cfg.Update != nil {
		if err := g.cfg.Update(g.canvas); err != nil {
			return err
		}
	}
	x, y := ebiten.CursorPosition()
	g.canvas.UpdatePointer(float64(x), float64(y))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.canvas.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.canvas.Size()
}

// Run opens a window showing c and blocks until it is closed.
func Run(c *Canvas, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = c.Size()
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if err := ebiten.RunGame(&game{canvas: c, cfg: cfg}); err != nil {
		return fmt.Errorf("run canvas: %w", err)
	}
	return nil
}
