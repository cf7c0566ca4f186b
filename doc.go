// Package canvas is a retained-mode 2D scene graph drawn with [gg].
//
// A canvas holds a tree of items. Every item caches its bounding box in
// device pixels and carries two dirty flags, so that after a change only the
// affected path from the item to the root is revalidated. Painting and hit
// testing both rely on those cached bounds to skip whole subtrees.
//
// # Quick start
//
// The simplest way to get a window is [Run], which drives the canvas from an
// [ebiten] game loop:
//
//	c := canvas.NewCanvas(canvas.CanvasConfig{Width: 640, Height: 480})
//	g := canvas.NewGroup(c.Root(), canvas.WithPosition(40, 40))
//	canvas.NewRect(g, 0, 0, 100, 60, canvas.WithFill(color.RGBA{R: 200, A: 255}))
//	canvas.Run(c, canvas.RunConfig{Title: "canvas"})
//
// Headless programs call [Canvas.Render] or [Canvas.WritePNG] instead.
//
// # Items
//
// Every node implements [Item]: Update recomputes cached bounds, Paint draws
// through a [DrawContext], and HitTest collects the items under a point,
// topmost first. The shared state lives in [Simple], which concrete items
// embed.
//
// A [Group] applies its transform, then translates its children by (X, Y),
// and clips them to (0, 0, Width, Height) when both sizes are positive. A
// [Shape] fills and strokes a gg path.
//
// Setters call [Simple.Changed]. Changes that move every descendant (a
// transform, a group's position or size, the canvas scale) force the whole
// subtree to be revalidated on the next update; other changes revalidate
// only the changed item and its ancestors.
//
// # Visibility and pointer events
//
// An item is visible, invisible, hidden, or visible only at or above a
// scale threshold. Invisible items still have bounds. Pointer queries
// ([Canvas.ItemsAt] with pointer set) honour each item's [PointerEvents]
// policy and the visibility inherited from its ancestors; other queries
// ignore both.
//
// # Tweens
//
// [TweenPosition], [TweenRotation] and [TweenFillColor] return a [TweenGroup]
// backed by [gween]. Call its Update with the frame time; each step goes
// through the item's setters like any other change.
//
// # Debug mode
//
// [Canvas.SetDebugMode] enables extra checks: use of disposed items panics,
// deep trees and large child lists are reported, and a traversal that leaves
// the context with unmatched saves panics. Frame timings are logged at debug
// level through the logger installed with [SetLogger].
//
// [gg]: https://github.com/gogpu/gg
// [ebiten]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package canvas
