package canvas

import (
	"github.com/gogpu/gg"
)

// Item is a node of the canvas tree. Groups and leaves implement the same
// three traversals; a group only ever sees its children through this
// interface.
type Item interface {
	// Update revalidates the cached bounds if the item is dirty or
	// entireTree is set and returns them. ctx holds the parent's frame.
	Update(entireTree bool, ctx DrawContext) Bounds

	// Paint draws the item if its bounds intersect exposed and it is
	// visible at scale. It never changes cached state.
	Paint(ctx DrawContext, exposed Bounds, scale float64)

	// HitTest prepends the items under the device point (x, y) to found
	// and returns the result; the topmost match ends up first.
	HitTest(x, y float64, ctx DrawContext, q HitQuery, found []Item) []Item

	// AsSimple returns the attribute block shared by every item.
	AsSimple() *Simple
}

// --- ID counter ---

// itemIDCounter is a plain counter (no atomic, the tree is single-threaded).
var itemIDCounter uint32

func nextItemID() uint32 {
	itemIDCounter++
	return itemIDCounter
}

// Simple holds the state every item carries: cached bounds, dirty flags,
// visibility, pointer-event policy, local transform, clip path and the
// ordered child list. Concrete items embed it.
//
// Simple is mutated only through its setters, which mark the item changed.
type Simple struct {
	// Identity
	ID       uint32
	Name     string
	UserData any

	// Hierarchy. parent is a relation only; children are owned.
	self     Item
	parent   *Simple
	children []Item
	canvas   *Canvas // set on the root item only

	// Cached state
	bounds                  Bounds
	needUpdate              bool
	needEntireSubtreeUpdate bool

	// Attributes
	visibility          Visibility
	visibilityThreshold float64
	pointerEvents       PointerEvents
	transform           *gg.Matrix
	clipPath            *gg.Path
	clipFillRule        gg.FillRule

	disposed bool
}

// init sets the defaults shared by all constructors. New items start dirty.
func (s *Simple) init(self Item, cfg Config) {
	s.ID = nextItemID()
	s.Name = cfg.Name
	s.self = self
	s.visibility = cfg.Visibility
	s.visibilityThreshold = cfg.VisibilityThreshold
	s.pointerEvents = cfg.PointerEvents
	if cfg.Transform != nil {
		m := *cfg.Transform
		s.transform = &m
	}
	s.clipPath = cfg.ClipPath
	s.clipFillRule = cfg.ClipFillRule
	s.needUpdate = true
	s.needEntireSubtreeUpdate = true
}

// AsSimple returns s.
func (s *Simple) AsSimple() *Simple { return s }

// Item returns the item that owns this attribute block.
func (s *Simple) Item() Item { return s.self }

// Bounds returns the cached device-space bounds. They are only valid while
// NeedsUpdate reports false.
func (s *Simple) Bounds() Bounds { return s.bounds }

// NeedsUpdate reports whether the cached bounds are stale.
func (s *Simple) NeedsUpdate() bool { return s.needUpdate }

// --- Attributes ---

// Visibility returns the visibility mode.
func (s *Simple) Visibility() Visibility { return s.visibility }

// SetVisibility sets the visibility mode.
func (s *Simple) SetVisibility(v Visibility) {
	s.visibility = v
	s.Changed(false)
}

// VisibilityThreshold returns the scale at and above which an item with
// VisibilityAboveThreshold is visible.
func (s *Simple) VisibilityThreshold() float64 { return s.visibilityThreshold }

// SetVisibilityThreshold sets the visibility threshold.
func (s *Simple) SetVisibilityThreshold(t float64) {
	s.visibilityThreshold = t
	s.Changed(false)
}

// VisibleAt reports whether the item's own visibility test passes at scale.
func (s *Simple) VisibleAt(scale float64) bool {
	return visibleAt(s.visibility, s.visibilityThreshold, scale)
}

// PointerEvents returns the pointer-event policy.
func (s *Simple) PointerEvents() PointerEvents { return s.pointerEvents }

// SetPointerEvents sets the pointer-event policy.
func (s *Simple) SetPointerEvents(p PointerEvents) {
	s.pointerEvents = p
	s.Changed(false)
}

// Transform returns the local-to-parent transform and whether one is set.
func (s *Simple) Transform() (gg.Matrix, bool) {
	if s.transform == nil {
		return gg.Identity(), false
	}
	return *s.transform, true
}

// SetTransform sets the local-to-parent transform.
func (s *Simple) SetTransform(m gg.Matrix) {
	s.transform = &m
	s.Changed(true)
}

// ClearTransform removes the local transform.
func (s *Simple) ClearTransform() {
	s.transform = nil
	s.Changed(true)
}

// ClipPath returns the clip path (nil when unclipped) and its fill rule.
func (s *Simple) ClipPath() (*gg.Path, gg.FillRule) {
	return s.clipPath, s.clipFillRule
}

// SetClipPath sets the clip path in the item's local frame. A nil path
// removes the clip.
func (s *Simple) SetClipPath(p *gg.Path, rule gg.FillRule) {
	s.clipPath = p
	s.clipFillRule = rule
	s.Changed(true)
}

// --- Dirty propagation ---

// Changed marks the item dirty and asks every ancestor for an update.
// recomputeBounds marks the whole subtree for revalidation, for changes
// that move every descendant's frame.
func (s *Simple) Changed(recomputeBounds bool) {
	if recomputeBounds {
		s.needEntireSubtreeUpdate = true
	}
	s.needUpdate = true
	if s.parent != nil {
		s.parent.requestUpdate()
	} else if s.canvas != nil {
		s.canvas.requestUpdate()
	}
}

// requestUpdate marks s and its ancestors dirty. A dirty item always has
// dirty ancestors, so the walk stops at the first one already marked.
func (s *Simple) requestUpdate() {
	for p := s; p != nil; p = p.parent {
		if p.needUpdate {
			return
		}
		p.needUpdate = true
		if p.parent == nil && p.canvas != nil {
			p.canvas.requestUpdate()
		}
	}
}

// requestRedraw asks the owning canvas, if any, to repaint.
func (s *Simple) requestRedraw() {
	if c := s.Canvas(); c != nil {
		c.requestRedraw()
	}
}

// Canvas returns the canvas the item's tree is attached to, or nil.
func (s *Simple) Canvas() *Canvas {
	return s.root().canvas
}

func (s *Simple) root() *Simple {
	p := s
	for p.parent != nil {
		p = p.parent
	}
	return p
}

// markSubtreeDirty forces a full revalidation of s and everything below it.
func markSubtreeDirty(s *Simple) {
	s.needUpdate = true
	s.needEntireSubtreeUpdate = true
}

// --- Tree manipulation ---

// Parent returns the parent item, or nil for a root or detached item.
func (s *Simple) Parent() Item {
	if s.parent == nil {
		return nil
	}
	return s.parent.self
}

// AddChild inserts child at position; a negative position appends.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil, position is out of range, or child is an
// ancestor of this item (cycle).
func (s *Simple) AddChild(child Item, position int) {
	if child == nil {
		panic("canvas: cannot add nil child")
	}
	cs := child.AsSimple()
	if debugMode {
		debugCheckDisposed(s, "AddChild (parent)")
		debugCheckDisposed(cs, "AddChild (child)")
	}
	if isAncestor(cs, s) {
		panic("canvas: adding child would create a cycle")
	}
	if cs.parent != nil {
		cs.parent.removeChildByPtr(cs)
		cs.parent.requestUpdate()
	}
	if position < 0 {
		position = len(s.children)
	}
	if position > len(s.children) {
		panic("canvas: child index out of range")
	}
	s.children = append(s.children, nil)
	copy(s.children[position+1:], s.children[position:])
	s.children[position] = child
	cs.parent = s
	cs.canvas = nil
	markSubtreeDirty(cs)
	s.requestUpdate()
	if debugMode {
		debugCheckTreeDepth(cs)
		debugCheckChildCount(s)
	}
}

// RemoveChild detaches and returns the child at index.
// The child is not disposed.
func (s *Simple) RemoveChild(index int) Item {
	if debugMode {
		debugCheckDisposed(s, "RemoveChild")
	}
	if index < 0 || index >= len(s.children) {
		panic("canvas: child index out of range")
	}
	child := s.children[index]
	copy(s.children[index:], s.children[index+1:])
	s.children[len(s.children)-1] = nil
	s.children = s.children[:len(s.children)-1]
	cs := child.AsSimple()
	cs.parent = nil
	markSubtreeDirty(cs)
	s.requestUpdate()
	return child
}

// MoveChild moves the child at oldPosition to newPosition, shifting the
// children in between. Only the stacking order changes.
func (s *Simple) MoveChild(oldPosition, newPosition int) {
	n := len(s.children)
	if oldPosition < 0 || oldPosition >= n || newPosition < 0 || newPosition >= n {
		panic("canvas: child index out of range")
	}
	if oldPosition == newPosition {
		return
	}
	child := s.children[oldPosition]
	if oldPosition < newPosition {
		copy(s.children[oldPosition:], s.children[oldPosition+1:newPosition+1])
	} else {
		copy(s.children[newPosition+1:], s.children[newPosition:oldPosition])
	}
	s.children[newPosition] = child
	s.requestRedraw()
}

// FindChild returns the index of child, or -1.
func (s *Simple) FindChild(child Item) int {
	for i, c := range s.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Children returns the child list in stacking order, bottom first.
// The returned slice MUST NOT be mutated by the caller.
func (s *Simple) Children() []Item { return s.children }

// NumChildren returns the number of children.
func (s *Simple) NumChildren() int { return len(s.children) }

// ChildAt returns the child at index.
func (s *Simple) ChildAt(index int) Item { return s.children[index] }

// Remove detaches the item from its parent. No-op for a detached item.
func (s *Simple) Remove() {
	if s.parent == nil {
		return
	}
	if i := s.parent.FindChild(s.self); i >= 0 {
		s.parent.RemoveChild(i)
	}
}

// --- Disposal ---

// Dispose detaches the item and recursively releases its children.
func (s *Simple) Dispose() {
	if s.disposed {
		return
	}
	s.Remove()
	if s.canvas != nil && s.canvas.root == s.self {
		s.canvas.root = nil
	}
	s.dispose()
}

func (s *Simple) dispose() {
	s.disposed = true
	s.ID = 0
	for _, child := range s.children {
		cs := child.AsSimple()
		cs.parent = nil
		cs.dispose()
	}
	s.children = nil
	s.parent = nil
	s.canvas = nil
	s.clipPath = nil
	s.transform = nil
	s.UserData = nil
}

// IsDisposed reports whether the item has been disposed.
func (s *Simple) IsDisposed() bool { return s.disposed }

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Simple) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from s.children without clearing its
// parent. Uses copy+nil to avoid retaining a dangling reference.
func (s *Simple) removeChildByPtr(child *Simple) {
	for i, c := range s.children {
		if c.AsSimple() == child {
			copy(s.children[i:], s.children[i+1:])
			s.children[len(s.children)-1] = nil
			s.children = s.children[:len(s.children)-1]
			return
		}
	}
}
