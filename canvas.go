package canvas

import "image/color"

// Visibility controls whether an item is painted and whether it counts as
// visible for pointer queries. Bounds are tracked whatever the visibility.
type Visibility uint8

const (
	VisibilityVisible        Visibility = iota // always visible (default)
	VisibilityAboveThreshold                   // visible when the scale is >= the item's threshold
	VisibilityInvisible                        // not painted, still laid out
	VisibilityHidden                           // not painted
)

// String returns the property-bridge name of v.
func (v Visibility) String() string {
	switch v {
	case VisibilityVisible:
		return "visible"
	case VisibilityAboveThreshold:
		return "visible-above-threshold"
	case VisibilityInvisible:
		return "invisible"
	case VisibilityHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// visibleAt reports whether an item with visibility v and the given
// threshold is visible at scale.
func visibleAt(v Visibility, threshold, scale float64) bool {
	switch v {
	case VisibilityInvisible, VisibilityHidden:
		return false
	case VisibilityAboveThreshold:
		return scale >= threshold
	default:
		return true
	}
}

// PointerEvents is a bitmask selecting when an item takes part in pointer
// queries. Non-pointer queries ignore it.
//
// Shapes hit-test their fill region only. PointerEventsStrokeMask is kept
// for completeness but never matches on its own, so a shape with a stroke
// and no fill color is not found by a PointerEventsVisiblePainted query,
// not even on the stroke itself. Give such shapes PointerEventsVisibleFill
// to make them pickable.
type PointerEvents uint8

const (
	PointerEventsVisibleMask PointerEvents = 1 << iota // only while visible
	PointerEventsPaintedMask                           // only where painted (fill or stroke color set)
	PointerEventsFillMask                              // the fill region
	PointerEventsStrokeMask                            // the stroke region; never hit-tested, see PointerEvents

	PointerEventsNone           PointerEvents = 0
	PointerEventsVisiblePainted               = PointerEventsVisibleMask | PointerEventsPaintedMask | PointerEventsFillMask | PointerEventsStrokeMask
	PointerEventsVisibleFill                  = PointerEventsVisibleMask | PointerEventsFillMask
	PointerEventsVisibleStroke                = PointerEventsVisibleMask | PointerEventsStrokeMask
	PointerEventsVisible                      = PointerEventsVisibleMask | PointerEventsFillMask | PointerEventsStrokeMask
	PointerEventsPainted                      = PointerEventsPaintedMask | PointerEventsFillMask | PointerEventsStrokeMask
	PointerEventsFill                         = PointerEventsFillMask
	PointerEventsStroke                       = PointerEventsStrokeMask
	PointerEventsAll                          = PointerEventsFillMask | PointerEventsStrokeMask
)

// accepts reports whether an item with policy p can match a pointer query
// given its computed visibility.
func (p PointerEvents) accepts(visible bool) bool {
	if p == PointerEventsNone {
		return false
	}
	if p&PointerEventsVisibleMask != 0 && !visible {
		return false
	}
	return true
}

// HitQuery carries the per-call parameters of a hit test. Scale replaces a
// global canvas lookup so that visibility thresholds can be evaluated
// without access to the canvas.
type HitQuery struct {
	// Pointer marks a pointer-driven query. Pointer queries honour each
	// item's PointerEvents policy; other queries match any item under the
	// point.
	Pointer bool
	// ParentVisible is the computed visibility inherited from ancestors.
	ParentVisible bool
	// Scale is the current display scale.
	Scale float64
}

// DefaultBackground is the color a Canvas clears to before painting.
var DefaultBackground color.Color = color.White
