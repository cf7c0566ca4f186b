package canvas

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timing metrics.
// Only populated when the canvas is in debug mode.
type debugStats struct {
	updateTime time.Duration
	paintTime  time.Duration
	itemCount  int
	updated    bool
}

// debugLog reports one frame's stats.
func (c *Canvas) debugLog(stats debugStats) {
	if !c.debug {
		return
	}
	Logger().Debug("canvas: frame",
		"update", stats.updateTime,
		"paint", stats.paintTime,
		"total", stats.updateTime+stats.paintTime,
		"items", stats.itemCount,
		"updated", stats.updated,
	)
}

// debugMode mirrors the most recent SetDebugMode call so that tree
// operations (which lack a Canvas pointer) can check it cheaply. NewCanvas
// only writes it when enabling, so creating a canvas never switches it off.
var debugMode bool

// debugCheckDisposed panics when a disposed item is used in a tree operation.
func debugCheckDisposed(s *Simple, op string) {
	if s.disposed {
		panic(fmt.Sprintf("canvas debug: %s on disposed item %q", op, s.Name))
	}
}

// debugMaxTreeDepth is the depth above which a warning is logged.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(s *Simple) {
	depth := 0
	for p := s; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("canvas: tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "item", s.Name)
	}
}

// debugMaxChildCount is the child count above which a warning is logged.
const debugMaxChildCount = 1000

func debugCheckChildCount(s *Simple) {
	if len(s.children) > debugMaxChildCount {
		Logger().Warn("canvas: child count exceeds threshold",
			"item", s.Name, "children", len(s.children), "threshold", debugMaxChildCount)
	}
}

// countItems returns the number of items in the subtree rooted at it.
func countItems(it Item) int {
	if it == nil {
		return 0
	}
	n := 1
	for _, child := range it.AsSimple().children {
		n += countItems(child)
	}
	return n
}

// debugCheckBalanced panics if a traversal left saved context state behind.
func debugCheckBalanced(ctx *GGContext, op string) {
	if d := ctx.Depth(); d != 0 {
		panic(fmt.Sprintf("canvas debug: %s left %d unmatched Save calls", op, d))
	}
}
