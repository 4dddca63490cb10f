package kala

import (
	"fmt"
	"time"
)

// frameStats holds per-window render metrics. Only collected in debug mode.
type frameStats struct {
	windowID uint32
	widgets  int
	failed   int
	render   time.Duration
}

// debugLog reports frame stats at debug level.
func (e *Engine) debugLog(stats frameStats) {
	if !e.debug {
		return
	}
	logger.Debug("frame",
		"component", "render",
		"window", stats.windowID,
		"widgets", stats.widgets,
		"failed", stats.failed,
		"render", stats.render)
}

// debugCheckTreeDepth warns if the widget hierarchy is deeper than the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(w *Widget) {
	depth := 0
	visited := make(map[uint32]struct{})
	for p := w; p != nil; p = p.Parent() {
		if _, seen := visited[p.id]; seen {
			break
		}
		visited[p.id] = struct{}{}
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn(fmt.Sprintf("tree depth %d exceeds %d", depth, debugMaxTreeDepth),
			"component", "hierarchy", "widget", w.name)
	}
}

// debugCheckChildCount warns if a widget has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(w *Widget) {
	if len(w.children) > debugMaxChildCount {
		logger.Warn(fmt.Sprintf("widget has %d children (threshold %d)", len(w.children), debugMaxChildCount),
			"component", "hierarchy", "widget", w.name)
	}
}
