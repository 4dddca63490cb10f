package kala

import (
	"log/slog"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Engine owns every registry and the ID allocator. All factories hang off it,
// so two engines never share objects or IDs.
//
// Engine is not safe for concurrent use. It is driven from the frame loop.
type Engine struct {
	nextID uint32

	Windows      *Registry[*Window]
	Inputs       *Registry[*Input]
	Widgets      *Registry[*Widget]
	Transforms2D *Registry[*Transform2D]
	Transforms3D *Registry[*Transform3D]
	Textures     *Registry[*Texture]
	Shaders      *Registry[*Shader]
	Fonts        *Registry[*Font]

	backend Backend
	sink    EventSink
	debug   bool

	renderBuf []*Widget
}

// NewEngine creates an engine drawing through backend. A nil backend is
// allowed for headless use; geometry calls then become no-ops and every
// Render reports failure.
func NewEngine(backend Backend) *Engine {
	return &Engine{
		Windows:      NewRegistry[*Window](),
		Inputs:       NewRegistry[*Input](),
		Widgets:      NewRegistry[*Widget](),
		Transforms2D: NewRegistry[*Transform2D](),
		Transforms3D: NewRegistry[*Transform3D](),
		Textures:     NewRegistry[*Texture](),
		Shaders:      NewRegistry[*Shader](),
		Fonts:        NewRegistry[*Font](),
		backend:      backend,
	}
}

// NextID returns a fresh non-zero ID. IDs are never reused.
func (e *Engine) NextID() uint32 {
	e.nextID++
	if e.nextID == 0 {
		// wrapped around; skip the invalid ID
		e.nextID++
	}
	return e.nextID
}

// Backend returns the graphics backend the engine draws through.
func (e *Engine) Backend() Backend { return e.backend }

// SetEventSink routes every fired widget action to sink in addition to the
// bound callback. Pass nil to disable.
func (e *Engine) SetEventSink(sink EventSink) { e.sink = sink }

// SetDebugMode enables per-frame timing logs. The default handler follows
// it down to debug level; the level is shared by every engine.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	if enabled {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// UpdateTransforms recomputes the combined pose of every widget in windowID,
// visiting parents before their children.
func (e *Engine) UpdateTransforms(windowID uint32) {
	for _, w := range e.Widgets.WindowContent(windowID) {
		if w.parentID != 0 {
			continue
		}
		e.updateSubtree(w, nil, make(map[uint32]struct{}))
	}
}

func (e *Engine) updateSubtree(w *Widget, parent *Transform2D, visited map[uint32]struct{}) {
	if _, seen := visited[w.id]; seen {
		return
	}
	visited[w.id] = struct{}{}
	w.transform.Recompute(parent)
	for _, cid := range w.children {
		if c, ok := e.Widgets.Get(cid); ok {
			e.updateSubtree(c, w.transform, visited)
		}
	}
}

// HitWidgets returns every widget of windowID whose bounding box contains
// cursor, topmost first. Equal Z-orders put the newer widget first.
func (e *Engine) HitWidgets(windowID uint32, cursor Vec2) []*Widget {
	var hits []*Widget
	for _, w := range e.Widgets.All() {
		if w.windowID != windowID || w.disposed {
			continue
		}
		if w.HitTest(cursor) {
			hits = append(hits, w)
		}
	}
	sortTopmostFirst(hits)
	return hits
}

// TopWidget returns the topmost interactable widget under cursor, or nil.
func (e *Engine) TopWidget(windowID uint32, cursor Vec2) *Widget {
	for _, w := range e.HitWidgets(windowID, cursor) {
		if w.interactable {
			return w
		}
	}
	return nil
}

func sortTopmostFirst(ws []*Widget) {
	sort.SliceStable(ws, func(i, j int) bool {
		if ws[i].zOrder != ws[j].zOrder {
			return ws[i].zOrder > ws[j].zOrder
		}
		return ws[i].id > ws[j].id
	})
}

// PollWindowEvents resolves the hovered widget of windowID once, then polls
// the bindings of every widget in that window against in.
func (e *Engine) PollWindowEvents(windowID uint32, in InputSource) {
	if in == nil {
		return
	}
	top := e.TopWidget(windowID, in.CursorPosition())

	// Callbacks may remove widgets; iterate over a snapshot.
	widgets := e.Widgets.WindowContent(windowID)
	for _, w := range widgets {
		w.hovered = w == top
	}
	for _, w := range widgets {
		if w.disposed {
			continue
		}
		w.pollEvents(in)
	}
}

// RenderWindow draws every widget of windowID in ascending Z-order and
// returns how many of them reported a failed render.
func (e *Engine) RenderWindow(windowID uint32, projection ebiten.GeoM) int {
	start := time.Now()

	e.renderBuf = e.renderBuf[:0]
	for _, w := range e.Widgets.All() {
		if w.windowID == windowID {
			e.renderBuf = append(e.renderBuf, w)
		}
	}
	sort.SliceStable(e.renderBuf, func(i, j int) bool {
		if e.renderBuf[i].zOrder != e.renderBuf[j].zOrder {
			return e.renderBuf[i].zOrder < e.renderBuf[j].zOrder
		}
		return e.renderBuf[i].id < e.renderBuf[j].id
	})

	failed := 0
	for _, w := range e.renderBuf {
		if !w.Render(projection) {
			failed++
		}
	}

	if e.debug {
		e.debugLog(frameStats{
			windowID: windowID,
			widgets:  len(e.renderBuf),
			failed:   failed,
			render:   time.Since(start),
		})
	}
	clear(e.renderBuf)
	return failed
}

// Teardown removes everything the engine owns. Widgets go first so their
// geometry is released while the backend is still alive; windows go last.
func (e *Engine) Teardown() {
	e.Widgets.Clear()
	e.Transforms2D.Clear()
	e.Transforms3D.Clear()
	e.Fonts.Clear()
	e.Shaders.Clear()
	e.Textures.Clear()
	e.Inputs.Clear()
	e.Windows.Clear()
}
