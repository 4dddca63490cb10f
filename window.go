package kala

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrEmptyTitle is returned when a window is created without a title.
var ErrEmptyTitle = errors.New("kala: window title is empty")

// WindowHost reports the live state of the OS window backing a Window.
type WindowHost interface {
	ClientSize() Vec2
	IsFocused() bool
	IsMinimized() bool
	SetTitle(title string)
}

// Window is a registry entry for a top-level or child window. Widgets,
// inputs, textures and shaders are owned by a window and removed with it.
type Window struct {
	id       uint32
	title    string
	parentID uint32
	engine   *Engine

	size      Vec2
	focused   bool
	minimized bool

	// IdleWhenUnfocused makes IsIdle report true while the window lacks focus.
	IdleWhenUnfocused bool

	onRedraw func()
	onResize func(size Vec2)

	disposed bool
}

// NewWindow creates a window of the given client size. parent may be nil.
func (e *Engine) NewWindow(title string, size Vec2, parent *Window) (*Window, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	w := &Window{
		id:                e.NextID(),
		title:             title,
		engine:            e,
		size:              size,
		focused:           true,
		IdleWhenUnfocused: true,
	}
	e.Windows.Add(w.id, w)
	if parent != nil {
		if err := w.SetParent(parent); err != nil {
			e.Windows.Remove(w.id)
			return nil, fmt.Errorf("new window %q: %w", title, err)
		}
	}
	return w, nil
}

// ID returns the window's registry ID.
func (w *Window) ID() uint32 { return w.id }

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// SetTitle renames the window. Empty titles are ignored.
func (w *Window) SetTitle(title string) {
	if title != "" {
		w.title = title
	}
}

// ClientSize returns the last synced client-rect size.
func (w *Window) ClientSize() Vec2 { return w.size }

// IsFocused reports the last synced focus state.
func (w *Window) IsFocused() bool { return w.focused }

// IsMinimized reports the last synced minimized state.
func (w *Window) IsMinimized() bool { return w.minimized }

// IsIdle reports whether the window should skip redraw this frame.
func (w *Window) IsIdle() bool {
	return w.minimized || (w.IdleWhenUnfocused && !w.focused)
}

// SetRedrawCallback registers fn to run on TriggerRedraw.
func (w *Window) SetRedrawCallback(fn func()) { w.onRedraw = fn }

// SetResizeCallback registers fn to run when the client size changes.
func (w *Window) SetResizeCallback(fn func(size Vec2)) { w.onResize = fn }

// TriggerRedraw runs the redraw callback, if any.
func (w *Window) TriggerRedraw() {
	if w.onRedraw != nil {
		w.onRedraw()
	}
}

// TriggerResize runs the resize callback with the current size, if any.
func (w *Window) TriggerResize() {
	if w.onResize != nil {
		w.onResize(w.size)
	}
}

// Sync pulls size, focus and minimized state from host. A changed size fires
// the resize callback.
func (w *Window) Sync(host WindowHost) {
	if host == nil {
		return
	}
	w.focused = host.IsFocused()
	w.minimized = host.IsMinimized()
	size := host.ClientSize()
	if size != w.size {
		w.size = size
		w.TriggerResize()
	}
}

// --- parent graph ---

// Parent returns the parent window, or nil.
func (w *Window) Parent() *Window {
	if w.parentID == 0 {
		return nil
	}
	p, _ := w.engine.Windows.Get(w.parentID)
	return p
}

// SetParent makes parent the owner of w. Pass nil to detach. Refuses to link
// a window under itself or under one of its descendants.
func (w *Window) SetParent(parent *Window) error {
	if parent == nil {
		w.parentID = 0
		return nil
	}
	if parent == w || w.IsParentWindow(parent.id) {
		return ErrCycle
	}
	w.parentID = parent.id
	return nil
}

// ChildWindows returns the windows whose parent is w.
func (w *Window) ChildWindows() []*Window {
	var out []*Window
	for _, c := range w.engine.Windows.All() {
		if c.parentID == w.id {
			out = append(out, c)
		}
	}
	return out
}

// IsParentWindow reports whether w is an ancestor of the window with the
// given ID. The walk stops on a revisited node.
func (w *Window) IsParentWindow(id uint32) bool {
	visited := make(map[uint32]struct{})
	for cur, ok := w.engine.Windows.Get(id); ok && cur.parentID != 0; cur, ok = w.engine.Windows.Get(cur.parentID) {
		if cur.parentID == w.id {
			return true
		}
		if _, seen := visited[cur.id]; seen {
			return false
		}
		visited[cur.id] = struct{}{}
	}
	return false
}

// HasWindow reports whether the window with the given ID is w or is reachable
// from w through child links.
func (w *Window) HasWindow(id uint32) bool {
	visited := make(map[uint32]struct{})
	stack := []*Window{w}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.id == id {
			return true
		}
		if _, seen := visited[cur.id]; seen {
			continue
		}
		visited[cur.id] = struct{}{}
		stack = append(stack, cur.ChildWindows()...)
	}
	return false
}

// Dispose removes child windows, then everything w owns in every registry.
func (w *Window) Dispose() {
	if w.disposed {
		return
	}
	e := w.engine
	if cur, ok := e.Windows.Get(w.id); ok && cur == w {
		e.Windows.Remove(w.id)
		return
	}
	w.disposed = true

	for _, c := range w.ChildWindows() {
		e.Windows.Remove(c.id)
	}
	widgets := e.Widgets.RemoveWindowContent(w.id)
	e.Inputs.RemoveWindowContent(w.id)
	e.Shaders.RemoveWindowContent(w.id)
	e.Textures.RemoveWindowContent(w.id)

	logger.Debug("window closed", "component", "window", "title", w.title, "id", w.id, "widgets", widgets)
}

// EbitenHost backs the main window with Ebitengine's window state.
type EbitenHost struct{}

// ClientSize returns the Ebitengine window size.
func (EbitenHost) ClientSize() Vec2 {
	wd, ht := ebiten.WindowSize()
	return Vec2{float64(wd), float64(ht)}
}

// IsFocused reports whether the Ebitengine window has focus.
func (EbitenHost) IsFocused() bool { return ebiten.IsFocused() }

// IsMinimized reports whether the Ebitengine window is minimized.
func (EbitenHost) IsMinimized() bool { return ebiten.IsWindowMinimized() }

// SetTitle sets the Ebitengine window title.
func (EbitenHost) SetTitle(title string) { ebiten.SetWindowTitle(title) }
