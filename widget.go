package kala

import (
	"errors"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Widget errors.
var (
	ErrUnknownWidgetKind = errors.New("kala: unknown widget kind")
	ErrUnknownWindow     = errors.New("kala: unknown window")
	ErrCycle             = errors.New("kala: hierarchy cycle")
	ErrWindowMismatch    = errors.New("kala: widgets belong to different windows")
	ErrDisposed          = errors.New("kala: widget is disposed")
	ErrNotChild          = errors.New("kala: widget is not a child")
)

// Name length limits.
const (
	MinNameLength = 1
	MaxNameLength = 50
)

// Viewport offset limits used by MoveWidget.
const (
	MinViewportOffset = -0.5
	MaxViewportOffset = 2.5
)

// defaultQuad is a unit quad centered on the origin, wound clockwise in
// screen space (Y down).
var (
	defaultQuadVertices = []Vec2{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	defaultQuadIndices  = []uint32{0, 1, 2, 2, 3, 0}
)

// binding is one entry of a widget's event table.
type binding struct {
	fn    func(EventContext)
	key   Key
	mouse MouseButton
}

// Widget is a renderable, interactive element. The Kind field selects how it
// renders; everything else is shared across kinds.
//
// A widget owns its Transform2D through the engine registry and is destroyed
// only by removing it from Engine.Widgets.
type Widget struct {
	id       uint32
	windowID uint32
	kind     WidgetKind
	name     string
	engine   *Engine

	transform *Transform2D

	parentID uint32
	children []uint32

	canUpdate bool
	clipping  bool
	color     Color
	vertices  []Vec2
	indices   []uint32
	geometry  GeometryID
	aabb      Rect
	texture   *Texture
	shader    *Shader

	zOrder       int
	interactable bool
	hitTarget    HitTarget
	hovered      bool
	dragging     bool
	events       [actionCount]binding

	fontID     uint32
	glyphIndex uint32

	disposed bool
}

// WidgetOptions configures a widget at creation. Zero values select the
// defaults: unit size, no rotation, no parent, no texture or shader.
type WidgetOptions struct {
	WindowID uint32
	Name     string
	Pos      Vec2
	Rot      float64
	Size     Vec2
	Parent   *Widget
	Texture  *Texture
	Shader   *Shader

	// Text widgets only.
	FontID     uint32
	GlyphIndex uint32
}

// NewWidget creates a widget of the given kind in opts.WindowID and stores it
// in the registry.
func (e *Engine) NewWidget(kind WidgetKind, opts WidgetOptions) (*Widget, error) {
	switch kind {
	case WidgetImage, WidgetText:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownWidgetKind, kind)
	}
	if !e.Windows.Has(opts.WindowID) {
		return nil, fmt.Errorf("new %s widget: %w: %d", kind, ErrUnknownWindow, opts.WindowID)
	}

	w := &Widget{
		id:           e.NextID(),
		windowID:     opts.WindowID,
		kind:         kind,
		engine:       e,
		transform:    e.NewTransform2D(),
		canUpdate:    true,
		color:        ColorWhite,
		interactable: true,
		texture:      opts.Texture,
		shader:       opts.Shader,
		fontID:       opts.FontID,
		glyphIndex:   opts.GlyphIndex,
	}
	w.name = fmt.Sprintf("%s_%d", kind, w.id)
	w.SetName(opts.Name)

	w.transform.SetPos(opts.Pos, TargetWorld, nil)
	w.transform.SetRot(opts.Rot, TargetWorld, nil)
	if !opts.Size.IsZero() {
		w.transform.SetSize(opts.Size, TargetWorld, nil)
	}

	if kind == WidgetText {
		if g, ok := w.glyph(); ok {
			w.vertices, w.indices = glyphGeometry(g)
		}
	}
	if w.vertices == nil {
		w.vertices = append([]Vec2(nil), defaultQuadVertices...)
		w.indices = append([]uint32(nil), defaultQuadIndices...)
	}
	w.rebuildGeometry()

	e.Widgets.Add(w.id, w)

	if opts.Parent != nil {
		if err := opts.Parent.AddChild(w); err != nil {
			e.Widgets.Remove(w.id)
			return nil, fmt.Errorf("new %s widget: %w", kind, err)
		}
	}
	w.AABB()
	return w, nil
}

// NewImage creates an image widget.
func (e *Engine) NewImage(opts WidgetOptions) (*Widget, error) {
	return e.NewWidget(WidgetImage, opts)
}

// NewText creates a text widget rendering one glyph of a loaded font.
func (e *Engine) NewText(opts WidgetOptions) (*Widget, error) {
	return e.NewWidget(WidgetText, opts)
}

// ID returns the widget's registry ID.
func (w *Widget) ID() uint32 { return w.id }

// WindowID returns the ID of the window that owns the widget.
func (w *Widget) WindowID() uint32 { return w.windowID }

// Kind returns the widget's render kind.
func (w *Widget) Kind() WidgetKind { return w.kind }

// Name returns the widget's name.
func (w *Widget) Name() string { return w.name }

// SetName renames the widget. Names outside 1..50 characters are ignored.
// Reports whether the name was accepted.
func (w *Widget) SetName(name string) bool {
	n := len([]rune(name))
	if n < MinNameLength || n > MaxNameLength {
		return false
	}
	w.name = name
	return true
}

// Transform returns the widget's transform.
func (w *Widget) Transform() *Transform2D { return w.transform }

// IsDisposed reports whether the widget has been removed.
func (w *Widget) IsDisposed() bool { return w.disposed }

// --- render state ---

// CanUpdate reports whether the widget is rendered.
func (w *Widget) CanUpdate() bool { return w.canUpdate }

// SetCanUpdate toggles rendering. A widget that cannot update is skipped by
// Render without counting as a failure.
func (w *Widget) SetCanUpdate(v bool) { w.canUpdate = v }

// IsClipping reports whether the widget clips its descendants.
func (w *Widget) IsClipping() bool { return w.clipping }

// SetClipping makes descendants render only inside this widget's bounds.
func (w *Widget) SetClipping(v bool) { w.clipping = v }

// SetNormalizedColor sets the RGB tint with components in [0, 1].
func (w *Widget) SetNormalizedColor(r, g, b float64) {
	w.color.R = clamp(r, 0, 1)
	w.color.G = clamp(g, 0, 1)
	w.color.B = clamp(b, 0, 1)
}

// NormalizedColor returns the RGB tint with components in [0, 1].
func (w *Widget) NormalizedColor() (r, g, b float64) {
	return w.color.R, w.color.G, w.color.B
}

// SetRGBColor sets the RGB tint from 0..255 components.
func (w *Widget) SetRGBColor(r, g, b int) {
	w.SetNormalizedColor(float64(r)/255, float64(g)/255, float64(b)/255)
}

// RGBColor returns the RGB tint as 0..255 components.
func (w *Widget) RGBColor() (r, g, b int) {
	return int(math.Round(w.color.R * 255)), int(math.Round(w.color.G * 255)), int(math.Round(w.color.B * 255))
}

// SetOpacity sets the opacity, clamped to [0, 1].
func (w *Widget) SetOpacity(v float64) { w.color.A = clamp(v, 0, 1) }

// Opacity returns the widget's opacity.
func (w *Widget) Opacity() float64 { return w.color.A }

// Texture returns the bound texture, or nil.
func (w *Widget) Texture() *Texture { return w.texture }

// SetTexture binds t. Pass nil to unbind.
func (w *Widget) SetTexture(t *Texture) { w.texture = t }

// Shader returns the bound shader, or nil.
func (w *Widget) Shader() *Shader { return w.shader }

// SetShader binds s. Pass nil to use the default pipeline.
func (w *Widget) SetShader(s *Shader) { w.shader = s }

// Vertices returns the widget's local-space vertices. The slice MUST NOT be
// mutated; use SetVertices.
func (w *Widget) Vertices() []Vec2 { return w.vertices }

// Indices returns the widget's triangle indices.
func (w *Widget) Indices() []uint32 { return w.indices }

// SetVertices replaces the vertices and re-creates the backend geometry.
func (w *Widget) SetVertices(v []Vec2) {
	w.vertices = append(w.vertices[:0:0], v...)
	w.rebuildGeometry()
}

// SetIndices replaces the indices and re-creates the backend geometry.
func (w *Widget) SetIndices(idx []uint32) {
	w.indices = append(w.indices[:0:0], idx...)
	w.rebuildGeometry()
}

// FontID returns the font a text widget renders from.
func (w *Widget) FontID() uint32 { return w.fontID }

// SetFontID switches the font and rebuilds geometry from the current glyph.
func (w *Widget) SetFontID(id uint32) {
	w.fontID = id
	w.reloadGlyph()
}

// GlyphIndex returns the glyph a text widget renders.
func (w *Widget) GlyphIndex() uint32 { return w.glyphIndex }

// SetGlyphIndex switches the glyph and rebuilds geometry.
func (w *Widget) SetGlyphIndex(i uint32) {
	w.glyphIndex = i
	w.reloadGlyph()
}

func (w *Widget) reloadGlyph() {
	if w.kind != WidgetText {
		return
	}
	if g, ok := w.glyph(); ok {
		w.vertices, w.indices = glyphGeometry(g)
		w.rebuildGeometry()
	}
}

// rebuildGeometry replaces the backend geometry handle for the current
// vertices and indices.
func (w *Widget) rebuildGeometry() {
	be := w.engine.backend
	if be == nil {
		return
	}
	if w.geometry != 0 {
		be.DestroyGeometry(w.geometry)
		w.geometry = 0
	}
	if len(w.vertices) == 0 || len(w.indices) == 0 {
		return
	}
	g, err := be.CreateGeometry(w.vertices, w.indices)
	if err != nil {
		logger.Warn("create geometry failed",
			"component", "render", "widget", w.name, "id", w.id, "err", err)
		return
	}
	w.geometry = g
}

// Geometry returns the backend geometry handle, or 0 when none is allocated.
func (w *Widget) Geometry() GeometryID { return w.geometry }

// --- placement ---

// AABB recomputes and returns the axis-aligned bounding box from the combined
// position and size.
func (w *Widget) AABB() Rect {
	pos := w.transform.Pos(TargetCombined)
	size := w.transform.Size(TargetCombined)
	w.aabb = Rect{
		X:      pos.X - size.X/2,
		Y:      pos.Y - size.Y/2,
		Width:  size.X,
		Height: size.Y,
	}
	return w.aabb
}

// MoveWidget places the widget relative to a viewport. Offset (1, 1) centers
// it, (0, 0) puts it at the top-left corner; each component is clamped to
// [-0.5, 2.5].
func (w *Widget) MoveWidget(viewport, offset Vec2) {
	offset = Vec2{
		X: clamp(offset.X, MinViewportOffset, MaxViewportOffset),
		Y: clamp(offset.Y, MinViewportOffset, MaxViewportOffset),
	}
	w.transform.SetPos(viewport.Mul(offset).Scale(0.5), TargetWorld, w.parentTransform())
}

// --- Z-order ---

// ZOrder returns the widget's layering key.
func (w *Widget) ZOrder() int { return w.zOrder }

// SetZOrder sets the layering key, clamped to [0, MaxZOrder].
func (w *Widget) SetZOrder(z int) {
	w.zOrder = max(0, min(z, MaxZOrder))
}

// MoveAbove places the widget one unit above target's current Z-order.
func (w *Widget) MoveAbove(target *Widget) {
	if target == nil || target == w || target.disposed {
		return
	}
	w.SetZOrder(target.zOrder + 1)
}

// MoveBelow places the widget one unit below target's current Z-order.
// No-op when target is already at 0.
func (w *Widget) MoveBelow(target *Widget) {
	if target == nil || target == w || target.disposed || target.zOrder == 0 {
		return
	}
	w.SetZOrder(target.zOrder - 1)
}

// --- interaction ---

// IsInteractable reports whether the widget can be hovered and receives events.
func (w *Widget) IsInteractable() bool { return w.interactable }

// SetInteractable toggles hit and event participation.
func (w *Widget) SetInteractable(v bool) {
	w.interactable = v
	if !v {
		w.hovered = false
	}
}

// IsHovered reports whether the widget was the topmost interactable widget
// under the cursor at the last event poll.
func (w *Widget) IsHovered() bool { return w.hovered }

// HitTarget returns the hit-test mode.
func (w *Widget) HitTarget() HitTarget { return w.hitTarget }

// SetHitTarget sets the hit-test mode.
func (w *Widget) SetHitTarget(h HitTarget) { w.hitTarget = h }

// --- rendering ---

// Render draws the widget through the engine backend. It reports false when
// the widget could not be drawn this frame; callers skip it and continue.
func (w *Widget) Render(projection ebiten.GeoM) bool {
	if w.disposed {
		return false
	}
	if !w.canUpdate {
		return true
	}
	be := w.engine.backend
	if be == nil {
		return false
	}

	var local ebiten.GeoM
	switch w.kind {
	case WidgetImage:
		if w.texture == nil {
			return false
		}
	case WidgetText:
		g, ok := w.glyph()
		if !ok {
			return false
		}
		local.SetElement(0, 0, float64(g.Transform[0]))
		local.SetElement(0, 1, float64(g.Transform[1]))
		local.SetElement(1, 0, float64(g.Transform[2]))
		local.SetElement(1, 1, float64(g.Transform[3]))
	default:
		return false
	}

	if w.geometry == 0 {
		w.rebuildGeometry()
		if w.geometry == 0 {
			return false
		}
	}

	cmd := DrawCommand{
		Geometry: w.geometry,
		GeoM:     w.modelMatrix(local, projection),
		Color:    Color{w.color.R, w.color.G, w.color.B, 1},
		Opacity:  w.color.A,
		Texture:  w.texture,
		Shader:   w.shader,
	}
	if clip, ok := w.clipRect(); ok {
		if clip.Empty() {
			return true
		}
		cmd.Clip = &clip
	}
	if err := be.Draw(cmd); err != nil {
		logger.Debug("draw failed",
			"component", "render", "widget", w.name, "id", w.id, "err", err)
		return false
	}
	return true
}

// modelMatrix maps local vertices to projected screen space: local glyph
// transform, then size, rotation, position and finally projection.
func (w *Widget) modelMatrix(local, projection ebiten.GeoM) ebiten.GeoM {
	m := local
	size := w.transform.Size(TargetCombined)
	pos := w.transform.Pos(TargetCombined)
	m.Scale(size.X, size.Y)
	m.Rotate(radians(w.transform.Rot(TargetCombined)))
	m.Translate(pos.X, pos.Y)
	m.Concat(projection)
	return m
}

// clipRect intersects the bounds of every clipping ancestor. It reports false
// when no ancestor clips.
func (w *Widget) clipRect() (Rect, bool) {
	var (
		clip    Rect
		clipped bool
	)
	visited := map[uint32]struct{}{w.id: {}}
	for pid := w.parentID; pid != 0; {
		if _, seen := visited[pid]; seen {
			break
		}
		visited[pid] = struct{}{}
		p, ok := w.engine.Widgets.Get(pid)
		if !ok {
			break
		}
		if p.clipping {
			box := p.AABB()
			if clipped {
				clip = clip.Intersect(box)
			} else {
				clip, clipped = box, true
			}
		}
		pid = p.parentID
	}
	return clip, clipped
}

// --- teardown ---

// Dispose releases the widget's backend geometry and transform, detaches it
// from its parent and removes its subtree. Calling Dispose on a widget still
// held by the registry removes it from the registry first.
func (w *Widget) Dispose() {
	if w.disposed {
		return
	}
	e := w.engine
	if cur, ok := e.Widgets.Get(w.id); ok && cur == w {
		// Remove calls back into Dispose once the entry is detached.
		e.Widgets.Remove(w.id)
		return
	}
	w.disposed = true
	w.hovered = false

	if e.backend != nil && w.geometry != 0 {
		e.backend.DestroyGeometry(w.geometry)
	}
	w.geometry = 0

	if w.parentID != 0 {
		if p, ok := e.Widgets.Get(w.parentID); ok {
			p.removeChildID(w.id)
		}
		w.parentID = 0
	}

	children := w.children
	w.children = nil
	for _, cid := range children {
		e.Widgets.Remove(cid)
	}

	e.Transforms2D.Remove(w.transform.id)
	w.ClearAllEvents()
}
