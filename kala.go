package kala

import "math"

// Pose limits. Positions and sizes are clamped after every mutation so that
// repeated Add calls cannot drift without bound.
const (
	MinPos  = -10000.0
	MaxPos  = 10000.0
	MinSize = 0.01
	MaxSize = 10000.0
)

// MaxZOrder is the highest Z-order a widget can hold.
const MaxZOrder = 1024

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default widget color.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, sizes, offsets and cursor coordinates.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Vec3 is a 3D vector used by Transform3D.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Mul returns the component-wise product of v and o.
func (v Vec3) Mul(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersect returns the overlapping area of r and other. The result has zero
// width or height when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.X+r.Width, other.X+other.Width)
	y1 := math.Min(r.Y+r.Height, other.Y+other.Height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// PoseTarget selects which pose component a transform getter or setter
// addresses. Combined is derived and can only be read.
type PoseTarget uint8

const (
	TargetWorld    PoseTarget = iota // pose without parent composition
	TargetLocal                      // pose relative to the parent
	TargetCombined                   // derived pose after composing with the parent
)

// WidgetKind distinguishes rendering behavior for a Widget.
type WidgetKind uint8

const (
	WidgetImage WidgetKind = iota // textured quad
	WidgetText                    // glyph geometry from a loaded font
)

func (k WidgetKind) String() string {
	switch k {
	case WidgetImage:
		return "image"
	case WidgetText:
		return "text"
	default:
		return "unknown"
	}
}

// HitTarget selects how a widget tests the cursor against itself.
type HitTarget uint8

const (
	HitQuad    HitTarget = iota // widget bounding box
	HitTexture                  // bounding box plus texture alpha; falls back to HitQuad without a texture
)

// ActionTarget identifies a kind of widget interaction.
type ActionTarget uint8

const (
	ActionPressed  ActionTarget = iota // key or mouse button went down this frame
	ActionReleased                     // key or mouse button went up this frame
	ActionHeld                         // key or mouse button is down
	ActionHovered                      // cursor is over the topmost interactable widget
	ActionDragged                      // bound mouse button is held and the cursor moved
	ActionScrolled                     // scroll wheel moved

	actionCount
)

func (a ActionTarget) String() string {
	switch a {
	case ActionPressed:
		return "pressed"
	case ActionReleased:
		return "released"
	case ActionHeld:
		return "held"
	case ActionHovered:
		return "hovered"
	case ActionDragged:
		return "dragged"
	case ActionScrolled:
		return "scrolled"
	default:
		return "unknown"
	}
}

// --- scalar helpers ---

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampVec2(v Vec2, lo, hi float64) Vec2 {
	return Vec2{clamp(v.X, lo, hi), clamp(v.Y, lo, hi)}
}

func clampVec3(v Vec3, lo, hi float64) Vec3 {
	return Vec3{clamp(v.X, lo, hi), clamp(v.Y, lo, hi), clamp(v.Z, lo, hi)}
}

// wrapDegrees wraps an angle into [0, 360).
func wrapDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	w := math.Mod(deg, 360)
	if w < 0 {
		w += 360
	}
	if w >= 360 {
		w = 0
	}
	return w
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
