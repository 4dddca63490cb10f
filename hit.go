package kala

// HitTest reports whether cursor lies inside the widget. Non-interactable
// widgets are still hit; callers decide whether they can be hovered.
func (w *Widget) HitTest(cursor Vec2) bool {
	if w.disposed {
		return false
	}
	box := w.AABB()
	if !box.Contains(cursor.X, cursor.Y) {
		return false
	}
	if w.hitTarget != HitTexture || w.texture == nil || w.texture.alpha == nil {
		return true
	}
	return w.texture.opaqueAt(uvInRect(box, cursor))
}

// uvInRect maps a point inside r to normalized [0, 1] coordinates.
func uvInRect(r Rect, p Vec2) (u, v float64) {
	if r.Width > 0 {
		u = (p.X - r.X) / r.Width
	}
	if r.Height > 0 {
		v = (p.Y - r.Y) / r.Height
	}
	return clamp(u, 0, 1), clamp(v, 0, 1)
}
