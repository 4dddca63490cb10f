package kala

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 values on a Widget simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenSize,
// TweenRotation, TweenOpacity, TweenColor) and call Update(dt) each frame.
// The group writes through the widget's setters, so clamping and transform
// recomposition apply. If the widget is disposed, the group stops
// immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(vals [4]float64)
	target *Widget
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values. If the
// target widget has been disposed, Done is set and nothing is written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target == nil || g.target.IsDisposed() {
		g.Done = true
		return
	}

	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(vals)
	g.Done = allDone
}

func newTweenGroup(w *Widget, from, to []float64, duration float32, fn ease.TweenFunc, apply func([4]float64)) *TweenGroup {
	g := &TweenGroup{count: len(from), target: w, apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return g
}

// TweenPosition animates the widget's position in target space to `to`.
func TweenPosition(w *Widget, to Vec2, target PoseTarget, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := w.transform.Pos(target)
	return newTweenGroup(w, []float64{from.X, from.Y}, []float64{to.X, to.Y}, duration, fn,
		func(v [4]float64) {
			w.transform.SetPos(Vec2{v[0], v[1]}, target, w.parentTransform())
		})
}

// TweenSize animates the widget's size in target space to `to`.
func TweenSize(w *Widget, to Vec2, target PoseTarget, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := w.transform.Size(target)
	return newTweenGroup(w, []float64{from.X, from.Y}, []float64{to.X, to.Y}, duration, fn,
		func(v [4]float64) {
			w.transform.SetSize(Vec2{v[0], v[1]}, target, w.parentTransform())
		})
}

// TweenRotation animates the widget's rotation in target space to `to`
// degrees. The animated value is not wrapped until it is written, so a tween
// from 350 to 370 turns through 0.
func TweenRotation(w *Widget, to float64, target PoseTarget, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := w.transform.Rot(target)
	return newTweenGroup(w, []float64{from}, []float64{to}, duration, fn,
		func(v [4]float64) {
			w.transform.SetRot(v[0], target, w.parentTransform())
		})
}

// TweenOpacity animates the widget's opacity.
func TweenOpacity(w *Widget, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(w, []float64{w.Opacity()}, []float64{to}, duration, fn,
		func(v [4]float64) {
			w.SetOpacity(v[0])
		})
}

// TweenColor animates all four components of the widget's color, with A
// driving opacity.
func TweenColor(w *Widget, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	c := w.color
	return newTweenGroup(w, []float64{c.R, c.G, c.B, c.A}, []float64{to.R, to.G, to.B, to.A}, duration, fn,
		func(v [4]float64) {
			w.SetNormalizedColor(v[0], v[1], v[2])
			w.SetOpacity(v[3])
		})
}
