package kala

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS and TPS in the top-left corner. The
// refresh timer advances with ticks, so the text changes every ~0.5 seconds
// regardless of the draw rate.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	stale   bool
}

const fpsRefresh = 0.5

func newFPSOverlay() *fpsOverlay {
	return &fpsOverlay{stale: true}
}

// update advances the refresh timer by one tick of dt seconds.
func (o *fpsOverlay) update(dt float64) {
	o.elapsed += dt
	if o.elapsed >= fpsRefresh {
		o.elapsed = 0
		o.stale = true
	}
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.stale {
		if o.img == nil {
			// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
			o.img = ebiten.NewImage(100, 32)
		}
		o.img.Clear()
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
		o.stale = false
	}
	screen.DrawImage(o.img, nil)
}
