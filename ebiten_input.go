package kala

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultDoubleClickInterval is the longest gap between two presses of the
// same button still counted as a double-click.
const DefaultDoubleClickInterval = 400 * time.Millisecond

// InputSampler feeds one frame of raw device state into an Input.
type InputSampler interface {
	Sample(in *Input)
}

// EbitenSampler reads keyboard, mouse and wheel state from Ebitengine.
type EbitenSampler struct {
	DoubleClickInterval time.Duration

	lastPress [mouseButtonCount]time.Time
	chars     []rune
	now       func() time.Time
}

// NewEbitenSampler creates a sampler with the default double-click interval.
func NewEbitenSampler() *EbitenSampler {
	return &EbitenSampler{DoubleClickInterval: DefaultDoubleClickInterval, now: time.Now}
}

// Sample copies the current Ebitengine input state into in. Call it once per
// Update, after in.BeginFrame.
func (s *EbitenSampler) Sample(in *Input) {
	for k := KeyUnknown + 1; k < keyCount; k++ {
		in.SetKeyState(k, ebiten.IsKeyPressed(ebitenKeys[k]))
	}

	now := s.now()
	for b := MouseButtonUnknown + 1; b < mouseButtonCount; b++ {
		wasDown := in.IsMouseButtonHeld(b)
		down := ebiten.IsMouseButtonPressed(ebitenMouseButtons[b])
		in.SetMouseButtonState(b, down)
		if down && !wasDown {
			if !s.lastPress[b].IsZero() && now.Sub(s.lastPress[b]) <= s.DoubleClickInterval {
				in.SetMouseButtonDoubleClicked(b)
				s.lastPress[b] = time.Time{}
			} else {
				s.lastPress[b] = now
			}
		}
	}

	x, y := ebiten.CursorPosition()
	in.SetCursorPosition(Vec2{float64(x), float64(y)})

	wx, wy := ebiten.Wheel()
	if wx != 0 || wy != 0 {
		in.AddScroll(Vec2{wx, wy})
	}

	s.chars = ebiten.AppendInputChars(s.chars[:0])
	if len(s.chars) > 0 {
		in.AddTypedText(s.chars...)
	}
}
