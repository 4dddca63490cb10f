package kala

// InputSource is the per-frame input state queried by event dispatch.
type InputSource interface {
	IsKeyPressed(k Key) bool
	IsKeyReleased(k Key) bool
	IsKeyHeld(k Key) bool

	IsMouseButtonPressed(b MouseButton) bool
	IsMouseButtonReleased(b MouseButton) bool
	IsMouseButtonHeld(b MouseButton) bool
	IsMouseButtonDragging(b MouseButton) bool

	CursorPosition() Vec2
	MouseDelta() Vec2
	ScrollDelta() Vec2
}

// Input is a window-owned input state machine. A frame driver calls
// BeginFrame, then feeds the frame's raw state through the Set methods;
// event dispatch reads it back through InputSource.
//
// Pressed and released are edge states: they are true only in the frame the
// transition was fed and cleared by the next BeginFrame.
type Input struct {
	id       uint32
	windowID uint32

	keyDown     [keyCount]bool
	keyPressed  [keyCount]bool
	keyReleased [keyCount]bool

	mouseDown          [mouseButtonCount]bool
	mousePressed       [mouseButtonCount]bool
	mouseReleased      [mouseButtonCount]bool
	mouseDoubleClicked [mouseButtonCount]bool

	cursor    Vec2
	hasCursor bool
	delta     Vec2
	scroll    Vec2
	typed     []rune
}

// NewInput creates the input state for windowID and stores it in the registry.
func (e *Engine) NewInput(windowID uint32) (*Input, error) {
	if !e.Windows.Has(windowID) {
		return nil, ErrUnknownWindow
	}
	in := &Input{id: e.NextID(), windowID: windowID}
	e.Inputs.Add(in.id, in)
	return in, nil
}

// ID returns the input's registry ID.
func (in *Input) ID() uint32 { return in.id }

// WindowID returns the owning window.
func (in *Input) WindowID() uint32 { return in.windowID }

// BeginFrame clears the edge states, the cursor delta, the scroll delta and
// typed text. Held state persists.
func (in *Input) BeginFrame() {
	in.keyPressed = [keyCount]bool{}
	in.keyReleased = [keyCount]bool{}
	in.mousePressed = [mouseButtonCount]bool{}
	in.mouseReleased = [mouseButtonCount]bool{}
	in.mouseDoubleClicked = [mouseButtonCount]bool{}
	in.delta = Vec2{}
	in.scroll = Vec2{}
	in.typed = in.typed[:0]
}

// SetKeyState records whether k is down, deriving pressed and released from
// the previous state.
func (in *Input) SetKeyState(k Key, down bool) {
	if k == KeyUnknown || k >= keyCount {
		return
	}
	if down && !in.keyDown[k] {
		in.keyPressed[k] = true
	}
	if !down && in.keyDown[k] {
		in.keyReleased[k] = true
	}
	in.keyDown[k] = down
}

// SetMouseButtonState records whether b is down, deriving pressed and
// released from the previous state.
func (in *Input) SetMouseButtonState(b MouseButton, down bool) {
	if b == MouseButtonUnknown || b >= mouseButtonCount {
		return
	}
	if down && !in.mouseDown[b] {
		in.mousePressed[b] = true
	}
	if !down && in.mouseDown[b] {
		in.mouseReleased[b] = true
	}
	in.mouseDown[b] = down
}

// SetMouseButtonDoubleClicked marks b as double-clicked for this frame.
func (in *Input) SetMouseButtonDoubleClicked(b MouseButton) {
	if b == MouseButtonUnknown || b >= mouseButtonCount {
		return
	}
	in.mouseDoubleClicked[b] = true
}

// SetCursorPosition moves the cursor and accumulates the movement into this
// frame's delta. The first position ever set produces no delta.
func (in *Input) SetCursorPosition(p Vec2) {
	if in.hasCursor {
		in.delta = in.delta.Add(p.Sub(in.cursor))
	}
	in.cursor = p
	in.hasCursor = true
}

// AddScroll accumulates wheel movement for this frame.
func (in *Input) AddScroll(d Vec2) {
	in.scroll = in.scroll.Add(d)
}

// AddTypedText appends characters typed this frame.
func (in *Input) AddTypedText(rs ...rune) {
	in.typed = append(in.typed, rs...)
}

// TypedText returns the characters typed this frame.
func (in *Input) TypedText() string { return string(in.typed) }

// IsKeyPressed reports whether k went down this frame.
func (in *Input) IsKeyPressed(k Key) bool { return k < keyCount && in.keyPressed[k] }

// IsKeyReleased reports whether k went up this frame.
func (in *Input) IsKeyReleased(k Key) bool { return k < keyCount && in.keyReleased[k] }

// IsKeyHeld reports whether k is down.
func (in *Input) IsKeyHeld(k Key) bool { return k < keyCount && in.keyDown[k] }

// IsMouseButtonPressed reports whether b went down this frame.
func (in *Input) IsMouseButtonPressed(b MouseButton) bool {
	return b < mouseButtonCount && in.mousePressed[b]
}

// IsMouseButtonReleased reports whether b went up this frame.
func (in *Input) IsMouseButtonReleased(b MouseButton) bool {
	return b < mouseButtonCount && in.mouseReleased[b]
}

// IsMouseButtonHeld reports whether b is down.
func (in *Input) IsMouseButtonHeld(b MouseButton) bool {
	return b < mouseButtonCount && in.mouseDown[b]
}

// IsMouseButtonDoubleClicked reports whether b was double-clicked this frame.
func (in *Input) IsMouseButtonDoubleClicked(b MouseButton) bool {
	return b < mouseButtonCount && in.mouseDoubleClicked[b]
}

// IsMouseButtonDragging reports whether b is held while the cursor moved.
func (in *Input) IsMouseButtonDragging(b MouseButton) bool {
	return in.IsMouseButtonHeld(b) && !in.delta.IsZero()
}

// CursorPosition returns the cursor in window coordinates.
func (in *Input) CursorPosition() Vec2 { return in.cursor }

// MouseDelta returns this frame's cursor movement. Reading does not reset it.
func (in *Input) MouseDelta() Vec2 { return in.delta }

// ScrollDelta returns this frame's wheel movement.
func (in *Input) ScrollDelta() Vec2 { return in.scroll }

// IsComboDown reports whether every code is held. An empty combo is never down.
func (in *Input) IsComboDown(codes ...InputCode) bool {
	if len(codes) == 0 {
		return false
	}
	for _, c := range codes {
		if !in.codeHeld(c) {
			return false
		}
	}
	return true
}

// IsComboPressed reports whether every code is held and the last one went
// down this frame.
func (in *Input) IsComboPressed(codes ...InputCode) bool {
	if !in.IsComboDown(codes...) {
		return false
	}
	last := codes[len(codes)-1]
	if last.Mouse {
		return in.IsMouseButtonPressed(last.Button)
	}
	return in.IsKeyPressed(last.Key)
}

// IsComboReleased reports whether every code but the last is held and the
// last one went up this frame.
func (in *Input) IsComboReleased(codes ...InputCode) bool {
	if len(codes) == 0 {
		return false
	}
	for _, c := range codes[:len(codes)-1] {
		if !in.codeHeld(c) {
			return false
		}
	}
	last := codes[len(codes)-1]
	if last.Mouse {
		return in.IsMouseButtonReleased(last.Button)
	}
	return in.IsKeyReleased(last.Key)
}

func (in *Input) codeHeld(c InputCode) bool {
	if c.Mouse {
		return in.IsMouseButtonHeld(c.Button)
	}
	return in.IsKeyHeld(c.Key)
}
