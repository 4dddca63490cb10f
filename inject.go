package kala

// syntheticEvent is a single queued input frame. Cursor coordinates are in
// window space, identical to real mouse input.
type syntheticEvent struct {
	cursor Vec2
	button MouseButton
	down   bool
	key    Key
	scroll Vec2
}

// Injector queues synthetic input and replays it one event per frame. While
// the queue is non-empty the shell feeds it instead of sampling devices.
type Injector struct {
	queue []syntheticEvent
}

// Pending returns the number of queued events.
func (j *Injector) Pending() int { return len(j.queue) }

// InjectPress queues a left button press at (x, y).
func (j *Injector) InjectPress(x, y float64) {
	j.queue = append(j.queue, syntheticEvent{cursor: Vec2{x, y}, button: MouseButtonLeft, down: true})
}

// InjectMove queues a cursor move to (x, y) with the left button held. Use
// it between InjectPress and InjectRelease to simulate a drag.
func (j *Injector) InjectMove(x, y float64) {
	j.queue = append(j.queue, syntheticEvent{cursor: Vec2{x, y}, button: MouseButtonLeft, down: true})
}

// InjectRelease queues a left button release at (x, y).
func (j *Injector) InjectRelease(x, y float64) {
	j.queue = append(j.queue, syntheticEvent{cursor: Vec2{x, y}, button: MouseButtonLeft})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (j *Injector) InjectClick(x, y float64) {
	j.InjectPress(x, y)
	j.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at from, linearly
// interpolated moves over frames-2 intermediate frames, and release at to.
// The total sequence consumes frames frames; the minimum is 2.
func (j *Injector) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	j.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		j.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	j.InjectRelease(toX, toY)
}

// InjectKey queues a key tap: down for one frame, up the next.
func (j *Injector) InjectKey(k Key) {
	j.queue = append(j.queue,
		syntheticEvent{key: k, down: true},
		syntheticEvent{key: k},
	)
}

// InjectScroll queues one frame of wheel movement.
func (j *Injector) InjectScroll(dx, dy float64) {
	j.queue = append(j.queue, syntheticEvent{scroll: Vec2{dx, dy}})
}

// apply pops one event and feeds it into in. Mouse events carry the cursor;
// key and scroll events leave it where it is. Reports whether an event was
// consumed.
func (j *Injector) apply(in *Input) bool {
	if len(j.queue) == 0 {
		return false
	}
	ev := j.queue[0]
	copy(j.queue, j.queue[1:])
	j.queue = j.queue[:len(j.queue)-1]

	switch {
	case ev.button != MouseButtonUnknown:
		in.SetCursorPosition(ev.cursor)
		in.SetMouseButtonState(ev.button, ev.down)
	case ev.key != KeyUnknown:
		in.SetKeyState(ev.key, ev.down)
	default:
		in.AddScroll(ev.scroll)
	}
	return true
}
