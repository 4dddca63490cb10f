package kala

// EventContext is passed to every bound widget callback.
type EventContext struct {
	Widget  *Widget
	Action  ActionTarget
	Cursor  Vec2        // cursor position in window coordinates
	Delta   Vec2        // cursor movement since the previous frame
	Scroll  Vec2        // wheel movement this frame
	Hovered bool        // widget is the topmost interactable widget under the cursor
	Key     Key         // bound key, KeyUnknown for mouse bindings
	Button  MouseButton // bound button, MouseButtonUnknown for key bindings
}

// WidgetEvent is the value form of a fired action, delivered to an EventSink.
type WidgetEvent struct {
	WidgetID uint32
	WindowID uint32
	Name     string
	Action   ActionTarget
	Cursor   Vec2
	Delta    Vec2
	Scroll   Vec2
	Key      Key
	Button   MouseButton
}

// EventSink receives every fired widget action as a WidgetEvent. It lets
// application logic consume interaction as a queue instead of callbacks.
type EventSink interface {
	EmitEvent(event WidgetEvent)
}

// SetMouseEvent binds fn to button for action. Only pressed, released, held
// and dragged accept mouse bindings; other actions are ignored. Binding
// replaces any previous callback and key for that action.
func (w *Widget) SetMouseEvent(fn func(EventContext), button MouseButton, action ActionTarget) {
	switch action {
	case ActionPressed, ActionReleased, ActionHeld, ActionDragged:
	default:
		return
	}
	if fn == nil || button == MouseButtonUnknown || button >= mouseButtonCount {
		return
	}
	w.events[action] = binding{fn: fn, mouse: button}
}

// SetKeyEvent binds fn to key for action. Only pressed, released and held
// accept key bindings. Binding replaces any previous callback and button.
func (w *Widget) SetKeyEvent(fn func(EventContext), key Key, action ActionTarget) {
	switch action {
	case ActionPressed, ActionReleased, ActionHeld:
	default:
		return
	}
	if fn == nil || key == KeyUnknown || key >= keyCount {
		return
	}
	w.events[action] = binding{fn: fn, key: key}
}

// SetHoverEvent binds fn to run every frame the widget is hovered.
func (w *Widget) SetHoverEvent(fn func(EventContext)) {
	if fn == nil {
		return
	}
	w.events[ActionHovered] = binding{fn: fn}
}

// SetScrollEvent binds fn to run every frame the wheel moves.
func (w *Widget) SetScrollEvent(fn func(EventContext)) {
	if fn == nil {
		return
	}
	w.events[ActionScrolled] = binding{fn: fn}
}

// ClearEvent removes the binding for action.
func (w *Widget) ClearEvent(action ActionTarget) {
	if action < actionCount {
		w.events[action] = binding{}
	}
}

// ClearAllEvents removes every binding.
func (w *Widget) ClearAllEvents() {
	w.events = [actionCount]binding{}
}

// HasEvent reports whether a callback is bound for action.
func (w *Widget) HasEvent(action ActionTarget) bool {
	return action < actionCount && w.events[action].fn != nil
}

// MouseEventButton returns the mouse button bound to action, or
// MouseButtonUnknown.
func (w *Widget) MouseEventButton(action ActionTarget) MouseButton {
	if action >= actionCount {
		return MouseButtonUnknown
	}
	return w.events[action].mouse
}

// KeyEventButton returns the key bound to action, or KeyUnknown.
func (w *Widget) KeyEventButton(action ActionTarget) Key {
	if action >= actionCount {
		return KeyUnknown
	}
	return w.events[action].key
}

// PollEvents resolves the widget's own hover state against in and fires its
// bound callbacks. Prefer Engine.PollWindowEvents, which resolves hover once
// for the whole window.
func (w *Widget) PollEvents(in InputSource) {
	if in == nil || w.disposed {
		return
	}
	top := w.engine.TopWidget(w.windowID, in.CursorPosition())
	w.hovered = top == w
	w.pollEvents(in)
}

// pollEvents fires bindings using the hover state already resolved this frame.
// Mouse bindings only fire on the hovered widget, so covered widgets and
// widgets away from the cursor ignore clicks. Key and scroll bindings are
// window-wide. A drag starts with a press on the hovered widget and follows
// the cursor until the button is released.
func (w *Widget) pollEvents(in InputSource) {
	if !w.interactable {
		w.hovered = false
		w.dragging = false
		return
	}

	for _, action := range [...]ActionTarget{ActionPressed, ActionReleased, ActionHeld} {
		b := w.events[action]
		if b.fn == nil {
			continue
		}
		if b.mouse != MouseButtonUnknown && !w.hovered {
			continue
		}
		if inputState(in, action, b) {
			w.fire(action, b, in)
		}
		if w.disposed {
			return
		}
	}

	if b := w.events[ActionDragged]; b.fn != nil && b.mouse != MouseButtonUnknown {
		switch {
		case in.IsMouseButtonPressed(b.mouse):
			w.dragging = w.hovered
		case !in.IsMouseButtonHeld(b.mouse):
			w.dragging = false
		}
		if w.dragging && in.IsMouseButtonDragging(b.mouse) {
			w.fire(ActionDragged, b, in)
		}
	}
	if w.disposed {
		return
	}

	if b := w.events[ActionHovered]; b.fn != nil && w.hovered {
		w.fire(ActionHovered, b, in)
	}
	if w.disposed {
		return
	}

	if b := w.events[ActionScrolled]; b.fn != nil && !in.ScrollDelta().IsZero() {
		w.fire(ActionScrolled, b, in)
	}
}

// IsDragging reports whether a drag that started on the widget is in progress.
func (w *Widget) IsDragging() bool { return w.dragging }

func inputState(in InputSource, action ActionTarget, b binding) bool {
	switch {
	case b.key != KeyUnknown:
		switch action {
		case ActionPressed:
			return in.IsKeyPressed(b.key)
		case ActionReleased:
			return in.IsKeyReleased(b.key)
		case ActionHeld:
			return in.IsKeyHeld(b.key)
		}
	case b.mouse != MouseButtonUnknown:
		switch action {
		case ActionPressed:
			return in.IsMouseButtonPressed(b.mouse)
		case ActionReleased:
			return in.IsMouseButtonReleased(b.mouse)
		case ActionHeld:
			return in.IsMouseButtonHeld(b.mouse)
		}
	}
	return false
}

func (w *Widget) fire(action ActionTarget, b binding, in InputSource) {
	ctx := EventContext{
		Widget:  w,
		Action:  action,
		Cursor:  in.CursorPosition(),
		Delta:   in.MouseDelta(),
		Scroll:  in.ScrollDelta(),
		Hovered: w.hovered,
		Key:     b.key,
		Button:  b.mouse,
	}
	b.fn(ctx)

	if sink := w.engine.sink; sink != nil {
		sink.EmitEvent(WidgetEvent{
			WidgetID: w.id,
			WindowID: w.windowID,
			Name:     w.name,
			Action:   action,
			Cursor:   ctx.Cursor,
			Delta:    ctx.Delta,
			Scroll:   ctx.Scroll,
			Key:      b.key,
			Button:   b.mouse,
		})
	}
}
