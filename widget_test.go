package kala

import (
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewWidgetErrors(t *testing.T) {
	e, _, win := testEngine(t)

	if _, err := e.NewWidget(WidgetKind(9), WidgetOptions{WindowID: win.ID()}); !errors.Is(err, ErrUnknownWidgetKind) {
		t.Errorf("unknown kind err = %v", err)
	}
	if _, err := e.NewImage(WidgetOptions{WindowID: 999}); !errors.Is(err, ErrUnknownWindow) {
		t.Errorf("unknown window err = %v", err)
	}
	if e.Widgets.Len() != 0 {
		t.Errorf("Widgets.Len = %d after failed creates", e.Widgets.Len())
	}
}

func TestNewWidgetDefaults(t *testing.T) {
	e, be, win := testEngine(t)
	w, err := e.NewImage(WidgetOptions{WindowID: win.ID(), Pos: Vec2{10, 20}})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(w.Name(), "image_") {
		t.Errorf("default name = %q", w.Name())
	}
	if !w.CanUpdate() || !w.IsInteractable() || w.IsClipping() {
		t.Error("unexpected default flags")
	}
	if w.Opacity() != 1 {
		t.Errorf("Opacity = %v, want 1", w.Opacity())
	}
	if w.Transform().Size(TargetCombined) != (Vec2{1, 1}) {
		t.Errorf("size = %v, want unit", w.Transform().Size(TargetCombined))
	}
	if w.Transform().Pos(TargetCombined) != (Vec2{10, 20}) {
		t.Errorf("pos = %v, want {10 20}", w.Transform().Pos(TargetCombined))
	}
	if len(w.Vertices()) != 4 || len(w.Indices()) != 6 {
		t.Errorf("quad = %d vertices %d indices", len(w.Vertices()), len(w.Indices()))
	}
	if w.Geometry() == 0 || len(be.live) != 1 {
		t.Errorf("geometry not allocated: id=%d live=%d", w.Geometry(), len(be.live))
	}
	if !e.Transforms2D.Has(w.Transform().ID()) {
		t.Error("transform not registered")
	}
}

func TestWidgetName(t *testing.T) {
	e, _, win := testEngine(t)
	w := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	orig := w.Name()

	tests := []struct {
		name string
		ok   bool
	}{
		{"", false},
		{"a", true},
		{strings.Repeat("x", MaxNameLength), true},
		{strings.Repeat("x", MaxNameLength+1), false},
		{strings.Repeat("é", MaxNameLength), true},
	}
	for _, tt := range tests {
		before := w.Name()
		got := w.SetName(tt.name)
		if got != tt.ok {
			t.Errorf("SetName(len %d) = %v, want %v", len(tt.name), got, tt.ok)
		}
		if !tt.ok && w.Name() != before {
			t.Errorf("rejected name changed %q to %q", before, w.Name())
		}
	}
	if w.Name() == orig {
		t.Error("accepted names did not apply")
	}
}

func TestWidgetColor(t *testing.T) {
	e, _, win := testEngine(t)
	w := testImage(t, e, win, Vec2{}, Vec2{1, 1})

	w.SetNormalizedColor(2, -1, 0.5)
	r, g, b := w.NormalizedColor()
	if r != 1 || g != 0 || b != 0.5 {
		t.Errorf("NormalizedColor = %v %v %v, want clamped 1 0 0.5", r, g, b)
	}

	w.SetRGBColor(255, 128, 0)
	ri, gi, bi := w.RGBColor()
	if ri != 255 || gi != 128 || bi != 0 {
		t.Errorf("RGBColor = %d %d %d, want 255 128 0", ri, gi, bi)
	}

	w.SetOpacity(1.5)
	if w.Opacity() != 1 {
		t.Errorf("Opacity = %v, want 1", w.Opacity())
	}
	w.SetOpacity(-1)
	if w.Opacity() != 0 {
		t.Errorf("Opacity = %v, want 0", w.Opacity())
	}
}

func TestWidgetZOrder(t *testing.T) {
	e, _, win := testEngine(t)
	a := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	b := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	c := testImage(t, e, win, Vec2{}, Vec2{1, 1})

	b.MoveAbove(a)
	c.MoveAbove(b)
	if !(a.ZOrder() < b.ZOrder() && b.ZOrder() < c.ZOrder()) {
		t.Errorf("z = %d %d %d, want strictly increasing", a.ZOrder(), b.ZOrder(), c.ZOrder())
	}

	// target at 0: no-op
	before := c.ZOrder()
	c.MoveBelow(a)
	if c.ZOrder() != before {
		t.Errorf("MoveBelow(z=0) changed z to %d", c.ZOrder())
	}

	a.MoveBelow(c)
	if a.ZOrder() != c.ZOrder()-1 {
		t.Errorf("MoveBelow: z = %d, want %d", a.ZOrder(), c.ZOrder()-1)
	}

	c.MoveAbove(c)
	c.MoveAbove(nil)
	if c.ZOrder() != before {
		t.Error("MoveAbove on self or nil changed z")
	}

	a.SetZOrder(MaxZOrder + 10)
	if a.ZOrder() != MaxZOrder {
		t.Errorf("z = %d, want clamped to %d", a.ZOrder(), MaxZOrder)
	}
	a.SetZOrder(-5)
	if a.ZOrder() != 0 {
		t.Errorf("z = %d, want 0", a.ZOrder())
	}
}

func TestWidgetMoveWidget(t *testing.T) {
	e, _, win := testEngine(t)
	w := testImage(t, e, win, Vec2{}, Vec2{10, 10})

	w.MoveWidget(Vec2{800, 600}, Vec2{1, 1})
	if got := w.Transform().Pos(TargetWorld); got != (Vec2{400, 300}) {
		t.Errorf("centered pos = %v, want {400 300}", got)
	}
	w.MoveWidget(Vec2{800, 600}, Vec2{10, -10})
	if got := w.Transform().Pos(TargetWorld); got != (Vec2{800 * MaxViewportOffset / 2, 600 * MinViewportOffset / 2}) {
		t.Errorf("clamped pos = %v", got)
	}
}

func TestWidgetAABB(t *testing.T) {
	e, _, win := testEngine(t)
	w := testImage(t, e, win, Vec2{100, 50}, Vec2{40, 20})
	want := Rect{X: 80, Y: 40, Width: 40, Height: 20}
	if got := w.AABB(); got != want {
		t.Errorf("AABB = %+v, want %+v", got, want)
	}
}

func TestWidgetRender(t *testing.T) {
	var identity ebiten.GeoM

	t.Run("draws textured image", func(t *testing.T) {
		e, be, win := testEngine(t)
		w := testImage(t, e, win, Vec2{50, 50}, Vec2{10, 10})
		w.SetOpacity(0.5)
		if !w.Render(identity) {
			t.Fatal("Render = false")
		}
		if len(be.draws) != 1 {
			t.Fatalf("draws = %d, want 1", len(be.draws))
		}
		cmd := be.draws[0]
		if cmd.Opacity != 0.5 || cmd.Color.A != 1 || cmd.Clip != nil {
			t.Errorf("cmd = %+v", cmd)
		}
		// local (0.5, 0.5) lands on the bottom-right corner
		x, y := cmd.GeoM.Apply(0.5, 0.5)
		if !approxEqual(x, 55, 1e-9) || !approxEqual(y, 55, 1e-9) {
			t.Errorf("corner = (%v, %v), want (55, 55)", x, y)
		}
	})

	t.Run("image without texture fails", func(t *testing.T) {
		e, be, win := testEngine(t)
		w, _ := e.NewImage(WidgetOptions{WindowID: win.ID()})
		if w.Render(identity) {
			t.Error("Render = true without texture")
		}
		if len(be.draws) != 0 {
			t.Error("draw submitted")
		}
	})

	t.Run("cannot update is skipped", func(t *testing.T) {
		e, be, win := testEngine(t)
		w := testImage(t, e, win, Vec2{}, Vec2{1, 1})
		w.SetCanUpdate(false)
		if !w.Render(identity) {
			t.Error("Render = false for a hidden widget")
		}
		if len(be.draws) != 0 {
			t.Error("hidden widget drew")
		}
	})

	t.Run("draw error fails", func(t *testing.T) {
		e, be, win := testEngine(t)
		w := testImage(t, e, win, Vec2{}, Vec2{1, 1})
		be.failDraw = errDrawFailed
		if w.Render(identity) {
			t.Error("Render = true on draw error")
		}
	})

	t.Run("nil backend fails", func(t *testing.T) {
		e := NewEngine(nil)
		win, _ := e.NewWindow("w", Vec2{10, 10}, nil)
		w := testImage(t, e, win, Vec2{}, Vec2{1, 1})
		if w.Render(identity) {
			t.Error("Render = true without backend")
		}
	})

	t.Run("disposed fails", func(t *testing.T) {
		e, _, win := testEngine(t)
		w := testImage(t, e, win, Vec2{}, Vec2{1, 1})
		e.Widgets.Remove(w.ID())
		if w.Render(identity) {
			t.Error("Render = true after dispose")
		}
	})
}

func TestWidgetRenderClipping(t *testing.T) {
	var identity ebiten.GeoM
	e, be, win := testEngine(t)
	parent := testImage(t, e, win, Vec2{50, 50}, Vec2{20, 20})
	parent.SetClipping(true)
	child, err := e.NewImage(WidgetOptions{
		WindowID: win.ID(),
		Parent:   parent,
		Texture:  testTexture(e, win.ID()),
	})
	if err != nil {
		t.Fatal(err)
	}

	if !child.Render(identity) {
		t.Fatal("Render = false")
	}
	cmd := be.draws[len(be.draws)-1]
	if cmd.Clip == nil {
		t.Fatal("no clip rectangle")
	}
	if *cmd.Clip != parent.AABB() {
		t.Errorf("clip = %+v, want %+v", *cmd.Clip, parent.AABB())
	}
}

func TestRenderWindowOrder(t *testing.T) {
	var identity ebiten.GeoM
	e, be, win := testEngine(t)
	top := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	bottom := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	broken, _ := e.NewImage(WidgetOptions{WindowID: win.ID()}) // no texture
	top.SetZOrder(5)
	broken.SetZOrder(3)

	other, _ := e.NewWindow("other", Vec2{10, 10}, nil)
	testImage(t, e, other, Vec2{}, Vec2{1, 1})

	if failed := e.RenderWindow(win.ID(), identity); failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if len(be.draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(be.draws))
	}
	if be.draws[0].Geometry != bottom.Geometry() || be.draws[1].Geometry != top.Geometry() {
		t.Error("widgets not drawn in ascending Z-order")
	}
}

func TestWidgetDisposeReleasesResources(t *testing.T) {
	e, be, win := testEngine(t)
	w := testImage(t, e, win, Vec2{}, Vec2{1, 1})
	w.SetMouseEvent(func(EventContext) {}, MouseButtonLeft, ActionPressed)
	tid := w.Transform().ID()

	w.Dispose()
	if !w.IsDisposed() || e.Widgets.Has(w.ID()) {
		t.Error("widget still registered after Dispose")
	}
	if e.Transforms2D.Has(tid) {
		t.Error("transform still registered")
	}
	if len(be.live) != 0 {
		t.Errorf("live geometry = %d, want 0", len(be.live))
	}
	if w.HasEvent(ActionPressed) {
		t.Error("events not cleared")
	}
}
