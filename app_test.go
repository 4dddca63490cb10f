package kala

import (
	"errors"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func testApp(t *testing.T) *App {
	t.Helper()
	a, err := NewApp(DefaultRunConfig())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	a.SetHost(&fakeHost{size: Vec2{DefaultWidth, DefaultHeight}, focused: true})
	a.SetSampler(nil)
	t.Cleanup(a.Close)
	return a
}

func TestNewAppDefaults(t *testing.T) {
	a := testApp(t)
	if a.Window.Title() != DefaultTitle {
		t.Errorf("title = %q, want %q", a.Window.Title(), DefaultTitle)
	}
	if a.Window.ClientSize() != (Vec2{DefaultWidth, DefaultHeight}) {
		t.Errorf("size = %v", a.Window.ClientSize())
	}
	if a.Input == nil || a.Input.WindowID() != a.Window.ID() {
		t.Error("input not bound to the main window")
	}
	if a.Font() != nil || a.fps != nil || a.runner != nil {
		t.Error("optional features enabled by default")
	}
	if w, h := a.Layout(320, 240); w != 320 || h != 240 {
		t.Errorf("Layout = %d,%d", w, h)
	}
}

func TestNewAppErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"missing font", RunConfig{FontPath: filepath.Join(dir, "none.kfont")}},
		{"missing script", RunConfig{Script: filepath.Join(dir, "none.json")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewApp(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestAppUpdateDispatchesInjectedClick(t *testing.T) {
	a := testApp(t)
	w := testImage(t, a.Engine, a.Window, Vec2{100, 100}, Vec2{50, 50})

	var pressed, released int
	w.SetMouseEvent(func(EventContext) { pressed++ }, MouseButtonLeft, ActionPressed)
	w.SetMouseEvent(func(EventContext) { released++ }, MouseButtonLeft, ActionReleased)

	a.Injector().InjectClick(100, 100)
	for i := 0; i < 3; i++ {
		if err := a.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if pressed != 1 || released != 1 {
		t.Errorf("pressed=%d released=%d, want 1 1", pressed, released)
	}
}

func TestAppUpdateSyncsWindow(t *testing.T) {
	a := testApp(t)
	host := &fakeHost{size: Vec2{1024, 768}, focused: false}
	a.SetHost(host)

	resized := 0
	a.Window.SetResizeCallback(func(Vec2) { resized++ })
	if err := a.Update(); err != nil {
		t.Fatal(err)
	}
	if resized != 1 || a.Window.ClientSize() != (Vec2{1024, 768}) {
		t.Errorf("resized=%d size=%v", resized, a.Window.ClientSize())
	}
	if !a.Window.IsIdle() {
		t.Error("unfocused main window not idle")
	}
}

func TestAppOnUpdateError(t *testing.T) {
	a := testApp(t)
	errStop := errors.New("stop")
	calls := 0
	a.OnUpdate = func() error {
		calls++
		return errStop
	}
	if err := a.Update(); !errors.Is(err, errStop) {
		t.Errorf("Update err = %v, want errStop", err)
	}
	if calls != 1 {
		t.Errorf("OnUpdate calls = %d", calls)
	}
}

func TestAppExitsWhenScriptDone(t *testing.T) {
	a := testApp(t)
	r, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 1, "y": 1}, {"action": "wait", "frames": 1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	a.SetTestRunner(r)
	a.ExitWhenScriptDone = true

	for i := 0; i < 10; i++ {
		err := a.Update()
		if errors.Is(err, ebiten.Termination) {
			return
		}
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	t.Error("loop did not terminate after the script finished")
}

func TestAppCloseTearsDown(t *testing.T) {
	a, err := NewApp(DefaultRunConfig())
	if err != nil {
		t.Fatal(err)
	}
	testImage(t, a.Engine, a.Window, Vec2{}, Vec2{1, 1})
	a.Close()
	if a.Engine.Widgets.Len() != 0 || a.Engine.Windows.Len() != 0 {
		t.Error("engine not torn down")
	}
}

func TestForceClose(t *testing.T) {
	orig := osExit
	defer func() { osExit = orig }()
	code := -1
	osExit = func(c int) { code = c }

	ForceClose("test", "boom")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestColorToNRGBA(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: -1, A: 2}.toNRGBA()
	want := color.NRGBA{R: 255, G: 128, B: 0, A: 255}
	if got != want {
		t.Errorf("toNRGBA = %+v, want %+v", got, want)
	}
}

func TestFPSOverlayRefreshFollowsTicks(t *testing.T) {
	o := newFPSOverlay()
	if !o.stale {
		t.Fatal("new overlay has no pending refresh")
	}
	o.stale = false

	o.update(0.25)
	if o.stale {
		t.Error("refreshed before the interval")
	}
	o.update(0.25)
	if !o.stale || o.elapsed != 0 {
		t.Errorf("stale=%v elapsed=%v after the interval", o.stale, o.elapsed)
	}
}

func TestAppAdvancesFPSOverlayInUpdate(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.ShowFPS = true
	cfg.TPS = 4 // quarter-second ticks sum exactly
	a, err := NewApp(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(a.Close)
	a.SetHost(&fakeHost{size: Vec2{DefaultWidth, DefaultHeight}, focused: true})
	a.SetSampler(nil)
	a.fps.stale = false

	ticks := int(fpsRefresh * float64(cfg.TPS))
	for i := 0; i < ticks-1; i++ {
		if err := a.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if a.fps.stale {
		t.Errorf("overlay refreshed after %d ticks", ticks-1)
	}
	if err := a.Update(); err != nil {
		t.Fatal(err)
	}
	if !a.fps.stale {
		t.Errorf("overlay not refreshed after %d ticks", ticks)
	}
}
