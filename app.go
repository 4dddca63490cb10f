package kala

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// osExit is replaced in tests.
var osExit = os.Exit

// App is the application shell: one main window with its input, driven by
// Ebitengine. It implements ebiten.Game.
//
// Each Update runs strictly in this order: sync the window from the host,
// begin the input frame, step the test script, feed injected input or sample
// devices, apply font reloads, recompute transforms, dispatch events, then
// call OnUpdate. Draw skips idle windows and otherwise renders widgets in
// ascending Z-order.
type App struct {
	Engine *Engine
	Window *Window
	Input  *Input
	Config RunConfig

	// OnUpdate runs at the end of every Update. A non-nil error stops the
	// game loop; return ebiten.Termination for a clean exit.
	OnUpdate func() error

	// ExitWhenScriptDone ends the loop once an attached test script finishes.
	ExitWhenScriptDone bool

	backend    *EbitenBackend
	host       WindowHost
	sampler    InputSampler
	projection ebiten.GeoM

	injector Injector
	runner   *TestRunner
	shots    screenshotQueue
	fonts    *FontWatcher
	font     *Font
	fps      *fpsOverlay
}

// NewApp creates the engine, the main window and its input from cfg. Any
// configured font and test script are loaded; failures are returned so the
// caller can decide whether to ForceClose.
func NewApp(cfg RunConfig) (*App, error) {
	cfg.applyDefaults()

	backend := NewEbitenBackend()
	e := NewEngine(backend)
	e.SetDebugMode(cfg.Debug)

	win, err := e.NewWindow(cfg.Title, Vec2{float64(cfg.Width), float64(cfg.Height)}, nil)
	if err != nil {
		return nil, fmt.Errorf("create main window: %w", err)
	}
	win.IdleWhenUnfocused = !cfg.RunWhenUnfocused

	in, err := e.NewInput(win.ID())
	if err != nil {
		return nil, fmt.Errorf("create input: %w", err)
	}

	a := &App{
		Engine:  e,
		Window:  win,
		Input:   in,
		Config:  cfg,
		backend: backend,
		host:    EbitenHost{},
		sampler: NewEbitenSampler(),
		shots:   screenshotQueue{dir: cfg.ScreenshotDir},
	}
	if cfg.ShowFPS {
		a.fps = newFPSOverlay()
	}

	if cfg.FontPath != "" {
		f, err := e.LoadFont("default", cfg.FontPath)
		if err != nil {
			return nil, err
		}
		a.font = f
	}
	if cfg.Script != "" {
		r, err := LoadTestScriptFile(cfg.Script)
		if err != nil {
			return nil, err
		}
		a.runner = r
		a.ExitWhenScriptDone = true
	}
	if cfg.WatchFonts && a.font != nil {
		fw, err := e.NewFontWatcher()
		if err != nil {
			return nil, err
		}
		a.fonts = fw
	}
	return a, nil
}

// Font returns the font loaded from RunConfig.FontPath, or nil.
func (a *App) Font() *Font { return a.font }

// Injector returns the synthetic input queue.
func (a *App) Injector() *Injector { return &a.injector }

// SetTestRunner attaches a test script. Its step runs at the start of every
// Update.
func (a *App) SetTestRunner(r *TestRunner) { a.runner = r }

// Screenshot queues a labeled screenshot captured at the end of the next Draw.
func (a *App) Screenshot(label string) { a.shots.add(label) }

// SetProjection sets the matrix applied after every widget's model matrix.
func (a *App) SetProjection(m ebiten.GeoM) { a.projection = m }

// SetHost replaces the window host.
func (a *App) SetHost(h WindowHost) { a.host = h }

// SetSampler replaces the device sampler. Nil disables device input.
func (a *App) SetSampler(s InputSampler) { a.sampler = s }

// Update advances one frame.
func (a *App) Update() error {
	a.Window.Sync(a.host)
	a.Input.BeginFrame()

	if a.runner != nil {
		a.runner.step(&a.injector, &a.shots)
	}
	if !a.injector.apply(a.Input) && a.sampler != nil {
		a.sampler.Sample(a.Input)
	}
	if a.fonts != nil {
		a.fonts.Drain(a.Engine)
	}

	if a.fps != nil {
		a.fps.update(1 / float64(a.Config.TPS))
	}

	id := a.Window.ID()
	a.Engine.UpdateTransforms(id)
	a.Engine.PollWindowEvents(id, a.Input)

	if a.OnUpdate != nil {
		if err := a.OnUpdate(); err != nil {
			return err
		}
	}
	if a.ExitWhenScriptDone && a.runner != nil && a.runner.Done() && len(a.shots.labels) == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the main window. Idle windows keep the previous frame.
func (a *App) Draw(screen *ebiten.Image) {
	if a.Window.IsIdle() {
		return
	}
	screen.Fill(a.Config.Background.toNRGBA())
	a.Window.TriggerRedraw()

	a.backend.SetTarget(screen)
	a.Engine.RenderWindow(a.Window.ID(), a.projection)
	a.backend.SetTarget(nil)

	if a.fps != nil {
		a.fps.draw(screen)
	}
	a.shots.flush(screen)
}

// Layout uses the outside size as the logical screen size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Close stops the font watcher and tears the engine down.
func (a *App) Close() {
	if a.fonts != nil {
		if err := a.fonts.Close(); err != nil {
			logger.Warn("font watcher close failed", "component", "app", "err", err)
		}
		a.fonts = nil
	}
	a.Engine.Teardown()
}

// Run opens the main window and runs the game loop until it ends. The screen
// is not cleared automatically so idle frames keep their last image.
func Run(a *App) error {
	cfg := a.Config
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetScreenClearedEveryFrame(false)

	defer a.Close()
	logger.Info("starting", "component", "app", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run %q: %w", cfg.Title, err)
	}
	return nil
}

// ForceClose logs reason and terminates the process with status 1. It is the
// exit path for setup failures the application cannot run without.
func ForceClose(title, reason string) {
	logger.Error("fatal", "component", "app", "title", title, "reason", reason)
	osExit(1)
}

func (c Color) toNRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp(c.R, 0, 1)*255 + 0.5),
		G: uint8(clamp(c.G, 0, 1)*255 + 0.5),
		B: uint8(clamp(c.B, 0, 1)*255 + 0.5),
		A: uint8(clamp(c.A, 0, 1)*255 + 0.5),
	}
}
