package kala

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/kala/kfont"
)

var identity ebiten.GeoM

func triangleGlyph(index uint32, scale float32) kfont.Glyph {
	return kfont.Glyph{
		Index:        index,
		AdvanceWidth: 1,
		Transform:    [4]float32{1, 0, 0, 1},
		Vertices:     []float32{0, 0, scale, 0, 0, scale},
		Indices:      []uint32{0, 1, 2},
	}
}

func writeFontFile(t *testing.T, path string, glyphs []kfont.Glyph) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := kfont.Encode(f, glyphs); err != nil {
		f.Close()
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestTextWidgetUsesGlyphGeometry(t *testing.T) {
	e, be, win := testEngine(t)
	f := e.AddFont("test", []kfont.Glyph{triangleGlyph(0, 1), triangleGlyph(1, 2)})

	w, err := e.NewText(WidgetOptions{WindowID: win.ID(), FontID: f.ID(), GlyphIndex: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Vertices()) != 3 || len(w.Indices()) != 3 {
		t.Fatalf("geometry = %d vertices, %d indices", len(w.Vertices()), len(w.Indices()))
	}
	if w.Vertices()[1] != (Vec2{2, 0}) {
		t.Errorf("vertex 1 = %v, want {2 0}", w.Vertices()[1])
	}
	if !w.Render(identity) {
		t.Fatal("text render failed")
	}
	if len(be.draws) != 1 || be.draws[0].Texture != nil {
		t.Errorf("draws = %+v", be.draws)
	}

	w.SetGlyphIndex(0)
	if w.Vertices()[1] != (Vec2{1, 0}) {
		t.Errorf("after SetGlyphIndex vertex 1 = %v, want {1 0}", w.Vertices()[1])
	}
}

func TestTextWidgetMissingGlyph(t *testing.T) {
	e, be, win := testEngine(t)
	f := e.AddFont("test", []kfont.Glyph{triangleGlyph(0, 1)})

	w, err := e.NewText(WidgetOptions{WindowID: win.ID(), FontID: f.ID(), GlyphIndex: 5})
	if err != nil {
		t.Fatal(err)
	}
	if w.Render(identity) {
		t.Error("render succeeded with an out-of-range glyph")
	}

	noFont, _ := e.NewText(WidgetOptions{WindowID: win.ID(), FontID: 9999})
	if noFont.Render(identity) {
		t.Error("render succeeded without a font")
	}
	if len(be.draws) != 0 {
		t.Errorf("draws = %d, want 0", len(be.draws))
	}
}

func TestFontGlyphBounds(t *testing.T) {
	e := NewEngine(nil)
	f := e.AddFont("test", []kfont.Glyph{triangleGlyph(0, 1)})
	if f.GlyphCount() != 1 {
		t.Errorf("GlyphCount = %d", f.GlyphCount())
	}
	if _, ok := f.Glyph(0); !ok {
		t.Error("glyph 0 missing")
	}
	if _, ok := f.Glyph(1); ok {
		t.Error("glyph 1 present")
	}
	if got, _ := e.Fonts.Get(f.ID()); got != f {
		t.Error("font not registered")
	}
}

func TestLoadFontAndReload(t *testing.T) {
	e, _, win := testEngine(t)
	path := filepath.Join(t.TempDir(), "test.kfont")
	writeFontFile(t, path, []kfont.Glyph{triangleGlyph(0, 1)})

	f, err := e.LoadFont("test", path)
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	if f.Path() != path || f.Name() != "test" {
		t.Errorf("font = %q %q", f.Name(), f.Path())
	}
	w, _ := e.NewText(WidgetOptions{WindowID: win.ID(), FontID: f.ID()})

	writeFontFile(t, path, []kfont.Glyph{triangleGlyph(0, 4), triangleGlyph(1, 1)})
	if n := e.reloadFontsAt(filepath.Clean(path)); n != 1 {
		t.Fatalf("reloaded = %d, want 1", n)
	}
	if f.GlyphCount() != 2 {
		t.Errorf("GlyphCount after reload = %d, want 2", f.GlyphCount())
	}
	if w.Vertices()[1] != (Vec2{4, 0}) {
		t.Errorf("text widget not refreshed: %v", w.Vertices()[1])
	}

	// A broken file keeps the previous glyphs.
	if err := os.WriteFile(path, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := f.Reload(); err == nil {
		t.Error("Reload of a corrupt file succeeded")
	}
	if f.GlyphCount() != 2 {
		t.Errorf("GlyphCount after failed reload = %d, want 2", f.GlyphCount())
	}
}

func TestLoadFontErrors(t *testing.T) {
	e := NewEngine(nil)
	if _, err := e.LoadFont("missing", filepath.Join(t.TempDir(), "none.kfont")); err == nil {
		t.Error("expected error for a missing file")
	}
	if e.Fonts.Len() != 0 {
		t.Error("failed load registered a font")
	}

	f := e.AddFont("mem", []kfont.Glyph{triangleGlyph(0, 1)})
	if err := f.Reload(); err == nil {
		t.Error("Reload of an in-memory font succeeded")
	}
}

func TestFontWatcherReloads(t *testing.T) {
	e := NewEngine(nil)
	path := filepath.Join(t.TempDir(), "watched.kfont")
	writeFontFile(t, path, []kfont.Glyph{triangleGlyph(0, 1)})
	f, err := e.LoadFont("watched", path)
	if err != nil {
		t.Fatal(err)
	}

	fw, err := e.NewFontWatcher()
	if err != nil {
		t.Fatalf("NewFontWatcher: %v", err)
	}
	defer fw.Close()

	writeFontFile(t, path, []kfont.Glyph{triangleGlyph(0, 1), triangleGlyph(1, 1), triangleGlyph(2, 1)})

	deadline := time.Now().Add(5 * time.Second)
	for f.GlyphCount() != 3 && time.Now().Before(deadline) {
		fw.Drain(e)
		time.Sleep(10 * time.Millisecond)
	}
	if f.GlyphCount() != 3 {
		t.Errorf("GlyphCount = %d, want 3 after file change", f.GlyphCount())
	}

	if err := fw.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestLoadFontFailureUsesPackageLogger(t *testing.T) {
	buf := captureLog(t)
	e := NewEngine(nil)
	if _, err := e.LoadFont("missing", filepath.Join(t.TempDir(), "none.kfont")); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(buf.String(), "kfont load failed") {
		t.Errorf("kfont failure not routed through SetLogger: %q", buf)
	}

	SetLogger(nil)
	buf.Reset()
	e.LoadFont("missing", filepath.Join(t.TempDir(), "none.kfont"))
	if buf.Len() != 0 {
		t.Errorf("SetLogger(nil) left kfont output: %q", buf)
	}
}
