package kala

import (
	"fmt"

	"github.com/phanxgames/kala/kfont"
)

// Font is a loaded glyph set. Fonts are shared across windows.
type Font struct {
	id     uint32
	name   string
	path   string
	glyphs []kfont.Glyph
}

// LoadFont decodes the .kfont file at path and stores it in the registry.
func (e *Engine) LoadFont(name, path string) (*Font, error) {
	glyphs, err := kfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", name, err)
	}
	f := e.AddFont(name, glyphs)
	f.path = path
	return f, nil
}

// AddFont stores an already decoded glyph set.
func (e *Engine) AddFont(name string, glyphs []kfont.Glyph) *Font {
	f := &Font{id: e.NextID(), name: name, glyphs: glyphs}
	e.Fonts.Add(f.id, f)
	return f
}

// ID returns the font's registry ID.
func (f *Font) ID() uint32 { return f.id }

// Name returns the font's name.
func (f *Font) Name() string { return f.name }

// Path returns the file the font was loaded from, or "".
func (f *Font) Path() string { return f.path }

// GlyphCount returns the number of glyph records.
func (f *Font) GlyphCount() int { return len(f.glyphs) }

// Glyph returns the glyph record at i.
func (f *Font) Glyph(i uint32) (kfont.Glyph, bool) {
	if int64(i) >= int64(len(f.glyphs)) {
		return kfont.Glyph{}, false
	}
	return f.glyphs[i], true
}

// Reload re-reads the font file. On failure the previous glyphs are kept.
func (f *Font) Reload() error {
	if f.path == "" {
		return fmt.Errorf("reload font %q: not loaded from a file", f.name)
	}
	glyphs, err := kfont.Load(f.path)
	if err != nil {
		return fmt.Errorf("reload font %q: %w", f.name, err)
	}
	f.glyphs = glyphs
	return nil
}

// glyph resolves the text widget's glyph record.
func (w *Widget) glyph() (kfont.Glyph, bool) {
	f, ok := w.engine.Fonts.Get(w.fontID)
	if !ok {
		return kfont.Glyph{}, false
	}
	return f.Glyph(w.glyphIndex)
}

// glyphGeometry converts a glyph record into widget vertices and indices.
// Glyphs without usable geometry yield nil slices.
func glyphGeometry(g kfont.Glyph) ([]Vec2, []uint32) {
	n := g.VertexCount()
	if n == 0 || len(g.Indices) == 0 {
		return nil, nil
	}
	vs := make([]Vec2, n)
	for i := range vs {
		vs[i] = Vec2{float64(g.Vertices[2*i]), float64(g.Vertices[2*i+1])}
	}
	return vs, append([]uint32(nil), g.Indices...)
}
