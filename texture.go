package kala

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png" // PNG decoding for LoadTexture
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is a window-owned GPU image plus a CPU copy of its alpha channel
// used by HitTexture hit-testing.
type Texture struct {
	id       uint32
	windowID uint32
	name     string
	path     string

	image  *ebiten.Image
	alpha  *image.Alpha
	width  int
	height int
}

// NewTexture uploads img for windowID and stores it in the registry.
func (e *Engine) NewTexture(windowID uint32, name string, img image.Image) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("new texture %q: nil image", name)
	}
	if !e.Windows.Has(windowID) {
		return nil, fmt.Errorf("new texture %q: %w: %d", name, ErrUnknownWindow, windowID)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("new texture %q: empty image", name)
	}

	alpha := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(alpha, alpha.Bounds(), img, b.Min, draw.Src)

	t := &Texture{
		id:       e.NextID(),
		windowID: windowID,
		name:     name,
		image:    ebiten.NewImageFromImage(img),
		alpha:    alpha,
		width:    b.Dx(),
		height:   b.Dy(),
	}
	e.Textures.Add(t.id, t)
	return t, nil
}

// LoadTexture decodes the image file at path and uploads it for windowID.
func (e *Engine) LoadTexture(windowID uint32, name, path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load texture %q: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load texture %q: decode %s: %w", name, path, err)
	}
	t, err := e.NewTexture(windowID, name, img)
	if err != nil {
		return nil, err
	}
	t.path = path
	return t, nil
}

// ID returns the texture's registry ID.
func (t *Texture) ID() uint32 { return t.id }

// WindowID returns the owning window.
func (t *Texture) WindowID() uint32 { return t.windowID }

// Name returns the texture's name.
func (t *Texture) Name() string { return t.name }

// Path returns the file the texture was loaded from, or "".
func (t *Texture) Path() string { return t.path }

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (w, h int) { return t.width, t.height }

// Image returns the GPU image. Nil after disposal.
func (t *Texture) Image() *ebiten.Image { return t.image }

// opaqueAt reports whether the pixel at normalized (u, v) has non-zero alpha.
func (t *Texture) opaqueAt(u, v float64) bool {
	if t.alpha == nil || t.width == 0 || t.height == 0 {
		return false
	}
	x := min(int(u*float64(t.width)), t.width-1)
	y := min(int(v*float64(t.height)), t.height-1)
	return t.alpha.AlphaAt(x, y).A > 0
}

// Dispose frees the GPU image.
func (t *Texture) Dispose() {
	if t.image != nil {
		t.image.Deallocate()
		t.image = nil
	}
	t.alpha = nil
}
