package kala

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// GeometryID is an opaque backend handle to uploaded geometry. 0 is invalid.
type GeometryID uint32

// DrawCommand describes one widget draw.
type DrawCommand struct {
	Geometry GeometryID
	GeoM     ebiten.GeoM // local vertex space to target pixels
	Color    Color       // RGB tint, straight alpha
	Opacity  float64
	Texture  *Texture // nil draws untextured
	Shader   *Shader  // nil uses the default pipeline
	Clip     *Rect    // target-space clip rectangle, nil for none
}

// Backend is the graphics service widgets render through.
type Backend interface {
	CreateGeometry(vertices []Vec2, indices []uint32) (GeometryID, error)
	DestroyGeometry(id GeometryID)
	Draw(cmd DrawCommand) error
}

// Backend errors.
var (
	ErrNoTarget        = errors.New("kala: backend has no render target")
	ErrUnknownGeometry = errors.New("kala: unknown geometry")
	ErrBadGeometry     = errors.New("kala: malformed geometry")
)

type geometry struct {
	vertices []Vec2
	indices  []uint16
	bounds   Rect // local-space bounds, used to derive texture coordinates
	scratch  []ebiten.Vertex
}

// EbitenBackend draws geometry with ebiten.Image.DrawTriangles. Set the frame
// target with SetTarget before rendering.
type EbitenBackend struct {
	next       GeometryID
	geometries map[GeometryID]*geometry
	target     *ebiten.Image
	white      *ebiten.Image
}

// NewEbitenBackend creates a backend with no target.
func NewEbitenBackend() *EbitenBackend {
	return &EbitenBackend{geometries: make(map[GeometryID]*geometry)}
}

// SetTarget sets the image subsequent draws render into.
func (b *EbitenBackend) SetTarget(img *ebiten.Image) { b.target = img }

// CreateGeometry stores a triangle list. Indices must reference existing
// vertices, come in groups of three and fit in 16 bits.
func (b *EbitenBackend) CreateGeometry(vertices []Vec2, indices []uint32) (GeometryID, error) {
	if len(vertices) == 0 || len(indices) == 0 || len(indices)%3 != 0 {
		return 0, fmt.Errorf("%w: %d vertices, %d indices", ErrBadGeometry, len(vertices), len(indices))
	}
	if len(vertices) > math.MaxUint16+1 {
		return 0, fmt.Errorf("%w: %d vertices exceed 16-bit indices", ErrBadGeometry, len(vertices))
	}
	idx := make([]uint16, len(indices))
	for i, v := range indices {
		if int(v) >= len(vertices) {
			return 0, fmt.Errorf("%w: index %d out of range", ErrBadGeometry, v)
		}
		idx[i] = uint16(v)
	}

	b.next++
	id := b.next
	b.geometries[id] = &geometry{
		vertices: append([]Vec2(nil), vertices...),
		indices:  idx,
		bounds:   vertexBounds(vertices),
		scratch:  make([]ebiten.Vertex, len(vertices)),
	}
	return id, nil
}

// DestroyGeometry releases id. Unknown IDs are ignored.
func (b *EbitenBackend) DestroyGeometry(id GeometryID) {
	delete(b.geometries, id)
}

// Draw renders cmd into the current target.
func (b *EbitenBackend) Draw(cmd DrawCommand) error {
	if b.target == nil {
		return ErrNoTarget
	}
	g, ok := b.geometries[cmd.Geometry]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownGeometry, cmd.Geometry)
	}

	src := b.whitePixel()
	if cmd.Texture != nil && cmd.Texture.image != nil {
		src = cmd.Texture.image
	}
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()

	// premultiplied tint
	a := float32(clamp(cmd.Color.A*cmd.Opacity, 0, 1))
	r := float32(cmd.Color.R) * a
	gr := float32(cmd.Color.G) * a
	bl := float32(cmd.Color.B) * a

	for i, v := range g.vertices {
		x, y := cmd.GeoM.Apply(v.X, v.Y)
		u, w := uvInRect(g.bounds, v)
		g.scratch[i] = ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   float32(u * float64(sw)),
			SrcY:   float32(w * float64(sh)),
			ColorR: r,
			ColorG: gr,
			ColorB: bl,
			ColorA: a,
		}
	}

	dst := b.target
	if cmd.Clip != nil {
		clip := image.Rect(
			int(math.Floor(cmd.Clip.X)), int(math.Floor(cmd.Clip.Y)),
			int(math.Ceil(cmd.Clip.X+cmd.Clip.Width)), int(math.Ceil(cmd.Clip.Y+cmd.Clip.Height)),
		)
		sub, ok := dst.SubImage(clip).(*ebiten.Image)
		if !ok || sub.Bounds().Empty() {
			return nil
		}
		dst = sub
	}

	if cmd.Shader != nil && cmd.Shader.shader != nil {
		op := &ebiten.DrawTrianglesShaderOptions{Uniforms: cmd.Shader.Uniforms}
		op.Images[0] = src
		dst.DrawTrianglesShader(g.scratch, g.indices, cmd.Shader.shader, op)
		return nil
	}

	op := &ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha}
	if cmd.Texture != nil {
		op.Filter = ebiten.FilterLinear
	}
	dst.DrawTriangles(g.scratch, g.indices, src, op)
	return nil
}

// Len returns the number of live geometries.
func (b *EbitenBackend) Len() int { return len(b.geometries) }

func (b *EbitenBackend) whitePixel() *ebiten.Image {
	if b.white == nil {
		b.white = ebiten.NewImage(1, 1)
		b.white.Fill(color.White)
	}
	return b.white
}

// vertexBounds returns the local-space AABB of vs.
func vertexBounds(vs []Vec2) Rect {
	if len(vs) == 0 {
		return Rect{}
	}
	minX, minY := vs[0].X, vs[0].Y
	maxX, maxY := minX, minY
	for _, v := range vs[1:] {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
