// Package kfont reads and writes .kfont glyph files.
//
// A .kfont file is a little-endian tagged container:
//
//	"KFNT" u32 version u32 glyphCount
//	glyphCount × {
//	    "GLYF" u32 index f32 advance f32 leftSideBearing
//	           f32 anchorX f32 anchorY f32 m00 f32 m01 f32 m10 f32 m11
//	    "VERT" u32 vertexCount  vertexCount × {f32 x, f32 y}
//	    "INDI" u32 indexCount   indexCount × u32
//	}
//
// Decoding is all-or-nothing: any failure returns no glyphs.
package kfont

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
)

// Version is the only supported file version.
const Version = 1

// Extension is the required file extension for Load.
const Extension = ".kfont"

// Decoder limits. Counts above these are rejected before allocation.
const (
	MaxGlyphs   = 1 << 16
	MaxVertices = 1 << 20
	MaxIndices  = 3 << 20
)

var (
	magicFont   = [4]byte{'K', 'F', 'N', 'T'}
	tagGlyph    = [4]byte{'G', 'L', 'Y', 'F'}
	tagVertices = [4]byte{'V', 'E', 'R', 'T'}
	tagIndices  = [4]byte{'I', 'N', 'D', 'I'}
)

// Decode errors.
var (
	ErrBadMagic     = errors.New("kfont: bad magic")
	ErrBadVersion   = errors.New("kfont: unsupported version")
	ErrNoGlyphs     = errors.New("kfont: glyph count is zero")
	ErrBadTag       = errors.New("kfont: unexpected block tag")
	ErrTooLarge     = errors.New("kfont: count exceeds limit")
	ErrNonFinite    = errors.New("kfont: non-finite float")
	ErrBadExtension = errors.New("kfont: file extension is not .kfont")
	ErrNotRegular   = errors.New("kfont: not a regular file")
)

// Glyph is one decoded glyph record. Vertices holds x, y pairs.
type Glyph struct {
	Index           uint32
	AdvanceWidth    float32
	LeftSideBearing float32
	Anchor          [2]float32
	Transform       [4]float32 // row-major 2×2: m00 m01 m10 m11
	Vertices        []float32
	Indices         []uint32
}

// VertexCount returns the number of x, y pairs.
func (g *Glyph) VertexCount() int { return len(g.Vertices) / 2 }

var logger = slog.Default()

// SetLogger routes Load failures to l. Passing nil discards them.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = l
}

// Load validates path and decodes the file. The file must exist, be a
// regular file and carry the .kfont extension.
func Load(path string) ([]Glyph, error) {
	glyphs, err := load(path)
	if err != nil {
		logger.Error("kfont load failed", "component", "kfont", "path", path, "err", err)
		return nil, err
	}
	return glyphs, nil
}

func load(path string) ([]Glyph, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("kfont: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	if filepath.Ext(path) != Extension {
		return nil, fmt.Errorf("%w: %s", ErrBadExtension, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("kfont: %w", err)
	}
	defer f.Close()

	return Decode(bufio.NewReader(f))
}

// Decode reads a complete glyph set from r.
func Decode(r io.Reader) ([]Glyph, error) {
	d := &decoder{r: r}

	if tag := d.tag(); d.err == nil && tag != magicFont {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, tag[:])
	}
	version := d.u32()
	if d.err == nil && version != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}
	count := d.u32()
	if d.err != nil {
		return nil, d.failure("header")
	}
	if count == 0 {
		return nil, ErrNoGlyphs
	}
	if count > MaxGlyphs {
		return nil, fmt.Errorf("%w: %d glyphs", ErrTooLarge, count)
	}

	glyphs := make([]Glyph, 0, count)
	for i := uint32(0); i < count; i++ {
		g, err := d.glyph(i)
		if err != nil {
			return nil, err
		}
		glyphs = append(glyphs, g)
	}
	return glyphs, nil
}

type decoder struct {
	r   io.Reader
	buf [4]byte
	err error
}

func (d *decoder) read() bool {
	if d.err != nil {
		return false
	}
	_, d.err = io.ReadFull(d.r, d.buf[:])
	return d.err == nil
}

func (d *decoder) tag() [4]byte {
	if !d.read() {
		return [4]byte{}
	}
	return d.buf
}

func (d *decoder) u32() uint32 {
	if !d.read() {
		return 0
	}
	return binary.LittleEndian.Uint32(d.buf[:])
}

func (d *decoder) f32() float32 {
	v := math.Float32frombits(d.u32())
	if d.err == nil && (math32.IsNaN(v) || math32.IsInf(v, 0)) {
		d.err = ErrNonFinite
	}
	return v
}

// failure converts the sticky read error into a decode error for where.
func (d *decoder) failure(where string) error {
	err := d.err
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("kfont: %s: %w", where, err)
}

func (d *decoder) expect(want [4]byte, glyph uint32) error {
	got := d.tag()
	if d.err != nil {
		return d.failure(fmt.Sprintf("glyph %d", glyph))
	}
	if got != want {
		return fmt.Errorf("%w: glyph %d: want %q, got %q", ErrBadTag, glyph, want[:], got[:])
	}
	return nil
}

func (d *decoder) glyph(i uint32) (Glyph, error) {
	var g Glyph
	if err := d.expect(tagGlyph, i); err != nil {
		return g, err
	}
	g.Index = d.u32()
	g.AdvanceWidth = d.f32()
	g.LeftSideBearing = d.f32()
	g.Anchor[0] = d.f32()
	g.Anchor[1] = d.f32()
	for k := range g.Transform {
		g.Transform[k] = d.f32()
	}
	if d.err != nil {
		return g, d.failure(fmt.Sprintf("glyph %d", i))
	}

	if err := d.expect(tagVertices, i); err != nil {
		return g, err
	}
	nv := d.u32()
	if d.err != nil {
		return g, d.failure(fmt.Sprintf("glyph %d vertices", i))
	}
	if nv > MaxVertices {
		return g, fmt.Errorf("%w: glyph %d: %d vertices", ErrTooLarge, i, nv)
	}
	g.Vertices = make([]float32, 2*nv)
	for k := range g.Vertices {
		g.Vertices[k] = d.f32()
	}
	if d.err != nil {
		return g, d.failure(fmt.Sprintf("glyph %d vertices", i))
	}

	if err := d.expect(tagIndices, i); err != nil {
		return g, err
	}
	ni := d.u32()
	if d.err != nil {
		return g, d.failure(fmt.Sprintf("glyph %d indices", i))
	}
	if ni > MaxIndices {
		return g, fmt.Errorf("%w: glyph %d: %d indices", ErrTooLarge, i, ni)
	}
	g.Indices = make([]uint32, ni)
	for k := range g.Indices {
		g.Indices[k] = d.u32()
	}
	if d.err != nil {
		return g, d.failure(fmt.Sprintf("glyph %d indices", i))
	}
	return g, nil
}

// Encode writes glyphs to w in the version 1 layout.
func Encode(w io.Writer, glyphs []Glyph) error {
	if len(glyphs) == 0 {
		return ErrNoGlyphs
	}
	bw := bufio.NewWriter(w)
	le := binary.LittleEndian

	put := func(v any) {
		// bufio.Writer keeps the first error; checked at Flush.
		_ = binary.Write(bw, le, v)
	}

	put(magicFont)
	put(uint32(Version))
	put(uint32(len(glyphs)))
	for i := range glyphs {
		g := &glyphs[i]
		if len(g.Vertices)%2 != 0 {
			return fmt.Errorf("kfont: glyph %d: odd vertex component count %d", i, len(g.Vertices))
		}
		put(tagGlyph)
		put(g.Index)
		put(g.AdvanceWidth)
		put(g.LeftSideBearing)
		put(g.Anchor)
		put(g.Transform)
		put(tagVertices)
		put(uint32(len(g.Vertices) / 2))
		put(g.Vertices)
		put(tagIndices)
		put(uint32(len(g.Indices)))
		put(g.Indices)
	}
	return bw.Flush()
}
