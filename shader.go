package kala

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Shader is a compiled Kage program owned by a window.
type Shader struct {
	id       uint32
	windowID uint32
	name     string
	shader   *ebiten.Shader

	// Uniforms are passed to every draw that uses this shader.
	Uniforms map[string]any
}

// NewShader compiles Kage source for windowID and stores it in the registry.
func (e *Engine) NewShader(windowID uint32, name string, src []byte) (*Shader, error) {
	if !e.Windows.Has(windowID) {
		return nil, fmt.Errorf("new shader %q: %w: %d", name, ErrUnknownWindow, windowID)
	}
	compiled, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("new shader %q: %w", name, err)
	}
	s := &Shader{
		id:       e.NextID(),
		windowID: windowID,
		name:     name,
		shader:   compiled,
		Uniforms: map[string]any{},
	}
	e.Shaders.Add(s.id, s)
	return s, nil
}

// ID returns the shader's registry ID.
func (s *Shader) ID() uint32 { return s.id }

// WindowID returns the owning window.
func (s *Shader) WindowID() uint32 { return s.windowID }

// Name returns the shader's name.
func (s *Shader) Name() string { return s.name }

// Dispose frees the compiled program.
func (s *Shader) Dispose() {
	if s.shader != nil {
		s.shader.Deallocate()
		s.shader = nil
	}
}
