// Package component provides reusable renderable and behaviour components for engine entities
package component

import (
	"github.com/lixenwraith/ngine/engine"
	"github.com/lixenwraith/ngine/mesh"
	"github.com/lixenwraith/ngine/render"
)

// shape draws a display list compiled on first render with the owner's transform
type shape struct {
	engine.BaseComponent

	Color render.Color

	build    func() []render.Primitive
	list     render.ListID
	renderer render.Renderer
}

// List returns the compiled display list, NoList before the first render
func (s *shape) List() render.ListID { return s.list }

func (s *shape) Render(r render.Renderer) {
	t := s.Transform()
	if t == nil {
		return
	}
	if s.list == render.NoList || s.renderer != r {
		s.release()
		s.list = r.CompileList(s.build())
		s.renderer = r
	}
	r.PushMatrix()
	r.MultMatrix(t.Matrix())
	r.SetColor(s.Color)
	r.CallList(s.list)
	r.PopMatrix()
}

func (s *shape) OnRemove() { s.release() }

func (s *shape) release() {
	if s.list != render.NoList && s.renderer != nil {
		s.renderer.DeleteList(s.list)
	}
	s.list = render.NoList
	s.renderer = nil
}

// Cube renders a unit cube scaled by the transform
type Cube struct{ shape }

func NewCube(color render.Color) *Cube {
	return &Cube{shape{Color: color, build: render.CubeMesh}}
}

// Sphere renders a unit-diameter sphere
type Sphere struct{ shape }

func NewSphere(color render.Color) *Sphere {
	return &Sphere{shape{Color: color, build: func() []render.Primitive {
		return render.SphereMesh(render.SphereSlices, render.SphereStacks)
	}}}
}

// Torus renders a torus fitted to a unit box, inner and outer being relative tube and ring sizes
type Torus struct {
	shape
	Inner, Outer float64
}

func NewTorus(inner, outer float64, color render.Color) *Torus {
	t := &Torus{Inner: inner, Outer: outer}
	t.shape = shape{Color: color, build: t.primitives}
	return t
}

func (t *Torus) primitives() []render.Primitive {
	f := t.Inner + t.Outer*2
	if f <= 0 {
		f = 1
	}
	return render.TorusMesh(t.Inner/(f*2), t.Outer/f, render.TorusSides, render.TorusRings)
}

// Mesh renders a loaded model; faces keep their material colours
type Mesh struct {
	shape
	model *mesh.Model
}

func NewMesh(m *mesh.Model) *Mesh {
	c := &Mesh{model: m}
	c.shape = shape{Color: mesh.DefaultColor, build: m.Primitives}
	return c
}

// Model returns the rendered model
func (m *Mesh) Model() *mesh.Model { return m.model }
