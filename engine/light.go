package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ngine/render"
)

// LightNone is the unit of a light that did not get a renderer light unit; such a light is inert
const LightNone = -1

// Light illuminates the scene from its entity's position, or along SpotDirection when Directional
type Light struct {
	BaseComponent

	Ambient       render.Color
	Diffuse       render.Color
	Specular      render.Color
	SpotDirection mgl64.Vec3
	Directional   bool

	unit int
}

// NewLight creates a white point light
func NewLight() *Light {
	return &Light{
		Ambient:       render.RGBA(0, 0, 0, 1),
		Diffuse:       render.White,
		Specular:      render.White,
		SpotDirection: mgl64.Vec3{0, 0, -1},
		unit:          LightNone,
	}
}

// NewDirectionalLight creates a white light shining along dir
func NewDirectionalLight(dir mgl64.Vec3) *Light {
	l := NewLight()
	l.Directional = true
	l.SpotDirection = dir
	return l
}

// Unit returns the renderer light unit, LightNone when unassigned
func (l *Light) Unit() int { return l.unit }

// Params returns the renderer parameters for the current placement
func (l *Light) Params() render.LightParams {
	p := render.LightParams{
		Ambient:       l.Ambient,
		Diffuse:       l.Diffuse,
		Specular:      l.Specular,
		SpotDirection: l.SpotDirection,
	}
	if l.Directional {
		// Directional lights point towards the source
		d := l.SpotDirection.Mul(-1)
		p.Position = d.Vec4(0)
	} else if t := l.Transform(); t != nil {
		p.Position = t.Position().Vec4(1)
	} else {
		p.Position = mgl64.Vec4{0, 0, 0, 1}
	}
	return p
}

// Enable activates the light's unit; inert lights do nothing
func (l *Light) Enable(r render.Renderer) {
	if l.unit == LightNone {
		return
	}
	r.EnableLight(l.unit, l.Params())
}

func (l *Light) Disable(r render.Renderer) {
	if l.unit == LightNone {
		return
	}
	r.DisableLight(l.unit)
}
