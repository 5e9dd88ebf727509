package component

import (
	"github.com/lixenwraith/ngine/engine"
	"github.com/lixenwraith/ngine/render"
)

// DefaultDensity is the rigidbody density used by the primitive builders
const DefaultDensity = 10

// NewCubePrimitive adds a solid dynamic cube under the scene root
// A nil transform means the identity placement
func NewCubePrimitive(s *engine.Scene, name string, t *engine.Transform, color render.Color, density float64) (*engine.Entity, error) {
	if t == nil {
		t = engine.NewTransform()
	}
	return s.NewEntity(name, t, engine.NewRigidbody(density), NewCube(color), engine.NewBoxCollider())
}

// NewSpherePrimitive adds a solid dynamic sphere under the scene root
func NewSpherePrimitive(s *engine.Scene, name string, t *engine.Transform, color render.Color, density float64) (*engine.Entity, error) {
	if t == nil {
		t = engine.NewTransform()
	}
	return s.NewEntity(name, t, engine.NewRigidbody(density), NewSphere(color), engine.NewSphereCollider())
}
