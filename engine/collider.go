package engine

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/ngine/physics"
)

// Collider gives its entity a collision geometry
// Box and sphere geometries are sized from the transform scale at start; a sphere's
// diameter is the X scale. A geometry co-present with a Rigidbody rides its body
type Collider struct {
	BaseComponent

	kind   physics.GeomKind
	params []float64
	geom   *physics.Geom
}

// NewCollider creates a collider of any kind; unsupported kinds fail at start
func NewCollider(kind physics.GeomKind) *Collider {
	return &Collider{kind: kind}
}

func NewBoxCollider() *Collider    { return NewCollider(physics.GeomBox) }
func NewSphereCollider() *Collider { return NewCollider(physics.GeomSphere) }

// NewPlaneCollider creates a static plane normal·p = offset
func NewPlaneCollider(normal mgl64.Vec3, offset float64) *Collider {
	return &Collider{
		kind:   physics.GeomPlane,
		params: []float64{normal.X(), normal.Y(), normal.Z(), offset},
	}
}

func (c *Collider) Kind() physics.GeomKind { return c.kind }

// Geom returns the geometry, nil until started and after removal
func (c *Collider) Geom() *physics.Geom { return c.geom }

func (c *Collider) Start() error {
	e := c.Entity()
	s := e.scene
	if s == nil {
		return ErrNoScene
	}
	t := e.transform

	g, err := s.space.NewGeom(c.kind, c.shape(t)...)
	if err != nil {
		return fmt.Errorf("collider: %w", err)
	}
	g.Data = e
	if g.Placeable() {
		g.SetPosition(t.Position())
		g.SetRotation(t.Rotation())
	}
	if rb := e.rigidbody; rb != nil && rb.body != nil {
		g.SetBody(rb.body)
	}
	c.geom = g
	if g.Placeable() {
		t.bindGeom(g)
	}

	s.logger.Debug("geom created", zap.Stringer("entity", e), zap.Stringer("kind", c.kind))
	return nil
}

// shape returns the geometry parameters, derived from t's scale unless given explicitly
func (c *Collider) shape(t *Transform) []float64 {
	if c.params != nil {
		return c.params
	}
	scale := t.Scale()
	switch c.kind {
	case physics.GeomBox:
		return []float64{scale.X(), scale.Y(), scale.Z()}
	case physics.GeomSphere:
		return []float64{scale.X() / 2}
	}
	return nil
}

// OnRemove destroys the geometry; any body is left untouched
func (c *Collider) OnRemove() {
	g := c.geom
	if g == nil {
		return
	}
	c.geom = nil

	if t := c.Transform(); t != nil {
		t.unbindGeom(g)
	}
	if s := c.Scene(); s != nil {
		s.space.Destroy(g)
		s.logger.Debug("geom released", zap.Stringer("entity", c.Entity()))
	}
}
