package engine

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ngine/physics"
	"github.com/lixenwraith/ngine/vmath"
)

// Anchor is where a Transform's placement lives
type Anchor uint8

const (
	// AnchorDetached: position and rotation are the locally cached values
	AnchorDetached Anchor = iota
	// AnchorGeom: placement is owned by a static collision geometry
	AnchorGeom
	// AnchorBody: placement is owned by a dynamic body
	AnchorBody
)

func (a Anchor) String() string {
	switch a {
	case AnchorGeom:
		return "geom"
	case AnchorBody:
		return "body"
	default:
		return "detached"
	}
}

// Transform holds an entity's position, rotation and scale
// While a physics handle is bound, placement reads and writes go through it and the local
// values only cache the last known placement
type Transform struct {
	BaseComponent

	position mgl64.Vec3
	rotation mgl64.Quat
	scale    mgl64.Vec3

	body *physics.Body
	geom *physics.Geom
}

type TransformOption func(*Transform)

func WithPosition(p mgl64.Vec3) TransformOption {
	return func(t *Transform) { t.position = p }
}

func WithRotation(q mgl64.Quat) TransformOption {
	return func(t *Transform) { t.rotation = q.Normalize() }
}

func WithScale(s mgl64.Vec3) TransformOption {
	return func(t *Transform) { t.scale = s }
}

// NewTransform creates a transform at the origin with identity rotation and unit scale
func NewTransform(opts ...TransformOption) *Transform {
	t := &Transform{
		rotation: mgl64.QuatIdent(),
		scale:    mgl64.Vec3{1, 1, 1},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Anchor reports the current backing store
func (t *Transform) Anchor() Anchor {
	switch {
	case t.body != nil:
		return AnchorBody
	case t.geom != nil:
		return AnchorGeom
	default:
		return AnchorDetached
	}
}

func (t *Transform) Position() mgl64.Vec3 {
	switch t.Anchor() {
	case AnchorBody:
		return t.body.Position()
	case AnchorGeom:
		return t.geom.Position()
	}
	return t.position
}

func (t *Transform) SetPosition(p mgl64.Vec3) {
	switch t.Anchor() {
	case AnchorBody:
		t.body.SetPosition(p)
	case AnchorGeom:
		t.geom.SetPosition(p)
	}
	t.position = p
}

func (t *Transform) Rotation() mgl64.Quat {
	switch t.Anchor() {
	case AnchorBody:
		return t.body.Rotation()
	case AnchorGeom:
		return t.geom.Rotation()
	}
	return t.rotation
}

func (t *Transform) SetRotation(q mgl64.Quat) {
	q = q.Normalize()
	switch t.Anchor() {
	case AnchorBody:
		t.body.SetRotation(q)
	case AnchorGeom:
		t.geom.SetRotation(q)
	}
	t.rotation = q
}

// Scale is never delegated; physics handles are sized from it once at start
func (t *Transform) Scale() mgl64.Vec3     { return t.scale }
func (t *Transform) SetScale(s mgl64.Vec3) { t.scale = s }

// Translate moves by d in world space
func (t *Transform) Translate(d mgl64.Vec3) {
	t.SetPosition(t.Position().Add(d))
}

// Rotate applies a world-space rotation of angle radians about axis
func (t *Transform) Rotate(axis mgl64.Vec3, angle float64) {
	t.SetRotation(vmath.AxisAngle(axis, angle).Mul(t.Rotation()))
}

// Forward returns the local forward axis in world space
func (t *Transform) Forward() mgl64.Vec3 { return t.Rotation().Rotate(vmath.Forward) }
func (t *Transform) Up() mgl64.Vec3      { return t.Rotation().Rotate(vmath.Up) }
func (t *Transform) Right() mgl64.Vec3   { return t.Rotation().Rotate(vmath.Right) }

// Matrix returns the model matrix
func (t *Transform) Matrix() mgl64.Mat4 {
	return vmath.TRS(t.Position(), t.Rotation(), t.scale)
}

// Start binds a replacement transform to the handles already on the entity, pushing its placement into them
// The geometry is reshaped and the body mass recomputed from the new scale
func (t *Transform) Start() error {
	e := t.Entity()
	if c := e.collider; c != nil && c.geom != nil && c.params == nil {
		if err := c.geom.SetParams(c.shape(t)...); err != nil {
			return fmt.Errorf("transform: %w", err)
		}
	}
	if rb := e.rigidbody; rb != nil && rb.body != nil {
		rb.body.SetMass(physics.BoxMass(rb.density, t.scale))
		rb.body.SetPosition(t.position)
		rb.body.SetRotation(t.rotation)
		t.bindBody(rb.body)
	}
	if c := e.collider; c != nil && c.geom != nil && c.geom.Placeable() {
		if c.geom.Body() == nil {
			c.geom.SetPosition(t.position)
			c.geom.SetRotation(t.rotation)
		}
		t.bindGeom(c.geom)
	}
	return nil
}

// OnRemove falls back to cached placement
func (t *Transform) OnRemove() {
	t.unbindBody(t.body)
	t.unbindGeom(t.geom)
}

func (t *Transform) bindBody(b *physics.Body) { t.body = b }

// unbindBody caches b's placement and drops it, only if b is the bound body
func (t *Transform) unbindBody(b *physics.Body) {
	if b == nil || t.body != b {
		return
	}
	t.position = b.Position()
	t.rotation = b.Rotation()
	t.body = nil
}

func (t *Transform) bindGeom(g *physics.Geom) { t.geom = g }

func (t *Transform) unbindGeom(g *physics.Geom) {
	if g == nil || t.geom != g {
		return
	}
	if t.body == nil {
		t.position = g.Position()
		t.rotation = g.Rotation()
	}
	t.geom = nil
}
