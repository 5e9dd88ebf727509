package engine

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/ngine/physics"
)

// Rigidbody gives its entity a dynamic physics body
// The body is created in Start with a box mass from density and the transform scale
type Rigidbody struct {
	BaseComponent

	density    float64
	useGravity bool
	body       *physics.Body
}

func NewRigidbody(density float64) *Rigidbody {
	return &Rigidbody{density: density, useGravity: true}
}

func (r *Rigidbody) Density() float64 { return r.density }

// Body returns the physics body, nil until started and after removal
func (r *Rigidbody) Body() *physics.Body { return r.body }

func (r *Rigidbody) Start() error {
	e := r.Entity()
	s := e.scene
	if s == nil {
		return ErrNoScene
	}
	t := e.transform

	body := s.world.NewBody()
	body.SetMass(physics.BoxMass(r.density, t.Scale()))
	body.SetPosition(t.Position())
	body.SetRotation(t.Rotation())
	body.SetGravityMode(r.useGravity)
	r.body = body

	t.bindBody(body)
	if c := e.collider; c != nil && c.geom != nil {
		c.geom.SetBody(body)
	}

	s.logger.Debug("body created",
		zap.Stringer("entity", e),
		zap.Float64("mass", body.Mass().Value))
	return nil
}

// OnRemove leaves the transform on its last placement and the collider as a static geom, then destroys the body
func (r *Rigidbody) OnRemove() {
	body := r.body
	if body == nil {
		return
	}
	r.body = nil

	if t := r.Transform(); t != nil {
		t.unbindBody(body)
	}
	for _, g := range body.Geoms() {
		g.SetBody(nil)
	}
	if w := body.World(); w != nil {
		w.DestroyBody(body)
	}
	r.Scene().logger.Debug("body released", zap.Stringer("entity", r.Entity()))
}

// AddForce accumulates a force for the next physics step
func (r *Rigidbody) AddForce(f mgl64.Vec3) {
	if r.body != nil {
		r.body.AddForce(f)
	}
}

func (r *Rigidbody) Velocity() mgl64.Vec3 {
	if r.body == nil {
		return mgl64.Vec3{}
	}
	return r.body.LinearVel()
}

func (r *Rigidbody) SetVelocity(v mgl64.Vec3) {
	if r.body != nil {
		r.body.SetLinearVel(v)
	}
}

func (r *Rigidbody) UseGravity() bool { return r.useGravity }

func (r *Rigidbody) SetUseGravity(on bool) {
	r.useGravity = on
	if r.body != nil {
		r.body.SetGravityMode(on)
	}
}

// IsEnabled reports whether the body exists and is simulated
func (r *Rigidbody) IsEnabled() bool { return r.body != nil && r.body.IsEnabled() }

func (r *Rigidbody) SetEnabled(on bool) {
	if r.body == nil {
		return
	}
	if on {
		r.body.Enable()
	} else {
		r.body.Disable()
	}
}
