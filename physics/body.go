package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Placeable is anything carrying a world position and orientation
type Placeable interface {
	Position() mgl64.Vec3
	SetPosition(mgl64.Vec3)
	Rotation() mgl64.Quat
	SetRotation(mgl64.Quat)
}

// Mass holds the mass parameters of a body
type Mass struct {
	Value float64
}

// BoxMass returns the mass of a solid box of the given density and side lengths
func BoxMass(density float64, size mgl64.Vec3) Mass {
	return Mass{Value: density * math.Abs(size.X()*size.Y()*size.Z())}
}

// SphereMass returns the mass of a solid sphere
func SphereMass(density, radius float64) Mass {
	return Mass{Value: density * 4 / 3 * math.Pi * radius * radius * radius}
}

// Body is a dynamic rigid body owned by a World
// Only linear dynamics are integrated; orientation is carried but never integrated
type Body struct {
	world     *World
	position  mgl64.Vec3
	rotation  mgl64.Quat
	linearVel mgl64.Vec3
	force     mgl64.Vec3
	mass      Mass
	gravity   bool
	enabled   bool
	geoms     []*Geom
}

var _ Placeable = (*Body)(nil)

func (b *Body) Position() mgl64.Vec3     { return b.position }
func (b *Body) SetPosition(p mgl64.Vec3) { b.position = p }
func (b *Body) Rotation() mgl64.Quat     { return b.rotation }

func (b *Body) SetRotation(q mgl64.Quat) {
	b.rotation = q.Normalize()
}

// LinearVel returns the linear velocity
func (b *Body) LinearVel() mgl64.Vec3 { return b.linearVel }

// SetLinearVel overwrites the linear velocity
func (b *Body) SetLinearVel(v mgl64.Vec3) { b.linearVel = v }

// AddForce accumulates a force applied at the centre of mass until the next step
func (b *Body) AddForce(f mgl64.Vec3) { b.force = b.force.Add(f) }

// Force returns the accumulated force
func (b *Body) Force() mgl64.Vec3 { return b.force }

// Mass returns the mass parameters
func (b *Body) Mass() Mass { return b.mass }

// SetMass replaces the mass parameters
func (b *Body) SetMass(m Mass) { b.mass = m }

// GravityMode reports whether world gravity affects the body
func (b *Body) GravityMode() bool { return b.gravity }

// SetGravityMode toggles world gravity for the body
func (b *Body) SetGravityMode(on bool) { b.gravity = on }

// IsEnabled reports whether the body takes part in stepping
func (b *Body) IsEnabled() bool { return b.enabled }

func (b *Body) Enable()  { b.enabled = true }
func (b *Body) Disable() { b.enabled = false }

// Geoms returns the geometries riding on the body
func (b *Body) Geoms() []*Geom {
	return append([]*Geom(nil), b.geoms...)
}

// World returns the owning world, nil once destroyed
func (b *Body) World() *World { return b.world }

// invMass is zero for missing, destroyed, disabled and massless bodies, which makes them immovable in contacts
func (b *Body) invMass() float64 {
	if b == nil || b.world == nil || !b.enabled || b.mass.Value <= 0 {
		return 0
	}
	return 1 / b.mass.Value
}

func (b *Body) velocity() mgl64.Vec3 {
	if b == nil {
		return mgl64.Vec3{}
	}
	return b.linearVel
}

func (b *Body) detachGeom(g *Geom) {
	for i, x := range b.geoms {
		if x == g {
			b.geoms = append(b.geoms[:i], b.geoms[i+1:]...)
			return
		}
	}
}
