package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Surface parameters of a contact joint
type Surface struct {
	Mu     float64 // Coulomb friction coefficient, math.Inf(1) for no slip
	Bounce float64 // restitution in [0, 1]
}

// DefaultSurface matches the engine's contact defaults
var DefaultSurface = Surface{Mu: 10000, Bounce: 0}

// ContactJoint constrains two bodies at one contact for one step
type ContactJoint struct {
	contact Contact
	surface Surface
	a, b    *Body

	target      float64 // desired separating velocity along the normal
	accumulated float64 // clamped accumulated normal impulse
}

// Contact returns the contact the joint was built from
func (j *ContactJoint) Contact() Contact { return j.contact }

// prepare fixes the velocity target for this step from penetration and incoming speed
func (j *ContactJoint) prepare(dt, erp float64) {
	n := j.contact.Normal
	vn := j.a.velocity().Sub(j.b.velocity()).Dot(n)
	bias := erp * math.Max(j.contact.Depth, 0) / dt
	j.target = math.Max(-j.surface.Bounce*vn, bias)
	j.accumulated = 0
}

// solve applies one sequential-impulse pass, the constraint form of an elastic collision response
func (j *ContactJoint) solve(cfm float64) {
	invA, invB := j.a.invMass(), j.b.invMass()
	denom := invA + invB + cfm
	if invA+invB == 0 {
		return
	}
	n := j.contact.Normal

	rel := j.a.velocity().Sub(j.b.velocity())
	vn := rel.Dot(n)
	lambda := (j.target - vn) / denom
	acc := math.Max(j.accumulated+lambda, 0)
	lambda, j.accumulated = acc-j.accumulated, acc
	j.apply(n.Mul(lambda), invA, invB)

	// Friction opposes tangential slip, bounded by mu times the normal impulse
	rel = j.a.velocity().Sub(j.b.velocity())
	vt := rel.Sub(n.Mul(rel.Dot(n)))
	speed := vt.Len()
	if speed < contactEpsilon || j.accumulated == 0 {
		return
	}
	jt := math.Min(speed/denom, j.surface.Mu*j.accumulated)
	j.apply(vt.Mul(-jt/speed), invA, invB)
}

func (j *ContactJoint) apply(impulse mgl64.Vec3, invA, invB float64) {
	if invA > 0 {
		j.a.linearVel = j.a.linearVel.Add(impulse.Mul(invA))
	}
	if invB > 0 {
		j.b.linearVel = j.b.linearVel.Sub(impulse.Mul(invB))
	}
}

// ContactGroup collects the contact joints created during one collision pass
type ContactGroup struct {
	world  *World
	joints []*ContactJoint
}

// Add creates a contact joint for c
// Contacts where neither geom rides a body are ignored
func (g *ContactGroup) Add(c Contact, s Surface) {
	a, b := c.A.Body(), c.B.Body()
	if a == nil && b == nil {
		return
	}
	g.joints = append(g.joints, &ContactJoint{
		contact: c,
		surface: s,
		a:       a,
		b:       b,
	})
}

// Len returns the number of joints in the group
func (g *ContactGroup) Len() int { return len(g.joints) }

// Joints returns the joints in creation order
func (g *ContactGroup) Joints() []*ContactJoint {
	return append([]*ContactJoint(nil), g.joints...)
}

// Empty removes all joints
func (g *ContactGroup) Empty() {
	clear(g.joints)
	g.joints = g.joints[:0]
}

func (g *ContactGroup) dropBody(b *Body) {
	for _, j := range g.joints {
		if j.a == b {
			j.a = nil
		}
		if j.b == b {
			j.b = nil
		}
	}
}
