package physics

import "github.com/go-gl/mathgl/mgl64"

// Default world parameters
const (
	DefaultERP = 0.8
	DefaultCFM = 1e-5
)

// DefaultGravity is earth gravity along -Y
var DefaultGravity = mgl64.Vec3{0, -9.8, 0}

// solverIterations is the number of sequential-impulse passes over the contact joints per step
const solverIterations = 8

// World owns bodies and integrates them
type World struct {
	gravity mgl64.Vec3
	erp     float64
	cfm     float64
	bodies  []*Body
	groups  []*ContactGroup
}

// NewWorld creates a world
// erp is the fraction of penetration corrected per step, cfm softens contacts
func NewWorld(gravity mgl64.Vec3, erp, cfm float64) *World {
	return &World{
		gravity: gravity,
		erp:     erp,
		cfm:     cfm,
	}
}

func (w *World) Gravity() mgl64.Vec3     { return w.gravity }
func (w *World) SetGravity(g mgl64.Vec3) { w.gravity = g }
func (w *World) ERP() float64            { return w.erp }
func (w *World) SetERP(erp float64)      { w.erp = erp }
func (w *World) CFM() float64            { return w.cfm }
func (w *World) SetCFM(cfm float64)      { w.cfm = cfm }

// NewBody creates an enabled, gravity-affected body at the origin with zero mass
func (w *World) NewBody() *Body {
	b := &Body{
		world:    w,
		rotation: mgl64.QuatIdent(),
		gravity:  true,
		enabled:  true,
	}
	w.bodies = append(w.bodies, b)
	return b
}

// DestroyBody removes b from the world
// Geoms riding on b stay where the body was and become static
func (w *World) DestroyBody(b *Body) {
	if b == nil || b.world != w {
		return
	}
	for _, g := range b.Geoms() {
		g.SetBody(nil)
	}
	for i, x := range w.bodies {
		if x == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	for _, grp := range w.groups {
		grp.dropBody(b)
	}
	b.world = nil
}

// Bodies returns the live bodies
func (w *World) Bodies() []*Body {
	return append([]*Body(nil), w.bodies...)
}

// NewContactGroup creates a contact joint group whose joints constrain this world's steps
func (w *World) NewContactGroup() *ContactGroup {
	g := &ContactGroup{world: w}
	w.groups = append(w.groups, g)
	return g
}

// Step advances the simulation by dt seconds:
// accumulate forces and gravity into velocities, solve contact joints, integrate positions, clear forces
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	for _, b := range w.bodies {
		inv := b.invMass()
		if inv == 0 {
			continue
		}
		accel := b.force.Mul(inv)
		if b.gravity {
			accel = accel.Add(w.gravity)
		}
		b.linearVel = b.linearVel.Add(accel.Mul(dt))
	}

	joints := w.joints()
	for _, j := range joints {
		j.prepare(dt, w.erp)
	}
	for range solverIterations {
		for _, j := range joints {
			j.solve(w.cfm)
		}
	}

	for _, b := range w.bodies {
		if b.invMass() == 0 {
			b.force = mgl64.Vec3{}
			continue
		}
		b.position = b.position.Add(b.linearVel.Mul(dt))
		b.force = mgl64.Vec3{}
	}
}

func (w *World) joints() []*ContactJoint {
	var out []*ContactJoint
	for _, g := range w.groups {
		out = append(out, g.joints...)
	}
	return out
}
