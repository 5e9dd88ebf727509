package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// GeomKind identifies a collision shape
type GeomKind int

const (
	GeomBox GeomKind = iota
	GeomSphere
	GeomPlane
)

var geomKindNames = [...]string{"box", "sphere", "plane"}

func (k GeomKind) String() string {
	if k >= 0 && int(k) < len(geomKindNames) {
		return geomKindNames[k]
	}
	return fmt.Sprintf("GeomKind(%d)", int(k))
}

// AABB is an axis-aligned bounding box
type AABB struct {
	Min, Max mgl64.Vec3
}

// Overlaps reports whether two boxes intersect or touch
func (a AABB) Overlaps(b AABB) bool {
	for i := range 3 {
		if a.Max[i] < b.Min[i]-contactEpsilon || b.Max[i] < a.Min[i]-contactEpsilon {
			return false
		}
	}
	return true
}

// Geom is a collision shape living in a Space, optionally riding a Body
type Geom struct {
	space *Space
	kind  GeomKind

	size   mgl64.Vec3 // box side lengths
	radius float64    // sphere
	normal mgl64.Vec3 // plane: normal·p = offset
	offset float64

	body     *Body
	position mgl64.Vec3
	rotation mgl64.Quat

	// Data carries the owner, the engine stores the entity here
	Data any
}

var _ Placeable = (*Geom)(nil)

func (g *Geom) Kind() GeomKind { return g.kind }

// Size returns the box side lengths
func (g *Geom) Size() mgl64.Vec3 { return g.size }

// Radius returns the sphere radius
func (g *Geom) Radius() float64 { return g.radius }

// Plane returns the unit normal and offset of a plane geom
func (g *Geom) Plane() (mgl64.Vec3, float64) { return g.normal, g.offset }

// SetParams reshapes the geom with the parameters NewGeom takes for its kind
// On error the geom keeps its previous shape
func (g *Geom) SetParams(params ...float64) error {
	switch g.kind {
	case GeomBox:
		if len(params) != 3 || params[0] <= 0 || params[1] <= 0 || params[2] <= 0 {
			return fmt.Errorf("%w: box needs 3 positive sides, got %v", ErrGeomParams, params)
		}
		g.size = mgl64.Vec3{params[0], params[1], params[2]}
	case GeomSphere:
		if len(params) != 1 || params[0] <= 0 {
			return fmt.Errorf("%w: sphere needs a positive radius, got %v", ErrGeomParams, params)
		}
		g.radius = params[0]
	case GeomPlane:
		if len(params) != 4 {
			return fmt.Errorf("%w: plane needs 4 parameters, got %v", ErrGeomParams, params)
		}
		n := mgl64.Vec3{params[0], params[1], params[2]}
		l := n.Len()
		if l == 0 {
			return fmt.Errorf("%w: plane normal is zero", ErrGeomParams)
		}
		g.normal = n.Mul(1 / l)
		g.offset = params[3] / l
	default:
		return fmt.Errorf("%w: %v", ErrUnknownGeomKind, g.kind)
	}
	return nil
}

// Placeable reports whether the geom has a position; planes do not
func (g *Geom) Placeable() bool { return g.kind != GeomPlane }

// Alive reports whether the geom still belongs to a space
func (g *Geom) Alive() bool { return g.space != nil }

// Body returns the body the geom rides on, nil when static
func (g *Geom) Body() *Body { return g.body }

// SetBody attaches the geom to b
// Detaching (b == nil) leaves the geom at the body's last placement
func (g *Geom) SetBody(b *Body) {
	if g.body == b {
		return
	}
	if old := g.body; old != nil {
		g.position = old.position
		g.rotation = old.rotation
		old.detachGeom(g)
	}
	g.body = b
	if b != nil {
		b.geoms = append(b.geoms, g)
	}
}

func (g *Geom) Position() mgl64.Vec3 {
	if g.body != nil {
		return g.body.position
	}
	return g.position
}

func (g *Geom) SetPosition(p mgl64.Vec3) {
	if !g.Placeable() {
		return
	}
	if g.body != nil {
		g.body.SetPosition(p)
		return
	}
	g.position = p
}

func (g *Geom) Rotation() mgl64.Quat {
	if g.body != nil {
		return g.body.rotation
	}
	return g.rotation
}

func (g *Geom) SetRotation(q mgl64.Quat) {
	if !g.Placeable() {
		return
	}
	if g.body != nil {
		g.body.SetRotation(q)
		return
	}
	g.rotation = q.Normalize()
}

// AABB returns the world-space bounds; planes are unbounded
func (g *Geom) AABB() AABB {
	switch g.kind {
	case GeomSphere:
		r := mgl64.Vec3{g.radius, g.radius, g.radius}
		p := g.Position()
		return AABB{Min: p.Sub(r), Max: p.Add(r)}
	case GeomBox:
		e := g.halfExtents()
		p := g.Position()
		return AABB{Min: p.Sub(e), Max: p.Add(e)}
	default:
		inf := math.Inf(1)
		return AABB{
			Min: mgl64.Vec3{-inf, -inf, -inf},
			Max: mgl64.Vec3{inf, inf, inf},
		}
	}
}

// halfExtents returns the world-axis half extents of a possibly rotated box
func (g *Geom) halfExtents() mgl64.Vec3 {
	h := g.size.Mul(0.5)
	m := g.Rotation().Mat4().Mat3()
	var e mgl64.Vec3
	for i := range 3 {
		for j := range 3 {
			e[i] += math.Abs(m.At(i, j)) * h[j]
		}
	}
	return e
}

// axes returns the box's local axes in world space
func (g *Geom) axes() [3]mgl64.Vec3 {
	q := g.Rotation()
	return [3]mgl64.Vec3{
		q.Rotate(mgl64.Vec3{1, 0, 0}),
		q.Rotate(mgl64.Vec3{0, 1, 0}),
		q.Rotate(mgl64.Vec3{0, 0, 1}),
	}
}
