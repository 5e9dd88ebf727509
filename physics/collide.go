package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// contactEpsilon lets resting shapes that merely touch still produce a contact
const contactEpsilon = 1e-6

// Contact is a single contact point between two geoms
// Normal points from B towards A, pushing A out of B
type Contact struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	Depth    float64
	A, B     *Geom
}

// flip swaps the roles of the two geoms
func (c Contact) flip() Contact {
	c.A, c.B = c.B, c.A
	c.Normal = c.Normal.Mul(-1)
	return c
}

// Collide runs the narrow phase for a pair and returns at most one contact
func Collide(a, b *Geom) []Contact {
	if a == nil || b == nil || a == b {
		return nil
	}

	var (
		c  Contact
		ok bool
	)
	switch {
	case a.kind == GeomSphere && b.kind == GeomSphere:
		c, ok = sphereSphere(a, b)
	case a.kind == GeomSphere && b.kind == GeomBox:
		c, ok = sphereBox(a, b)
	case a.kind == GeomBox && b.kind == GeomSphere:
		c, ok = sphereBox(b, a)
		c = c.flip()
	case a.kind == GeomBox && b.kind == GeomBox:
		c, ok = boxBox(a, b)
	case a.kind == GeomSphere && b.kind == GeomPlane:
		c, ok = spherePlane(a, b)
	case a.kind == GeomPlane && b.kind == GeomSphere:
		c, ok = spherePlane(b, a)
		c = c.flip()
	case a.kind == GeomBox && b.kind == GeomPlane:
		c, ok = boxPlane(a, b)
	case a.kind == GeomPlane && b.kind == GeomBox:
		c, ok = boxPlane(b, a)
		c = c.flip()
	}
	if !ok {
		return nil
	}
	return []Contact{c}
}

func sphereSphere(a, b *Geom) (Contact, bool) {
	pa, pb := a.Position(), b.Position()
	d := pa.Sub(pb)
	dist := d.Len()
	depth := a.radius + b.radius - dist
	if depth < -contactEpsilon {
		return Contact{}, false
	}

	n := mgl64.Vec3{0, 1, 0}
	if dist > 0 {
		n = d.Mul(1 / dist)
	}
	return Contact{
		Position: pb.Add(n.Mul(b.radius - depth/2)),
		Normal:   n,
		Depth:    depth,
		A:        a,
		B:        b,
	}, true
}

// sphereBox handles a rotated box by working in its local frame
func sphereBox(s, box *Geom) (Contact, bool) {
	center := s.Position()
	bp := box.Position()
	rot := box.Rotation()
	local := rot.Inverse().Rotate(center.Sub(bp))
	h := box.size.Mul(0.5)

	inside := true
	var closest mgl64.Vec3
	for i := range 3 {
		v := local[i]
		if v < -h[i] {
			v = -h[i]
			inside = false
		} else if v > h[i] {
			v = h[i]
			inside = false
		}
		closest[i] = v
	}

	var (
		n     mgl64.Vec3
		depth float64
	)
	if inside {
		// Push out through the nearest face
		axis, best := 0, math.Inf(1)
		for i := range 3 {
			if d := h[i] - math.Abs(local[i]); d < best {
				axis, best = i, d
			}
		}
		sign := 1.0
		if local[axis] < 0 {
			sign = -1
		}
		closest[axis] = sign * h[axis]
		n[axis] = sign
		depth = s.radius + best
	} else {
		d := local.Sub(closest)
		dist := d.Len()
		depth = s.radius - dist
		if depth < -contactEpsilon {
			return Contact{}, false
		}
		if dist > 0 {
			n = d.Mul(1 / dist)
		} else {
			n = mgl64.Vec3{0, 1, 0}
		}
	}

	return Contact{
		Position: bp.Add(rot.Rotate(closest)),
		Normal:   rot.Rotate(n),
		Depth:    depth,
		A:        s,
		B:        box,
	}, true
}

// boxBox treats both boxes as their axis-aligned bounds and separates along the axis of least overlap
func boxBox(a, b *Geom) (Contact, bool) {
	pa, pb := a.Position(), b.Position()
	ea, eb := a.halfExtents(), b.halfExtents()

	axis, depth := -1, math.Inf(1)
	for i := range 3 {
		overlap := ea[i] + eb[i] - math.Abs(pa[i]-pb[i])
		if overlap < -contactEpsilon {
			return Contact{}, false
		}
		if overlap < depth {
			axis, depth = i, overlap
		}
	}

	var n mgl64.Vec3
	n[axis] = 1
	if pa[axis] < pb[axis] {
		n[axis] = -1
	}

	// Centre of the overlap region
	var p mgl64.Vec3
	for i := range 3 {
		lo := math.Max(pa[i]-ea[i], pb[i]-eb[i])
		hi := math.Min(pa[i]+ea[i], pb[i]+eb[i])
		p[i] = (lo + hi) / 2
	}

	return Contact{Position: p, Normal: n, Depth: depth, A: a, B: b}, true
}

func spherePlane(s, plane *Geom) (Contact, bool) {
	p := s.Position()
	dist := plane.normal.Dot(p) - plane.offset
	depth := s.radius - dist
	if depth < -contactEpsilon {
		return Contact{}, false
	}
	return Contact{
		Position: p.Sub(plane.normal.Mul(dist)),
		Normal:   plane.normal,
		Depth:    depth,
		A:        s,
		B:        plane,
	}, true
}

// boxPlane finds the deepest corner of a rotated box below the plane
func boxPlane(box, plane *Geom) (Contact, bool) {
	n := plane.normal
	p := box.Position()
	h := box.size.Mul(0.5)
	axes := box.axes()

	corner := p
	for i := range 3 {
		proj := axes[i].Dot(n)
		if proj > 0 {
			corner = corner.Sub(axes[i].Mul(h[i]))
		} else {
			corner = corner.Add(axes[i].Mul(h[i]))
		}
	}

	depth := plane.offset - n.Dot(corner)
	if depth < -contactEpsilon {
		return Contact{}, false
	}
	return Contact{
		Position: corner.Add(n.Mul(depth)),
		Normal:   n,
		Depth:    depth,
		A:        box,
		B:        plane,
	}, true
}
