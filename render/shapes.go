package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Default tessellation for generated solids
const (
	SphereSlices = 18
	SphereStacks = 18
	TorusSides   = 15
	TorusRings   = 15
)

// CubeMesh returns a unit cube centred on the origin
func CubeMesh() []Primitive {
	faces := []struct {
		n    mgl64.Vec3
		u, v mgl64.Vec3
	}{
		{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}},
		{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}},
		{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{mgl64.Vec3{0, 0, -1}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 1, 0}},
	}

	p := Primitive{
		Vertices: make([]mgl64.Vec3, 0, 36),
		Normals:  make([]mgl64.Vec3, 0, 36),
	}
	for _, f := range faces {
		c := f.n.Mul(.5)
		hu, hv := f.u.Mul(.5), f.v.Mul(.5)
		a := c.Sub(hu).Sub(hv)
		b := c.Add(hu).Sub(hv)
		d := c.Add(hu).Add(hv)
		e := c.Sub(hu).Add(hv)
		p.Vertices = append(p.Vertices, a, b, d, a, d, e)
		for range 6 {
			p.Normals = append(p.Normals, f.n)
		}
	}
	return []Primitive{p}
}

// SphereMesh returns a sphere of diameter 1 centred on the origin
func SphereMesh(slices, stacks int) []Primitive {
	if slices < 3 {
		slices = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	point := func(i, j int) mgl64.Vec3 {
		theta := math.Pi * float64(j) / float64(stacks)
		phi := 2 * math.Pi * float64(i) / float64(slices)
		return mgl64.Vec3{
			math.Sin(theta) * math.Cos(phi),
			math.Cos(theta),
			-math.Sin(theta) * math.Sin(phi),
		}
	}

	var p Primitive
	for j := 0; j < stacks; j++ {
		for i := 0; i < slices; i++ {
			a, b := point(i, j), point(i+1, j)
			c, d := point(i+1, j+1), point(i, j+1)
			if j != 0 {
				p.Vertices = append(p.Vertices, a.Mul(.5), d.Mul(.5), b.Mul(.5))
				p.Normals = append(p.Normals, a, d, b)
			}
			if j != stacks-1 {
				p.Vertices = append(p.Vertices, b.Mul(.5), d.Mul(.5), c.Mul(.5))
				p.Normals = append(p.Normals, b, d, c)
			}
		}
	}
	return []Primitive{p}
}

// TorusMesh returns a torus in the XZ plane with tube radius inner and ring radius outer
func TorusMesh(inner, outer float64, sides, rings int) []Primitive {
	if sides < 3 {
		sides = 3
	}
	if rings < 3 {
		rings = 3
	}

	point := func(i, j int) (mgl64.Vec3, mgl64.Vec3) {
		u := 2 * math.Pi * float64(i) / float64(rings)
		v := 2 * math.Pi * float64(j) / float64(sides)
		centre := mgl64.Vec3{math.Cos(u) * outer, 0, math.Sin(u) * outer}
		n := mgl64.Vec3{math.Cos(v) * math.Cos(u), math.Sin(v), math.Cos(v) * math.Sin(u)}
		return centre.Add(n.Mul(inner)), n
	}

	var p Primitive
	for i := 0; i < rings; i++ {
		for j := 0; j < sides; j++ {
			a, na := point(i, j)
			b, nb := point(i+1, j)
			c, nc := point(i+1, j+1)
			d, nd := point(i, j+1)
			p.Vertices = append(p.Vertices, a, c, b, a, d, c)
			p.Normals = append(p.Normals, na, nc, nb, na, nd, nc)
		}
	}
	return []Primitive{p}
}
