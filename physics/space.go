package physics

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// NearCallback receives every broad-phase candidate pair
type NearCallback func(a, b *Geom)

// Space holds geoms and finds candidate pairs by brute force AABB tests
type Space struct {
	geoms []*Geom
}

func NewSpace() *Space {
	return &Space{}
}

// NewGeom creates a geom of the given kind
// Parameters: box (x, y, z side lengths), sphere (radius), plane (a, b, c, d with a·x + b·y + c·z = d)
func (s *Space) NewGeom(kind GeomKind, params ...float64) (*Geom, error) {
	g := &Geom{
		space:    s,
		kind:     kind,
		rotation: mgl64.QuatIdent(),
	}

	if err := g.SetParams(params...); err != nil {
		return nil, err
	}

	s.geoms = append(s.geoms, g)
	return g, nil
}

// Destroy removes g from the space and from its body
func (s *Space) Destroy(g *Geom) {
	if g == nil || g.space != s {
		return
	}
	g.SetBody(nil)
	if i := slices.Index(s.geoms, g); i >= 0 {
		s.geoms = slices.Delete(s.geoms, i, i+1)
	}
	g.space = nil
	g.Data = nil
}

// Geoms returns the live geoms
func (s *Space) Geoms() []*Geom {
	return slices.Clone(s.geoms)
}

// Len returns the number of live geoms
func (s *Space) Len() int { return len(s.geoms) }

// Collide calls near for each pair whose bounds overlap
// Pairs on the same body and plane/plane pairs are skipped
// Geoms destroyed by near during the pass are skipped for the rest of it
func (s *Space) Collide(near NearCallback) {
	geoms := slices.Clone(s.geoms)
	for i, a := range geoms {
		for _, b := range geoms[i+1:] {
			if !a.Alive() || !b.Alive() {
				continue
			}
			if a.body != nil && a.body == b.body {
				continue
			}
			if a.kind == GeomPlane && b.kind == GeomPlane {
				continue
			}
			if !a.AABB().Overlaps(b.AABB()) {
				continue
			}
			near(a, b)
		}
	}
}
