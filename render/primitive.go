package render

import "github.com/go-gl/mathgl/mgl64"

// ListID identifies a compiled display list. Zero is never issued
type ListID uint32

// NoList is the zero ListID
const NoList ListID = 0

// Primitive is a batch of triangles
// Vertices holds three entries per triangle; Normals is either empty or parallel to Vertices
type Primitive struct {
	Vertices []mgl64.Vec3
	Normals  []mgl64.Vec3
	// Color overrides the current colour for this batch when set
	Color *Color
}

// Triangles returns the number of complete triangles in p
func (p Primitive) Triangles() int {
	return len(p.Vertices) / 3
}

// Clone deep-copies p so compiled lists never alias caller slices
func (p Primitive) Clone() Primitive {
	out := Primitive{
		Vertices: append([]mgl64.Vec3(nil), p.Vertices...),
		Normals:  append([]mgl64.Vec3(nil), p.Normals...),
	}
	if p.Color != nil {
		c := *p.Color
		out.Color = &c
	}
	return out
}

// FaceNormal returns the unit normal of the counter-clockwise triangle a, b, c
func FaceNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.LenSqr() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return n.Normalize()
}
