// Package mesh loads Wavefront OBJ models and their MTL material libraries
package mesh

import (
	"errors"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ngine/render"
)

var (
	ErrMissingNewmtl   = errors.New("material library does not start with newmtl")
	ErrTextureNotFound = errors.New("texture not found")
	ErrUnknownMaterial = errors.New("unknown material")
	ErrBadIndex        = errors.New("face index out of range")
	ErrSyntax          = errors.New("malformed statement")
)

// DefaultColor is used for faces without a material
var DefaultColor = render.Gray

// Face is a polygon; indices are resolved, zero-based, and -1 where absent
type Face struct {
	Vertices  []int
	TexCoords []int
	Normals   []int
	Material  string
}

// Model is a parsed OBJ file
type Model struct {
	Vertices  []mgl64.Vec3
	Normals   []mgl64.Vec3
	TexCoords []mgl64.Vec2
	Faces     []Face
	Materials map[string]*Material
}

// Material is one newmtl block
type Material struct {
	Name      string
	Ambient   render.Color // Ka
	Diffuse   render.Color // Kd
	Specular  render.Color // Ks
	Shininess float64      // Ns
	Dissolve  float64      // d
	// Texture is the resolved map_Kd path; TextureColor its average colour
	Texture      string
	TextureColor *render.Color
}

func newMaterial(name string) *Material {
	return &Material{
		Name:     name,
		Ambient:  render.RGBA(0.2, 0.2, 0.2, 1),
		Diffuse:  render.RGBA(0.8, 0.8, 0.8, 1),
		Specular: render.RGBA(0, 0, 0, 1),
		Dissolve: 1,
	}
}

// Color is the flat colour used when drawing: the texture average when present, otherwise Kd
func (m *Material) Color() render.Color {
	c := m.Diffuse
	if m.TextureColor != nil {
		c = *m.TextureColor
	}
	return c.WithAlpha(m.Dissolve)
}

// Triangles returns the number of triangles after fan triangulation
func (m *Model) Triangles() int {
	n := 0
	for _, f := range m.Faces {
		if len(f.Vertices) >= 3 {
			n += len(f.Vertices) - 2
		}
	}
	return n
}

// Primitives fan-triangulates every face into one primitive per material, in order of first use
// Faces without complete vertex normals get a flat face normal
func (m *Model) Primitives() []render.Primitive {
	var (
		order  []string
		byName = make(map[string]*render.Primitive)
	)
	for _, f := range m.Faces {
		if len(f.Vertices) < 3 {
			continue
		}
		p, ok := byName[f.Material]
		if !ok {
			c := DefaultColor
			if mat, found := m.Materials[f.Material]; found {
				c = mat.Color()
			}
			p = &render.Primitive{Color: &c}
			byName[f.Material] = p
			order = append(order, f.Material)
		}

		smooth := !slices.Contains(f.Normals, -1) && len(f.Normals) == len(f.Vertices)
		for i := 1; i+1 < len(f.Vertices); i++ {
			idx := [3]int{0, i, i + 1}
			a, b, c := m.Vertices[f.Vertices[0]], m.Vertices[f.Vertices[i]], m.Vertices[f.Vertices[i+1]]
			flat := render.FaceNormal(a, b, c)
			for _, k := range idx {
				p.Vertices = append(p.Vertices, m.Vertices[f.Vertices[k]])
				if smooth {
					p.Normals = append(p.Normals, m.Normals[f.Normals[k]])
				} else {
					p.Normals = append(p.Normals, flat)
				}
			}
		}
	}

	out := make([]render.Primitive, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}
