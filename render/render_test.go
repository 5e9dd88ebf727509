package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorScaleClamps(t *testing.T) {
	c := RGBA(.6, .2, 1, .5).Scale(2)
	assert.Equal(t, Color{1, .4, 1, .5}, c)
}

func TestColorRGB8(t *testing.T) {
	r, g, b := Gray.RGB8()
	assert.Equal(t, uint8(128), r)
	assert.Equal(t, uint8(128), g)
	assert.Equal(t, uint8(128), b)
}

func TestMatrixStackBalanced(t *testing.T) {
	s := NewMatrixStack()
	s.Push()
	s.Mult(mgl64.Translate3D(1, 2, 3))
	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, s.Top().Col(3).Vec3())

	s.Pop()
	assert.Equal(t, mgl64.Ident4(), s.Top())
}

func TestMatrixStackPopUnderflowKeepsIdentity(t *testing.T) {
	s := NewMatrixStack()
	s.Mult(mgl64.Scale3D(2, 2, 2))
	s.Pop()
	s.Pop()
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, mgl64.Ident4(), s.Top())
}

func TestCubeMeshOutwardNormals(t *testing.T) {
	prims := CubeMesh()
	require.Len(t, prims, 1)
	p := prims[0]
	assert.Equal(t, 12, p.Triangles())
	require.Len(t, p.Normals, len(p.Vertices))

	for i := 0; i < len(p.Vertices); i += 3 {
		n := FaceNormal(p.Vertices[i], p.Vertices[i+1], p.Vertices[i+2])
		assert.InDelta(t, 1, n.Dot(p.Normals[i]), 1e-9, "triangle %d winds against its normal", i/3)
	}
	for _, v := range p.Vertices {
		assert.InDelta(t, .5, max(abs(v.X()), abs(v.Y()), abs(v.Z())), 1e-12)
	}
}

func TestSphereMeshRadius(t *testing.T) {
	p := SphereMesh(8, 6)[0]
	assert.Positive(t, p.Triangles())
	for _, v := range p.Vertices {
		assert.InDelta(t, .5, v.Len(), 1e-9)
	}
}

func TestTorusMeshTriangleCount(t *testing.T) {
	p := TorusMesh(.25, 1, 6, 8)[0]
	assert.Equal(t, 6*8*2, p.Triangles())
}

func TestRecorderTracksDrawState(t *testing.T) {
	r := NewRecorder()
	id := r.CompileList(CubeMesh())
	require.NotEqual(t, NoList, id)

	r.BeginFrame()
	r.PushMatrix()
	r.MultMatrix(mgl64.Translate3D(0, 1, 0))
	r.SetColor(Red)
	r.CallList(id)
	r.PopMatrix()

	draws := r.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, id, draws[0].List)
	assert.Equal(t, Red, draws[0].Color)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, draws[0].Model.Col(3).Vec3())
	assert.Equal(t, 1, r.StackDepth())
	assert.Equal(t, 1, r.Count(OpCallList))
}

func TestRecorderCompiledListIsolatedFromCaller(t *testing.T) {
	r := NewRecorder()
	prims := CubeMesh()
	id := r.CompileList(prims)
	prims[0].Vertices[0] = mgl64.Vec3{9, 9, 9}

	stored, ok := r.List(id)
	require.True(t, ok)
	assert.NotEqual(t, mgl64.Vec3{9, 9, 9}, stored[0].Vertices[0])

	r.DeleteList(id)
	assert.Equal(t, 0, r.Lists())
}

func TestRecorderLightPositionUsesCurrentMatrix(t *testing.T) {
	r := NewRecorder()
	r.BeginFrame()
	r.MultMatrix(mgl64.Translate3D(0, 0, -5))
	r.EnableLight(3, LightParams{Position: mgl64.Vec4{0, 2, 0, 1}})

	p, ok := r.Light(3)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec4{0, 2, -5, 1}, p.Position)

	r.DisableLight(3)
	_, ok = r.Light(3)
	assert.False(t, ok)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
