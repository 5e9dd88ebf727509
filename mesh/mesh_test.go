package mesh

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/image/bmp"

	"github.com/lixenwraith/ngine/render"
)

const quadOBJ = `# a unit quad in the XZ plane
mtllib mats/quad.mtl
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vn 0 1 0
vt 0 0
vt 1 1
usemtl red
f 1//1 4//1 3//1 2//1
usemat blue
f -4 -2 -3
`

const quadMTL = `newmtl red
Kd 1 0 0
Ns 10
newmtl blue
Kd 0 0 1
d 0.5
`

func solidImage(c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			img.Set(x, y, c)
		}
	}
	return img
}

func encode(t *testing.T, img image.Image, enc func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, enc(&buf, img))
	return buf.Bytes()
}

func pngEncode(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) }
func bmpEncode(b *bytes.Buffer, img image.Image) error { return bmp.Encode(b, img) }

func quadFS() fstest.MapFS {
	return fstest.MapFS{
		"models/quad.obj":      {Data: []byte(quadOBJ)},
		"models/mats/quad.mtl": {Data: []byte(quadMTL)},
	}
}

func TestLoadFS(t *testing.T) {
	m, err := LoadFS(quadFS(), "models/quad.obj")
	require.NoError(t, err)

	assert.Len(t, m.Vertices, 4)
	assert.Len(t, m.Normals, 1)
	assert.Len(t, m.TexCoords, 2)
	require.Len(t, m.Faces, 2)
	assert.Equal(t, []int{0, 3, 2, 1}, m.Faces[0].Vertices)
	assert.Equal(t, []int{0, 0, 0, 0}, m.Faces[0].Normals)
	assert.Equal(t, []int{-1, -1, -1, -1}, m.Faces[0].TexCoords)
	assert.Equal(t, []int{0, 2, 1}, m.Faces[1].Vertices, "negative indices count from the end")
	assert.Equal(t, "blue", m.Faces[1].Material)

	require.Contains(t, m.Materials, "red")
	assert.Equal(t, render.Red, m.Materials["red"].Diffuse)
	assert.InDelta(t, 10.0, m.Materials["red"].Shininess, 1e-12)
	assert.InDelta(t, 0.5, m.Materials["blue"].Color().A, 1e-12)
	assert.Equal(t, 3, m.Triangles())
}

func TestPrimitivesGroupByMaterial(t *testing.T) {
	m, err := LoadFS(quadFS(), "models/quad.obj")
	require.NoError(t, err)

	prims := m.Primitives()
	require.Len(t, prims, 2)
	assert.Equal(t, 2, prims[0].Triangles())
	assert.Equal(t, render.Red, *prims[0].Color)
	assert.Equal(t, 1, prims[1].Triangles())
	for _, n := range prims[0].Normals {
		assert.Equal(t, mgl64.Vec3{0, 1, 0}, n)
	}
	require.Len(t, prims[1].Normals, 3)
	assert.True(t, prims[1].Normals[0].ApproxEqual(mgl64.Vec3{0, 1, 0}), "flat normal when vn is missing")
}

func TestParseWithoutMaterials(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	m, err := Parse(strings.NewReader(src), nil, "")
	require.NoError(t, err)
	prims := m.Primitives()
	require.Len(t, prims, 1)
	assert.Equal(t, DefaultColor, *prims[0].Color)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		src  string
		want error
	}{
		"index":    {"v 0 0 0\nf 1 2 3\n", ErrBadIndex},
		"zero":     {"v 0 0 0\nv 0 0 0\nv 0 0 0\nf 0 1 2\n", ErrBadIndex},
		"short":    {"v 0 0\n", ErrSyntax},
		"face":     {"v 0 0 0\nf 1 1\n", ErrSyntax},
		"material": {"v 0 0 0\nusemtl ghost\nf 1 1 1\n", ErrUnknownMaterial},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.src), nil, "")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestMaterialErrors(t *testing.T) {
	_, err := ParseMaterials(strings.NewReader("# header\nKd 1 1 1\n"), nil, "")
	assert.ErrorIs(t, err, ErrMissingNewmtl)

	_, err = ParseMaterials(strings.NewReader("newmtl a\nmap_Kd missing.png\n"), fstest.MapFS{}, "tex")
	assert.ErrorIs(t, err, ErrTextureNotFound)
}

func TestTextureResolvedRelativeToLibrary(t *testing.T) {
	fsys := fstest.MapFS{
		"m/obj.obj":           {Data: []byte("mtllib lib/a.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl a\nf 1 2 3\nusemtl b\nf 1 2 3\n")},
		"m/lib/a.mtl":         {Data: []byte("newmtl a\nmap_Kd tex/green.png\nnewmtl b\nmap_Kd tex/blue.bmp\n")},
		"m/lib/tex/green.png": {Data: encode(t, solidImage(color.RGBA{0, 255, 0, 255}), pngEncode)},
		"m/lib/tex/blue.bmp":  {Data: encode(t, solidImage(color.RGBA{0, 0, 255, 255}), bmpEncode)},
	}

	m, err := LoadFS(fsys, "m/obj.obj")
	require.NoError(t, err)

	a := m.Materials["a"]
	assert.Equal(t, "m/lib/tex/green.png", a.Texture)
	assert.Equal(t, render.Green, a.Color())
	assert.Equal(t, render.Blue, m.Materials["b"].Color())
}

func TestMissingTextureFailsOnlyThatAsset(t *testing.T) {
	fsys := quadFS()
	fsys["broken.obj"] = &fstest.MapFile{Data: []byte("mtllib broken.mtl\n")}
	fsys["broken.mtl"] = &fstest.MapFile{Data: []byte("newmtl x\nmap_Kd nowhere.png\n")}

	c := NewCache(fsys, zaptest.NewLogger(t))
	_, err := c.Get("broken.obj")
	assert.ErrorIs(t, err, ErrTextureNotFound)

	m, err := c.Get("models/quad.obj")
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Equal(t, 1, c.Len())
}

func TestCacheReturnsSameModel(t *testing.T) {
	c := NewCache(quadFS(), nil)
	a, err := c.Get("models/quad.obj")
	require.NoError(t, err)
	b, err := c.Get("models/./quad.obj")
	require.NoError(t, err)
	assert.Same(t, a, b)

	c.Forget("models/quad.obj")
	assert.Zero(t, c.Len())
}

func TestPreload(t *testing.T) {
	c := NewCache(quadFS(), zaptest.NewLogger(t))
	require.NoError(t, Preload(context.Background(), c, "models/quad.obj", "models/quad.obj"))
	assert.Equal(t, 1, c.Len())

	err := Preload(context.Background(), c, "models/quad.obj", "missing.obj")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing.obj")
}
