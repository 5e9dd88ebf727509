// Package termrender rasterizes display lists into the cells of a tcell screen
// with a perspective projection, a depth buffer and per-triangle Lambert shading
package termrender

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ngine/config"
	"github.com/lixenwraith/ngine/render"
)

// Ramp maps brightness to glyphs, darkest first
const Ramp = " .:-=+*#%@"

// cellAspect is the height of a terminal cell relative to its width
const cellAspect = 2.0

// light is an enabled unit in eye space
type light struct {
	ambient     render.Color
	diffuse     render.Color
	position    mgl64.Vec3
	directional bool
}

// Stats counts the work done since the last BeginFrame
type Stats struct {
	Calls     int
	Triangles int
	Culled    int
	Fragments int
}

// Renderer implements render.Renderer on a tcell screen. Presenting the screen is the caller's job
type Renderer struct {
	screen tcell.Screen
	fov    float64
	near   float64
	far    float64
	clear  render.Color

	trueColor bool
	palette   []tcell.Color

	lists map[render.ListID][]render.Primitive
	next  render.ListID

	stack  *render.MatrixStack
	color  render.Color
	lights map[int]light

	depth *depthBuffer
	proj  mgl64.Mat4
	stats Stats
}

var _ render.Renderer = (*Renderer)(nil)

// New creates a renderer drawing to screen; without true colour, colours snap to the 16 ANSI colours
func New(screen tcell.Screen, cfg config.Render, trueColor bool) *Renderer {
	r := &Renderer{
		screen:    screen,
		fov:       cfg.FOV,
		near:      cfg.Near,
		far:       cfg.Far,
		clear:     render.RGBA(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], cfg.ClearColor[3]),
		trueColor: trueColor,
		lists:     make(map[render.ListID][]render.Primitive),
		stack:     render.NewMatrixStack(),
		color:     render.White,
		lights:    make(map[int]light),
		depth:     newDepthBuffer(0, 0),
	}
	if !trueColor {
		r.palette = make([]tcell.Color, 16)
		for i := range r.palette {
			r.palette[i] = tcell.PaletteColor(i)
		}
	}
	return r
}

// Stats returns the counters of the current frame
func (r *Renderer) Stats() Stats { return r.stats }

// Projection returns the projection used for the current frame
func (r *Renderer) Projection() mgl64.Mat4 { return r.proj }

func (r *Renderer) BeginFrame() {
	w, h := r.screen.Size()
	if w != r.depth.width || h != r.depth.height {
		r.depth.Resize(w, h)
	} else {
		r.depth.Clear()
	}
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / (float64(h) * cellAspect)
	}
	r.proj = mgl64.Perspective(mgl64.DegToRad(r.fov), aspect, r.near, r.far)

	r.screen.Fill(' ', tcell.StyleDefault.Background(r.tcellColor(r.clear)))
	r.stack.Reset()
	r.color = render.White
	r.stats = Stats{}
}

func (r *Renderer) CompileList(prims []render.Primitive) render.ListID {
	r.next++
	cp := make([]render.Primitive, len(prims))
	for i, p := range prims {
		cp[i] = p.Clone()
	}
	r.lists[r.next] = cp
	return r.next
}

func (r *Renderer) DeleteList(id render.ListID) {
	delete(r.lists, id)
}

func (r *Renderer) PushMatrix()             { r.stack.Push() }
func (r *Renderer) PopMatrix()              { r.stack.Pop() }
func (r *Renderer) MultMatrix(m mgl64.Mat4) { r.stack.Mult(m) }
func (r *Renderer) SetColor(c render.Color) { r.color = c }

func (r *Renderer) EnableLight(unit int, p render.LightParams) {
	if unit < 0 || unit >= render.MaxLightUnits {
		return
	}
	eye := r.stack.Top().Mul4x1(p.Position)
	l := light{ambient: p.Ambient, diffuse: p.Diffuse}
	if p.Position.W() == 0 {
		l.directional = true
		l.position = eye.Vec3().Normalize()
	} else {
		l.position = eye.Vec3().Mul(1 / eye.W())
	}
	r.lights[unit] = l
}

func (r *Renderer) DisableLight(unit int) {
	delete(r.lights, unit)
}

// Lights returns the number of enabled units
func (r *Renderer) Lights() int { return len(r.lights) }

func (r *Renderer) CallList(id render.ListID) {
	prims, ok := r.lists[id]
	if !ok {
		return
	}
	r.stats.Calls++
	mv := r.stack.Top()
	normal := mv.Mat3()
	for _, p := range prims {
		base := r.color
		if p.Color != nil {
			base = *p.Color
		}
		if base.A <= 0 {
			continue
		}
		hasNormals := len(p.Normals) == len(p.Vertices)
		for i := 0; i+2 < len(p.Vertices); i += 3 {
			r.stats.Triangles++
			var (
				eye  [3]mgl64.Vec3
				proj [3]vertex
				n    mgl64.Vec3
				cull bool
			)
			for k := 0; k < 3; k++ {
				e := mv.Mul4x1(p.Vertices[i+k].Vec4(1))
				eye[k] = e.Vec3()
				// behind the near plane
				if -e.Z() < r.near {
					cull = true
					break
				}
				c := r.proj.Mul4x1(e)
				proj[k] = r.toScreen(c)
				if hasNormals {
					n = n.Add(normal.Mul3x1(p.Normals[i+k]))
				}
			}
			if cull {
				r.stats.Culled++
				continue
			}
			if !hasNormals || n.LenSqr() == 0 {
				n = render.FaceNormal(eye[0], eye[1], eye[2])
			}
			centre := eye[0].Add(eye[1]).Add(eye[2]).Mul(1.0 / 3)
			shade, level := r.shade(base, n.Normalize(), centre)
			style := tcell.StyleDefault.
				Foreground(r.tcellColor(shade)).
				Background(r.tcellColor(r.clear))
			glyph := rune(Ramp[level])
			r.stats.Fragments += rasterize(r.depth, proj, func(x, y int) {
				r.screen.SetContent(x, y, glyph, nil, style)
			})
		}
	}
}

// toScreen maps a clip-space point to cell coordinates and depth
func (r *Renderer) toScreen(c mgl64.Vec4) vertex {
	w := c.W()
	nx, ny, nz := c.X()/w, c.Y()/w, c.Z()/w
	return vertex{
		x: float32((nx + 1) / 2 * float64(r.depth.width)),
		y: float32((1 - ny) / 2 * float64(r.depth.height)),
		z: float32(nz),
	}
}

// shade lights base at point p with eye-space normal n
// Returns the lit colour and an index into Ramp; unlit scenes draw at full brightness
func (r *Renderer) shade(base render.Color, n, p mgl64.Vec3) (render.Color, int) {
	if len(r.lights) == 0 {
		return base, len(Ramp) - 1
	}
	var sum render.Color
	for _, l := range r.lights {
		dir := l.position
		if !l.directional {
			dir = l.position.Sub(p)
			if dir.LenSqr() > 0 {
				dir = dir.Normalize()
			}
		}
		// both sides are lit; meshes are not consistently wound
		lambert := math.Abs(n.Dot(dir))
		sum = sum.Add(l.ambient).Add(l.diffuse.Scale(lambert))
	}
	lit := base.Modulate(sum)
	lit.A = base.A

	intensity := float32((sum.R + sum.G + sum.B) / 3)
	intensity = math32.Min(math32.Max(intensity*float32(base.A), 0), 1)
	level := int(intensity*float32(len(Ramp)-1) + 0.5)
	return lit, max(level, 1)
}

func (r *Renderer) tcellColor(c render.Color) tcell.Color {
	rr, gg, bb := c.RGB8()
	tc := tcell.NewRGBColor(int32(rr), int32(gg), int32(bb))
	if r.trueColor {
		return tc
	}
	return tcell.FindColor(tc, r.palette)
}
