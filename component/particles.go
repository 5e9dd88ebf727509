package component

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ngine/engine"
	"github.com/lixenwraith/ngine/render"
)

// Particle burst tuning
const (
	DefaultParticles = 15
	ParticleSpeed    = 0.1
	ParticleDecay    = 0.01
	ParticleSize     = 0.25
)

// Particle is one world-space fragment of a burst
type Particle struct {
	Position  mgl64.Vec3
	Direction mgl64.Vec3
	Color     render.Color
	Size      float64
	Life      float64
}

// Alive reports whether the particle still has life left
func (p *Particle) Alive() bool { return p.Life > 0 }

func (p *Particle) step() {
	if p.Life > 0 {
		p.Position = p.Position.Add(p.Direction)
	}
	p.Life -= ParticleDecay
}

// ParticleEmitter throws a horizontal ring of fading spheres whenever its entity collides
type ParticleEmitter struct {
	engine.BaseComponent

	Count int

	particles []Particle
	rng       *rand.Rand
	list      render.ListID
	renderer  render.Renderer
}

// NewParticleEmitter creates an emitter producing count particles per burst
func NewParticleEmitter(count int) *ParticleEmitter {
	if count <= 0 {
		count = DefaultParticles
	}
	return &ParticleEmitter{
		Count: count,
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Particles returns a copy of the live particles
func (pe *ParticleEmitter) Particles() []Particle {
	return append([]Particle(nil), pe.particles...)
}

func (pe *ParticleEmitter) OnCollision(*engine.Entity) {
	t := pe.Transform()
	if t == nil {
		return
	}
	pe.Burst(t.Position())
}

// Burst emits one ring centred on origin
func (pe *ParticleEmitter) Burst(origin mgl64.Vec3) {
	step := 360 / pe.Count
	if step < 1 {
		step = 1
	}
	for deg := 0; deg < 360; deg += step {
		a := float64(deg) * math.Pi / 180
		pe.particles = append(pe.particles, Particle{
			Position:  origin,
			Direction: mgl64.Vec3{math.Sin(a) * ParticleSpeed, 0, math.Cos(a) * ParticleSpeed},
			Color:     render.RGBA(pe.rng.Float64(), pe.rng.Float64(), 1, 1),
			Size:      ParticleSize,
			Life:      1,
		})
	}
}

func (pe *ParticleEmitter) Update(float64) {
	live := pe.particles[:0]
	for i := range pe.particles {
		p := pe.particles[i]
		if !p.Alive() {
			continue
		}
		p.step()
		live = append(live, p)
	}
	clear(pe.particles[len(live):])
	pe.particles = live
}

func (pe *ParticleEmitter) Render(r render.Renderer) {
	if len(pe.particles) == 0 {
		return
	}
	if pe.list == render.NoList || pe.renderer != r {
		pe.release()
		pe.list = r.CompileList(render.SphereMesh(5, 5))
		pe.renderer = r
	}
	for _, p := range pe.particles {
		if !p.Alive() {
			continue
		}
		// mesh has unit diameter
		d := 2 * p.Size * p.Life
		r.PushMatrix()
		r.MultMatrix(mgl64.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).Mul4(mgl64.Scale3D(d, d, d)))
		r.SetColor(p.Color.WithAlpha(p.Life))
		r.CallList(pe.list)
		r.PopMatrix()
	}
}

func (pe *ParticleEmitter) OnRemove() {
	pe.release()
	pe.particles = nil
}

func (pe *ParticleEmitter) release() {
	if pe.list != render.NoList && pe.renderer != nil {
		pe.renderer.DeleteList(pe.list)
	}
	pe.list = render.NoList
	pe.renderer = nil
}
