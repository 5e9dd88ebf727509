package demo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ngine/audio"
	"github.com/lixenwraith/ngine/component"
	"github.com/lixenwraith/ngine/engine"
	"github.com/lixenwraith/ngine/input"
	"github.com/lixenwraith/ngine/render"
)

// Pong tags and tuning
const (
	TagPlayer = "Player"
	TagLimit  = "Limit"

	PaddleSpeed = 0.2
	PaddleLimit = 7
	CourtHalf   = 30
	BallSpeed   = 0.1
)

// BallMovement moves the ball a fixed step per frame, bouncing off paddles and limits
// and scoring when it leaves the court
type BallMovement struct {
	engine.BaseComponent

	Movement mgl64.Vec3

	start  mgl64.Vec3
	last   *engine.Entity
	score  [2]int
	player audio.Player
}

func NewBallMovement(p audio.Player) *BallMovement {
	if p == nil {
		p = audio.NopPlayer{}
	}
	return &BallMovement{player: p}
}

func (b *BallMovement) Start() error {
	b.start = b.Transform().Position()
	b.serve()
	return nil
}

func (b *BallMovement) serve() {
	b.Movement = mgl64.Vec3{BallSpeed, 0, BallSpeed}
	b.last = nil
}

// Score returns points for the left and right players
func (b *BallMovement) Score() [2]int { return b.score }

func (b *BallMovement) Update(float64) {
	t := b.Transform()
	t.Translate(b.Movement)
	x := t.Position().X()
	if math.Abs(x) <= CourtHalf {
		return
	}
	// past the right edge means the left player scored
	if x > 0 {
		b.score[0]++
	} else {
		b.score[1]++
	}
	b.player.Play(audio.SoundScore)
	t.SetPosition(b.start)
	b.serve()
}

// OnCollision reflects only while the ball still moves toward other, so a contact
// lasting several frames bounces once
func (b *BallMovement) OnCollision(other *engine.Entity) {
	delta := other.Transform().Position().Sub(b.Transform().Position())
	switch other.Tag {
	case TagPlayer:
		if b.last != other && delta.X()*b.Movement.X() > 0 {
			b.last = other
			b.Movement[0] *= -1.025
		}
	case TagLimit:
		if delta.Z()*b.Movement.Z() > 0 {
			b.Movement[2] *= -1.01
		}
	}
}

func (b *BallMovement) HandleMessage(name string, _ []any) any {
	if name == "score" {
		return b.score
	}
	return nil
}

// BuildPong sets up two keyboard paddles, two side limits and a ball
func BuildPong(s *engine.Scene, d Deps) error {
	b := &entities{s: s}
	b.add("camera", "", engine.NewTransform(), engine.NewCamera(40, mgl64.Vec3{-45, 0, 0}))
	b.add("light", "", engine.NewTransform(engine.WithPosition(mgl64.Vec3{0, 7, 0})), engine.NewLight())

	paddle := func(name string, x float64, up, down input.Key) {
		b.add(name, TagPlayer,
			engine.NewTransform(engine.WithPosition(mgl64.Vec3{x, 0, 0}), engine.WithScale(mgl64.Vec3{1, 1, 5})),
			engine.NewBoxCollider(),
			component.NewCube(render.Blue),
			component.NewKeyboardMover(up, down, PaddleSpeed, PaddleLimit),
		)
	}
	paddle("left paddle", -8, input.Rune('w'), input.Rune('s'))
	paddle("right paddle", 8, input.KeyUp, input.KeyDown)

	for _, z := range []float64{10, -10} {
		b.add("limit", TagLimit,
			engine.NewTransform(engine.WithPosition(mgl64.Vec3{0, 0, z}), engine.WithScale(mgl64.Vec3{CourtHalf, 1, 1})),
			engine.NewBoxCollider(),
			component.NewCube(render.Green),
		)
	}

	b.add("ball", "",
		engine.NewTransform(engine.WithPosition(mgl64.Vec3{0, 0, -5})),
		engine.NewSphereCollider(),
		component.NewSphere(render.White),
		NewBallMovement(d.Player),
		component.NewParticleEmitter(component.DefaultParticles),
		component.NewCollisionSound(d.Player, audio.SoundBounce, ""),
	)
	return b.err
}
