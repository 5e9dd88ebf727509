package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ngine/engine"
	"github.com/lixenwraith/ngine/input"
	"github.com/lixenwraith/ngine/vmath"
)

// KeyboardMover slides the entity along Axis while Positive or Negative is held,
// keeping the coordinate on that axis within [Min, Max]
type KeyboardMover struct {
	engine.BaseComponent

	Positive, Negative input.Key
	Axis               mgl64.Vec3
	// Speed is in units per frame
	Speed    float64
	Min, Max float64
}

// NewKeyboardMover moves along +Z for positive and -Z for negative within [-limit, limit]
func NewKeyboardMover(positive, negative input.Key, speed, limit float64) *KeyboardMover {
	return &KeyboardMover{
		Positive: positive,
		Negative: negative,
		Axis:     vmath.Forward,
		Speed:    speed,
		Min:      -limit,
		Max:      limit,
	}
}

func (m *KeyboardMover) Update(float64) {
	in, t := m.Input(), m.Transform()
	if in == nil || t == nil {
		return
	}
	axis := m.Axis.Normalize()
	along := t.Position().Dot(axis)
	if in.KeyDown(m.Positive) && along < m.Max {
		t.Translate(axis.Mul(m.Speed))
	}
	if in.KeyDown(m.Negative) && along > m.Min {
		t.Translate(axis.Mul(-m.Speed))
	}
}

// Walker drives an entity with the input axes: vertical moves along the facing
// direction, horizontal turns about Up, and Jump pushes the rigidbody upward once
// per landing
type Walker struct {
	engine.BaseComponent

	MoveSpeed float64
	TurnSpeed float64
	JumpForce float64
	Jump      input.Key
	canJump   bool
}

func NewWalker() *Walker {
	return &Walker{MoveSpeed: 10, TurnSpeed: 5, JumpForce: 200, Jump: input.KeySpace}
}

// CanJump reports whether the walker has landed since its last jump
func (w *Walker) CanJump() bool { return w.canJump }

func (w *Walker) Update(dt float64) {
	in, t := w.Input(), w.Transform()
	if in == nil || t == nil {
		return
	}
	if v := in.VerticalAxis(); v != 0 {
		t.Translate(t.Forward().Mul(v * w.MoveSpeed * dt))
	}
	if h := in.HorizontalAxis(); h != 0 {
		t.Rotate(vmath.Up, h*w.TurnSpeed*dt)
	}
	if in.KeyDown(w.Jump) && w.canJump {
		if rb := w.Rigidbody(); rb != nil {
			w.canJump = false
			rb.AddForce(mgl64.Vec3{0, w.JumpForce, 0})
		}
	}
}

func (w *Walker) OnCollision(*engine.Entity) { w.canJump = true }
