package demo

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/ngine/audio"
	"github.com/lixenwraith/ngine/component"
	"github.com/lixenwraith/ngine/engine"
	"github.com/lixenwraith/ngine/input"
	"github.com/lixenwraith/ngine/render"
	"github.com/lixenwraith/ngine/vmath"
)

// Platformer tags and tuning
const (
	TagBullet = "Bullet"
	TagEnemy  = "Enemy"

	ShootForce  = 100
	ReloadTime  = 1.0
	BulletLife  = 5.0
	SpinnerRate = 1.0

	TrophyMesh = "platformer/trophy.obj"
)

// EnemyPositions are the spawn points of the platformer enemies
var EnemyPositions = []mgl64.Vec3{{3, 3, 3}, {-3, 3, -1}, {-8, 5, 0}, {7, 5, 1}}

// Shooter fires a bullet along the facing direction when Fire is held, once per reload
type Shooter struct {
	engine.BaseComponent

	Fire   input.Key
	Force  float64
	Reload float64

	cooldown float64
	fired    int
	player   audio.Player
}

func NewShooter(p audio.Player) *Shooter {
	if p == nil {
		p = audio.NopPlayer{}
	}
	return &Shooter{Fire: input.Rune('q'), Force: ShootForce, Reload: ReloadTime, player: p}
}

// Fired returns the number of bullets shot
func (sh *Shooter) Fired() int { return sh.fired }

func (sh *Shooter) Update(dt float64) {
	sh.cooldown = max(sh.cooldown-dt, 0)
	in, s := sh.Input(), sh.Scene()
	if in == nil || s == nil || sh.cooldown > 0 || !in.KeyDown(sh.Fire) {
		return
	}
	t := sh.Transform()
	fwd := t.Forward()
	bullet, err := s.NewEntity("bullet",
		engine.NewTransform(engine.WithPosition(t.Position().Add(fwd)), engine.WithScale(mgl64.Vec3{.5, .5, .5})),
		component.NewSphere(render.Green),
		engine.NewSphereCollider(),
		engine.NewRigidbody(1),
		NewLifetime(BulletLife),
	)
	if err != nil {
		s.Logger().Warn("bullet spawn failed", zap.Error(err))
		return
	}
	bullet.Tag = TagBullet
	bullet.Rigidbody().AddForce(fwd.Mul(sh.Force))
	sh.cooldown = sh.Reload
	sh.fired++
	sh.player.Play(audio.SoundJump)
}

// EnemyBehaviour destroys its entity when a bullet hits it
type EnemyBehaviour struct {
	engine.BaseComponent
	player audio.Player
}

func (eb *EnemyBehaviour) OnCollision(other *engine.Entity) {
	if other.Tag != TagBullet {
		return
	}
	if eb.player != nil {
		eb.player.Play(audio.SoundHit)
	}
	eb.Entity().Destroy()
}

// Lifetime destroys its entity after Remaining seconds
type Lifetime struct {
	engine.BaseComponent
	Remaining float64
}

func NewLifetime(seconds float64) *Lifetime { return &Lifetime{Remaining: seconds} }

func (l *Lifetime) Update(dt float64) {
	l.Remaining -= dt
	if l.Remaining <= 0 {
		l.Entity().Destroy()
	}
}

// Spin turns its entity about Up at Rate radians per second
type Spin struct {
	engine.BaseComponent
	Rate float64
}

func (sp *Spin) Update(dt float64) {
	sp.Transform().Rotate(vmath.Up, sp.Rate*dt)
}

// BuildPlatformer sets up three platforms, a walking and shooting player and four enemies
func BuildPlatformer(s *engine.Scene, d Deps) error {
	b := &entities{s: s}
	b.add("light", "", engine.NewTransform(engine.WithPosition(mgl64.Vec3{0, 5, -5})), engine.NewLight())

	platform := func(pos, size mgl64.Vec3) {
		b.add("platform", "",
			engine.NewTransform(engine.WithPosition(pos), engine.WithScale(size)),
			component.NewCube(render.White),
			engine.NewBoxCollider(),
		)
	}
	platform(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{20, 1, 20})
	platform(mgl64.Vec3{11.5, 2, 0}, mgl64.Vec3{10, 1, 5})
	platform(mgl64.Vec3{-12, 2, 0}, mgl64.Vec3{10, 1, 5})

	b.add("player", "",
		engine.NewTransform(engine.WithPosition(mgl64.Vec3{0, 7, 0})),
		component.NewCube(render.Green),
		engine.NewBoxCollider(),
		engine.NewRigidbody(1),
		engine.NewCamera(20, mgl64.Vec3{-10, 0, 0}),
		component.NewWalker(),
		NewShooter(d.Player),
		component.NewCollisionSound(d.Player, audio.SoundBounce, TagEnemy),
	)

	for _, pos := range EnemyPositions {
		b.add("enemy", TagEnemy,
			engine.NewTransform(engine.WithPosition(pos)),
			engine.NewRigidbody(1),
			component.NewCube(render.Red),
			engine.NewBoxCollider(),
			&EnemyBehaviour{player: d.Player},
			component.NewParticleEmitter(8),
		)
	}

	b.add("spinner", "",
		engine.NewTransform(engine.WithPosition(mgl64.Vec3{0, 4, -8}), engine.WithScale(mgl64.Vec3{2, 2, 2})),
		component.NewTorus(1, 1, render.Yellow),
		&Spin{Rate: SpinnerRate},
	)
	if b.err != nil {
		return b.err
	}

	// A missing decoration only costs the decoration
	if d.Meshes != nil {
		m, err := d.Meshes.Get(TrophyMesh)
		if err != nil {
			d.Logger.Warn("trophy mesh unavailable", zap.String("path", TrophyMesh), zap.Error(err))
			return nil
		}
		b.add("trophy", "",
			engine.NewTransform(engine.WithPosition(mgl64.Vec3{-12, 3.5, 0})),
			component.NewMesh(m),
			&Spin{Rate: SpinnerRate},
		)
	}
	return b.err
}
