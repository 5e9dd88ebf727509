package demo

import (
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lixenwraith/ngine/audio"
	"github.com/lixenwraith/ngine/component"
	"github.com/lixenwraith/ngine/engine"
	"github.com/lixenwraith/ngine/input"
	"github.com/lixenwraith/ngine/mesh"
	"github.com/lixenwraith/ngine/render"
)

const dt = 1.0 / 60

type soundLog struct{ played []audio.SoundType }

func (l *soundLog) Play(s audio.SoundType) { l.played = append(l.played, s) }

func newScene(t *testing.T) *engine.Scene {
	t.Helper()
	s := engine.NewScene(engine.WithLogger(zaptest.NewLogger(t)))
	t.Cleanup(s.Close)
	return s
}

func frame(s *engine.Scene, r render.Renderer) {
	s.Update(dt)
	if r != nil {
		r.BeginFrame()
		s.Render(r)
	}
	s.Step(dt)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"platformer", "pong"}, Names())
	assert.ErrorIs(t, Build("tetris", newScene(t), Deps{}), ErrUnknownDemo)
	assert.Equal(t, []string{TrophyMesh}, Assets("platformer"))
	assert.Empty(t, Assets("pong"))
}

func TestPongLayout(t *testing.T) {
	s := newScene(t)
	require.NoError(t, Build("pong", s, Deps{}))

	assert.Len(t, s.FindByTag(TagPlayer), 2)
	assert.Len(t, s.FindByTag(TagLimit), 2)
	require.NotNil(t, s.Camera())
	assert.Equal(t, 40.0, s.Camera().Distance)
	assert.Len(t, s.Lights(), 1)

	ball := s.Find("ball")
	require.NotNil(t, ball)
	assert.Equal(t, [2]int{}, ball.HandleMessage("score"))
	assert.Nil(t, ball.HandleMessage("unknown"))
}

func TestPongBallStaysInsideLimits(t *testing.T) {
	s := newScene(t)
	require.NoError(t, Build("pong", s, Deps{}))
	rec := render.NewRecorder()
	ball := s.Find("ball")
	require.NotNil(t, ball)

	// limits span x in [-15, 15]
	for range 600 {
		frame(s, rec)
		p := ball.Transform().Position()
		if p.X() > -14 && p.X() < 14 {
			require.LessOrEqual(t, p.Z(), 9.6)
			require.GreaterOrEqual(t, p.Z(), -9.6)
		}
	}
	assert.Zero(t, rec.StackDepth())
}

func TestBallBouncesOncePerContact(t *testing.T) {
	s := newScene(t)
	bm := NewBallMovement(nil)
	ball, err := s.NewEntity("ball", bm)
	require.NoError(t, err)
	paddle, err := s.NewEntity("paddle", engine.NewTransform(engine.WithPosition(mgl64.Vec3{1, 0, 0})))
	require.NoError(t, err)
	paddle.Tag = TagPlayer
	limit, err := s.NewEntity("limit", engine.NewTransform(engine.WithPosition(mgl64.Vec3{0, 0, 1})))
	require.NoError(t, err)
	limit.Tag = TagLimit

	ball.OnCollision(paddle)
	assert.InDelta(t, -BallSpeed*1.025, bm.Movement.X(), 1e-12)
	ball.OnCollision(paddle)
	assert.InDelta(t, -BallSpeed*1.025, bm.Movement.X(), 1e-12, "same paddle twice")

	ball.OnCollision(limit)
	assert.InDelta(t, -BallSpeed*1.01, bm.Movement.Z(), 1e-12)
	ball.OnCollision(limit)
	assert.InDelta(t, -BallSpeed*1.01, bm.Movement.Z(), 1e-12, "already moving away")
}

func TestBallScores(t *testing.T) {
	s := newScene(t)
	sounds := &soundLog{}
	bm := NewBallMovement(sounds)
	ball, err := s.NewEntity("ball", engine.NewTransform(engine.WithPosition(mgl64.Vec3{0, 0, -5})), bm)
	require.NoError(t, err)

	bm.Movement = mgl64.Vec3{CourtHalf + 1, 0, 0}
	s.Update(dt)
	assert.Equal(t, [2]int{1, 0}, bm.Score())
	assert.Equal(t, mgl64.Vec3{0, 0, -5}, ball.Transform().Position())
	assert.Equal(t, mgl64.Vec3{BallSpeed, 0, BallSpeed}, bm.Movement)

	bm.Movement = mgl64.Vec3{-CourtHalf - 1, 0, 0}
	s.Update(dt)
	assert.Equal(t, [2]int{1, 1}, ball.HandleMessage("score"))
	assert.Equal(t, []audio.SoundType{audio.SoundScore, audio.SoundScore}, sounds.played)
}

func trophyFS() fstest.MapFS {
	return fstest.MapFS{
		TrophyMesh: {Data: []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")},
	}
}

func TestPlatformerLayout(t *testing.T) {
	s := newScene(t)
	cache := mesh.NewCache(trophyFS(), zaptest.NewLogger(t))
	require.NoError(t, Build("platformer", s, Deps{Meshes: cache}))

	assert.Len(t, s.FindByTag(TagEnemy), len(EnemyPositions))
	player := s.Find("player")
	require.NotNil(t, player)
	require.NotNil(t, player.Rigidbody())
	assert.Same(t, s.Camera().Entity(), player)

	trophy := s.Find("trophy")
	require.NotNil(t, trophy)
	_, ok := engine.GetComponent[*component.Mesh](trophy)
	assert.True(t, ok)
}

func TestPlatformerMissingMeshOnlySkipsTrophy(t *testing.T) {
	s := newScene(t)
	cache := mesh.NewCache(fstest.MapFS{}, zaptest.NewLogger(t))
	require.NoError(t, Build("platformer", s, Deps{Meshes: cache}))
	assert.Nil(t, s.Find("trophy"))
	assert.NotNil(t, s.Find("spinner"))
}

func TestPlatformerPlayerLands(t *testing.T) {
	s := newScene(t)
	require.NoError(t, Build("platformer", s, Deps{}))
	player := s.Find("player")
	require.NotNil(t, player)
	walker, ok := engine.GetComponent[*component.Walker](player)
	require.True(t, ok)
	rec := render.NewRecorder()

	for range 180 {
		frame(s, rec)
	}
	assert.True(t, walker.CanJump())
	assert.InDelta(t, 1.0, player.Transform().Position().Y(), 0.15)
}

func TestShooterReloads(t *testing.T) {
	s := newScene(t)
	sounds := &soundLog{}
	sh := NewShooter(sounds)
	_, err := s.NewEntity("gun", sh)
	require.NoError(t, err)

	s.Input().Update([]input.Event{{Type: input.EventKey, Key: input.Rune('q')}})
	s.Update(dt)
	assert.Equal(t, 1, sh.Fired())
	bullets := s.FindByTag(TagBullet)
	require.Len(t, bullets, 1)
	assert.InDelta(t, 1.0, bullets[0].Transform().Position().Z(), 1e-9)
	assert.Positive(t, bullets[0].Rigidbody().Body().Force().Z())

	s.Update(dt)
	assert.Equal(t, 1, sh.Fired(), "reloading")
	assert.Equal(t, []audio.SoundType{audio.SoundJump}, sounds.played)
}

func TestEnemyDiesToBullet(t *testing.T) {
	s := newScene(t)
	sounds := &soundLog{}
	enemy, err := s.NewEntity("enemy", engine.NewBoxCollider(), &EnemyBehaviour{player: sounds})
	require.NoError(t, err)
	enemy.Tag = TagEnemy
	rock, err := s.NewEntity("rock", engine.NewTransform(engine.WithPosition(mgl64.Vec3{0.5, 0, 0})), engine.NewSphereCollider())
	require.NoError(t, err)

	s.Step(dt)
	assert.True(t, enemy.Alive(), "only bullets kill")

	rock.Tag = TagBullet
	s.Step(dt)
	assert.False(t, enemy.Alive())
	assert.Empty(t, s.FindByTag(TagEnemy))
	assert.Equal(t, []audio.SoundType{audio.SoundHit}, sounds.played)
}

func TestLifetimeAndSpin(t *testing.T) {
	s := newScene(t)
	e, err := s.NewEntity("temp", &Spin{Rate: 1}, NewLifetime(0.05))
	require.NoError(t, err)

	s.Update(0.1)
	assert.False(t, e.Alive())
	assert.NotEqual(t, mgl64.QuatIdent(), e.Transform().Rotation())
}
