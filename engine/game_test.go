package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lixenwraith/ngine/config"
	"github.com/lixenwraith/ngine/input"
	"github.com/lixenwraith/ngine/render"
)

// phased journals update and render calls
type phased struct {
	BaseComponent
	journal *[]string
}

func (p *phased) Update(float64)        { *p.journal = append(*p.journal, "update") }
func (p *phased) Render(render.Renderer) { *p.journal = append(*p.journal, "render") }

// panicker fails in the update phase
type panicker struct {
	BaseComponent
	value any
}

func (p *panicker) Update(float64) { panic(p.value) }

func newTestGame(t *testing.T, w *fakeWindow, opts ...GameOption) (*Game, *render.Recorder) {
	t.Helper()
	cfg := config.Default()
	cfg.Window.FPS = 200
	rec := render.NewRecorder()
	opts = append([]GameOption{WithGameLogger(zaptest.NewLogger(t))}, opts...)
	g, err := NewGame(cfg, w, rec, opts...)
	require.NoError(t, err)
	return g, rec
}

func TestNewGameValidatesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Window.FPS = 0
	_, err := NewGame(cfg, &fakeWindow{}, render.NewRecorder())
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestFrameOrder(t *testing.T) {
	var journal []string
	w := &fakeWindow{onPresent: func() { journal = append(journal, "present") }}
	g, rec := newTestGame(t, w)
	require.NoError(t, g.Start())

	_, err := g.Scene().NewEntity("p", &phased{journal: &journal})
	require.NoError(t, err)
	falling, err := g.Scene().NewEntity("falling",
		NewTransform(WithPosition(mgl64.Vec3{0, 10, 0})),
		NewRigidbody(1),
	)
	require.NoError(t, err)

	require.NoError(t, g.Frame(g.Config().FrameTime()))

	assert.Equal(t, []string{"update", "render", "present"}, journal)
	assert.Equal(t, 1, rec.Frames())
	assert.Less(t, falling.Transform().Position().Y(), 10.0, "physics stepped after render")
	assert.Equal(t, uint64(1), g.FrameCount())
}

func TestFrameInputReachesScene(t *testing.T) {
	w := &fakeWindow{batches: [][]input.Event{{{Type: input.EventKey, Key: input.KeyLeft}}}}
	g, _ := newTestGame(t, w)
	require.NoError(t, g.Start())

	var axis float64
	probe := &inputReader{read: func(in *input.State) { axis = in.HorizontalAxis() }}
	_, err := g.Scene().NewEntity("reader", probe)
	require.NoError(t, err)

	require.NoError(t, g.Frame(0))
	assert.Equal(t, -1.0, axis)
}

type inputReader struct {
	BaseComponent
	read func(*input.State)
}

func (r *inputReader) Update(float64) { r.read(r.Input()) }

func TestFramePanicBecomesFrameError(t *testing.T) {
	g, _ := newTestGame(t, &fakeWindow{})
	require.NoError(t, g.Start())
	boom := errors.New("boom")
	_, err := g.Scene().NewEntity("bad", &panicker{value: boom})
	require.NoError(t, err)

	err = g.Frame(0)

	var fe *FrameError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, PhaseUpdate, fe.Phase)
	assert.Equal(t, uint64(1), fe.Frame)
	assert.NotEmpty(t, fe.Stack)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "frame 1 update: panic: boom")
}

func TestFrameRequiresRunning(t *testing.T) {
	g, _ := newTestGame(t, &fakeWindow{})
	assert.Equal(t, StateUninitialized, g.State())
	assert.ErrorIs(t, g.Frame(0), ErrNotRunning)

	require.NoError(t, g.Start())
	require.NoError(t, g.Stop())
	assert.Equal(t, StateStopped, g.State())
	assert.ErrorIs(t, g.Frame(0), ErrNotRunning)
	assert.ErrorIs(t, g.Start(), ErrGameStopped)
	assert.ErrorIs(t, g.Run(context.Background()), ErrGameStopped)
}

func TestRunQuitsOnQuitEvent(t *testing.T) {
	w := &fakeWindow{batches: [][]input.Event{nil, {{Type: input.EventQuit}}}}
	closed := 0
	g, _ := newTestGame(t, w, WithCloser(closerFunc(func() error { closed++; return nil })))
	e, err := g.Scene().NewEntity("e", NewRigidbody(1))
	require.NoError(t, err)

	require.NoError(t, g.Run(context.Background()))

	assert.Equal(t, StateStopped, g.State())
	assert.Equal(t, uint64(2), g.FrameCount())
	assert.Equal(t, 1, w.presents, "the quitting frame does not render")
	assert.Equal(t, 1, w.closed)
	assert.Equal(t, 1, closed)
	assert.Nil(t, e.Transform(), "scene torn down")
	assert.Empty(t, g.Scene().World().Bodies())

	require.NoError(t, g.Stop())
	assert.Equal(t, 1, w.closed, "teardown runs once")
}

func TestRunReturnsFrameErrorAfterTeardown(t *testing.T) {
	presentErr := errors.New("display lost")
	w := &fakeWindow{presentErr: presentErr}
	closerErr := errors.New("speaker busy")
	g, _ := newTestGame(t, w, WithCloser(closerFunc(func() error { return closerErr })))

	err := g.Run(context.Background())

	var fe *FrameError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, PhaseRender, fe.Phase)
	assert.ErrorIs(t, err, presentErr)
	assert.NotErrorIs(t, err, closerErr, "the frame error wins over teardown errors")
	assert.Equal(t, 1, w.closed)
}

func TestRunStopsOnCancel(t *testing.T) {
	w := &fakeWindow{}
	g, _ := newTestGame(t, w)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, g.Run(ctx))
	assert.Equal(t, StateStopped, g.State())
	assert.Equal(t, 1, w.closed)
}

func TestQuitBeforeRun(t *testing.T) {
	w := &fakeWindow{}
	g, _ := newTestGame(t, w)
	g.Quit()

	require.NoError(t, g.Run(context.Background()))
	assert.Equal(t, uint64(1), g.FrameCount())
	assert.Zero(t, w.presents)
}

func TestStopReportsCloserErrors(t *testing.T) {
	closerErr := errors.New("speaker busy")
	g, _ := newTestGame(t, &fakeWindow{}, WithCloser(closerFunc(func() error { return closerErr })))
	require.NoError(t, g.Start())
	assert.ErrorIs(t, g.Stop(), closerErr)
}
