package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/ngine/config"
	"github.com/lixenwraith/ngine/input"
	"github.com/lixenwraith/ngine/physics"
	"github.com/lixenwraith/ngine/render"
)

// GameState is the frame loop lifecycle
type GameState int32

const (
	StateUninitialized GameState = iota
	StateRunning
	StateStopped
)

func (s GameState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("GameState(%d)", int32(s))
}

// Window is the display and event source driven by the frame loop
type Window interface {
	// PollEvents returns pending events without blocking
	PollEvents() []input.Event
	// Present shows the frame drawn since the last call
	Present() error
	Close()
}

// Game owns one scene and drives it at a fixed frame rate
type Game struct {
	cfg      config.Config
	window   Window
	renderer render.Renderer
	scene    *Scene
	input    *input.State
	logger   *zap.Logger
	closers  []io.Closer

	state atomic.Int32
	quit  atomic.Bool
	frame uint64
}

type GameOption func(*Game)

func WithGameLogger(l *zap.Logger) GameOption {
	return func(g *Game) { g.logger = l }
}

// WithCloser registers a resource released during teardown, after the scene
func WithCloser(c io.Closer) GameOption {
	return func(g *Game) { g.closers = append(g.closers, c) }
}

// NewGame validates cfg and creates the scene
func NewGame(cfg config.Config, window Window, renderer render.Renderer, opts ...GameOption) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if window == nil || renderer == nil {
		return nil, errors.New("game needs a window and a renderer")
	}

	g := &Game{
		cfg:      cfg,
		window:   window,
		renderer: renderer,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.input = input.NewState(cfg.Window.KeyHold)
	gr := cfg.Physics.Gravity
	g.scene = NewScene(
		WithGravity(mgl64.Vec3{gr[0], gr[1], gr[2]}),
		WithERP(cfg.Physics.ERP),
		WithCFM(cfg.Physics.CFM),
		WithSurface(physics.Surface{Mu: cfg.Physics.Mu, Bounce: cfg.Physics.Bounce}),
		WithLightUnits(cfg.Render.LightUnits),
		WithInput(g.input),
		WithLogger(g.logger),
	)
	return g, nil
}

func (g *Game) Scene() *Scene             { return g.scene }
func (g *Game) Input() *input.State       { return g.input }
func (g *Game) Config() config.Config     { return g.cfg }
func (g *Game) State() GameState          { return GameState(g.state.Load()) }
func (g *Game) FrameCount() uint64        { return g.frame }
func (g *Game) Renderer() render.Renderer { return g.renderer }

// Quit asks the loop to stop after the current frame; safe from any goroutine
func (g *Game) Quit() { g.quit.Store(true) }

// Start enters the running state; the scene may already be populated
func (g *Game) Start() error {
	if !g.state.CompareAndSwap(int32(StateUninitialized), int32(StateRunning)) {
		if g.State() == StateStopped {
			return ErrGameStopped
		}
		return nil
	}
	g.logger.Info("game started", zap.Int("fps", g.cfg.Window.FPS))
	return nil
}

// Run starts the game and steps frames on a ticker until quit, context cancellation or a frame error
// Teardown always runs before Run returns
func (g *Game) Run(ctx context.Context) (err error) {
	if err := g.Start(); err != nil {
		return err
	}
	defer func() {
		if cerr := g.Stop(); err == nil {
			err = cerr
		}
	}()

	dt := g.cfg.FrameTime()
	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.Window.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.logger.Info("game cancelled", zap.Error(ctx.Err()))
			return nil
		case <-ticker.C:
			if err := g.Frame(dt); err != nil {
				g.logger.Error("frame failed", zap.Error(err))
				return err
			}
			if g.quitRequested() {
				g.logger.Info("game quit", zap.Uint64("frames", g.frame))
				return nil
			}
		}
	}
}

func (g *Game) quitRequested() bool {
	return g.quit.Load() || g.input.QuitRequested()
}

// Frame runs one iteration: input, update, render and present, physics step
// A panic in any phase is returned as a *FrameError
func (g *Game) Frame(dt float64) (err error) {
	if g.State() != StateRunning {
		return ErrNotRunning
	}
	g.frame++
	phase := PhaseInput

	defer func() {
		if r := recover(); r != nil {
			err = &FrameError{
				Frame: g.frame,
				Phase: phase,
				Value: r,
				Stack: debug.Stack(),
			}
		}
	}()

	g.input.Update(g.window.PollEvents())
	if g.quitRequested() {
		return nil
	}

	phase = PhaseUpdate
	g.scene.Update(dt)

	phase = PhaseRender
	g.renderer.BeginFrame()
	g.scene.Render(g.renderer)
	if err := g.window.Present(); err != nil {
		return &FrameError{Frame: g.frame, Phase: phase, Err: err}
	}

	phase = PhasePhysics
	g.scene.Step(dt)
	return nil
}

// Stop tears down the scene, registered closers and the window; later calls do nothing
func (g *Game) Stop() error {
	if GameState(g.state.Swap(int32(StateStopped))) == StateStopped {
		return nil
	}

	g.scene.Close()
	var errs []error
	for _, c := range g.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	g.window.Close()
	g.logger.Info("game stopped", zap.Uint64("frames", g.frame))
	return errors.Join(errs...)
}
