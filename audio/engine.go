// Package audio synthesizes short sound effects and plays them through beep's speaker
package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/ngine/config"
)

// ErrClosed is returned when starting an engine that was already closed
var ErrClosed = errors.New("audio engine closed")

// bufferDuration is the speaker buffer length
const bufferDuration = 100 * time.Millisecond

// Player plays sound effects, a no-op when audio is unavailable
type Player interface {
	Play(s SoundType)
}

// NopPlayer discards every request
type NopPlayer struct{}

func (NopPlayer) Play(SoundType) {}

// output is the device the mixer streams into
type output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// speakerOutput drives the process-wide beep speaker
type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, n int) error { return speaker.Init(rate, n) }
func (speakerOutput) Play(s beep.Streamer)                   { speaker.Play(s) }
func (speakerOutput) Lock()                                  { speaker.Lock() }
func (speakerOutput) Unlock()                                { speaker.Unlock() }
func (speakerOutput) Close()                                 { speaker.Clear() }

// Engine owns one mixer fed to the speaker
type Engine struct {
	mu      sync.Mutex
	out     output
	mixer   *beep.Mixer
	rate    beep.SampleRate
	volume  float64
	muted   bool
	started bool
	closed  bool
	logger  *zap.Logger
}

// New creates an engine for cfg; Start must be called before sounds are audible
func New(cfg config.Audio, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		out:    speakerOutput{},
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.Volume,
		logger: logger.Named("audio"),
	}
}

// Start initializes the speaker and attaches the mixer, idempotent
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if e.started {
		return nil
	}
	if err := e.out.Init(e.rate, e.rate.N(bufferDuration)); err != nil {
		return err
	}
	e.out.Play(e.mixer)
	e.started = true
	e.logger.Debug("speaker started", zap.Int("rate", int(e.rate)))
	return nil
}

// Play queues a freshly synthesized effect onto the mixer
func (e *Engine) Play(s SoundType) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started || e.muted {
		return
	}
	st := Synthesize(s, e.rate, e.volume)
	if st == nil {
		e.logger.Warn("unknown sound", zap.Int("sound", int(s)))
		return
	}
	e.out.Lock()
	e.mixer.Add(st)
	e.out.Unlock()
}

// SetMuted drops subsequent Play calls while muted
func (e *Engine) SetMuted(m bool) {
	e.mu.Lock()
	e.muted = m
	e.mu.Unlock()
}

// Active returns the number of streamers still playing
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.out.Lock()
	defer e.out.Unlock()
	return e.mixer.Len()
}

// Close clears the mixer and releases the speaker, idempotent
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	if !e.started {
		return nil
	}
	e.out.Lock()
	e.mixer.Clear()
	e.out.Unlock()
	e.out.Close()
	e.started = false
	e.logger.Debug("speaker stopped")
	return nil
}
