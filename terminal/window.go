// Package terminal provides the engine window on a tcell screen: a background event
// pump feeding a buffered channel that the frame loop drains without blocking
package terminal

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/ngine/core"
	"github.com/lixenwraith/ngine/input"
)

// EventBuffer is the capacity of the pump channel
const EventBuffer = 256

// Window owns a tcell screen for the lifetime of a game
type Window struct {
	screen  tcell.Screen
	eventCh chan input.Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once
	dropped atomic.Uint64
	logger  *zap.Logger
}

// Open initializes screen (a new terminal screen when nil), registers it for crash
// restoration and starts the event pump
func Open(screen tcell.Screen, logger *zap.Logger) (*Window, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("terminal screen: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()
	core.SetCrashScreen(screen)

	w := &Window{
		screen:  screen,
		eventCh: make(chan input.Event, EventBuffer),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		logger:  logger.Named("terminal"),
	}
	core.Go(w.pollLoop)
	return w, nil
}

// pollLoop reads screen events until the screen is finalized or the window closes
func (w *Window) pollLoop() {
	defer close(w.doneCh)

	for {
		ev := w.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case <-w.stopCh:
			return
		default:
		}

		e, ok := Translate(ev)
		if !ok {
			continue
		}
		if e.Type == input.EventQuit {
			// Quit is never dropped
			select {
			case w.eventCh <- e:
			case <-w.stopCh:
				return
			}
			continue
		}
		select {
		case w.eventCh <- e:
		default:
			w.dropped.Add(1)
		}
	}
}

// PollEvents drains pending events without blocking
func (w *Window) PollEvents() []input.Event {
	var out []input.Event
	for {
		select {
		case e := <-w.eventCh:
			out = append(out, e)
		default:
			return out
		}
	}
}

// Present shows the cells drawn this frame
func (w *Window) Present() error {
	w.screen.Show()
	return nil
}

// Size returns the screen size in cells
func (w *Window) Size() (int, int) {
	return w.screen.Size()
}

// Screen exposes the screen for renderers
func (w *Window) Screen() tcell.Screen { return w.screen }

// Dropped returns the number of events discarded because the buffer was full
func (w *Window) Dropped() uint64 { return w.dropped.Load() }

// Close stops the pump and restores the terminal, idempotent
func (w *Window) Close() {
	w.once.Do(func() {
		close(w.stopCh)
		// Fini makes PollEvent return nil
		w.screen.Fini()
		<-w.doneCh
		core.SetCrashScreen(nil)
		if n := w.dropped.Load(); n > 0 {
			w.logger.Warn("input events dropped", zap.Uint64("count", n))
		}
		w.logger.Debug("terminal closed")
	})
}
