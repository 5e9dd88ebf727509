package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lixenwraith/ngine/input"
	"github.com/lixenwraith/ngine/render"
)

// probe records its lifecycle calls into a shared journal
type probe struct {
	BaseComponent

	name     string
	journal  *[]string
	startErr error
	reply    any
	onUpdate func(p *probe)
	hits     []*Entity
	removed  int
}

func newProbe(name string, journal *[]string) *probe {
	return &probe{name: name, journal: journal}
}

func (p *probe) note(s string) {
	if p.journal != nil {
		*p.journal = append(*p.journal, s+" "+p.name)
	}
}

func (p *probe) Start() error {
	p.note("start")
	return p.startErr
}

func (p *probe) Update(float64) {
	p.note("update")
	if p.onUpdate != nil {
		p.onUpdate(p)
	}
}

func (p *probe) HandleMessage(name string, args []any) any {
	p.note("message")
	return p.reply
}

func (p *probe) OnCollision(other *Entity) {
	p.hits = append(p.hits, other)
}

func (p *probe) OnRemove() {
	p.removed++
	p.note("remove")
}

// paintable is a renderable probe
type paintable struct {
	probe
	color render.Color
}

func (p *paintable) Render(r render.Renderer) {
	r.SetColor(p.color)
}

func newTestScene(t *testing.T, opts ...SceneOption) *Scene {
	t.Helper()
	opts = append([]SceneOption{WithLogger(zaptest.NewLogger(t))}, opts...)
	s := NewScene(opts...)
	t.Cleanup(s.Close)
	return s
}

func mustEntity(t *testing.T, s *Scene, name string, comps ...Component) *Entity {
	t.Helper()
	e, err := s.NewEntity(name, comps...)
	require.NoError(t, err)
	return e
}

// fakeWindow replays queued event batches, one per poll
type fakeWindow struct {
	batches    [][]input.Event
	presents   int
	closed     int
	presentErr error
	onPresent  func()
}

func (w *fakeWindow) PollEvents() []input.Event {
	if len(w.batches) == 0 {
		return nil
	}
	b := w.batches[0]
	w.batches = w.batches[1:]
	return b
}

func (w *fakeWindow) Present() error {
	w.presents++
	if w.onPresent != nil {
		w.onPresent()
	}
	return w.presentErr
}

func (w *fakeWindow) Close() { w.closed++ }

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
