package engine

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ngine/render"
)

func TestNewEntityAddsDefaultTransform(t *testing.T) {
	e, err := NewEntity("free")
	require.NoError(t, err)
	require.NotNil(t, e.Transform())
	assert.Same(t, e, e.Transform().Entity())
	assert.Len(t, e.Components(), 1)

	custom := NewTransform(WithPosition(mgl64.Vec3{1, 2, 3}))
	e2, err := NewEntity("custom", custom)
	require.NoError(t, err)
	assert.Same(t, custom, e2.Transform())
	assert.Len(t, e2.Components(), 1)
	assert.NotEqual(t, e.ID, e2.ID)
}

func TestReplaceTransform(t *testing.T) {
	e, err := NewEntity("e")
	require.NoError(t, err)
	first := e.Transform()
	second := NewTransform()

	require.NoError(t, e.AddComponent(second))

	assert.Same(t, second, e.Transform())
	assert.Nil(t, first.Entity())
	assert.NotContains(t, e.Components(), Component(first))
	assert.Len(t, e.Components(), 1)
}

func TestUpdateOrder(t *testing.T) {
	var journal []string
	a, b, c := newProbe("A", &journal), newProbe("B", &journal), newProbe("C", &journal)
	e, err := NewEntity("e", a, b, c)
	require.NoError(t, err)
	journal = nil

	e.Update(1.0 / 60)

	assert.Equal(t, []string{"update A", "update B", "update C"}, journal)
}

func TestUpdatePreOrder(t *testing.T) {
	s := newTestScene(t)
	var journal []string
	parent := mustEntity(t, s, "parent", newProbe("parent", &journal))
	_, err := parent.NewChild("child", newProbe("child", &journal))
	require.NoError(t, err)
	mustEntity(t, s, "sibling", newProbe("sibling", &journal))
	journal = nil

	s.Update(0)

	assert.Equal(t, []string{"update parent", "update child", "update sibling"}, journal)
}

func TestStartRunsAfterBinding(t *testing.T) {
	var seen *Transform
	p := newProbe("p", nil)
	e, err := NewEntity("e")
	require.NoError(t, err)

	starter := &startReader{probe: p, seen: &seen}
	require.NoError(t, e.AddComponent(starter))
	assert.Same(t, e.Transform(), seen)
}

type startReader struct {
	*probe
	seen **Transform
}

func (s *startReader) Start() error {
	*s.seen = s.Transform()
	return nil
}

func TestAddComponentErrors(t *testing.T) {
	e, err := NewEntity("e")
	require.NoError(t, err)
	other, err := NewEntity("other")
	require.NoError(t, err)

	p := newProbe("p", nil)
	require.NoError(t, e.AddComponent(p))
	assert.ErrorIs(t, other.AddComponent(p), ErrComponentAttached)
	assert.ErrorIs(t, e.AddComponent(p), ErrComponentAttached)

	assert.ErrorIs(t, e.AddComponent(nil), ErrNilComponent)
	var typedNil *probe
	assert.ErrorIs(t, e.AddComponent(typedNil), ErrNilComponent)
}

func TestStartFailureRollsBack(t *testing.T) {
	var journal []string
	e, err := NewEntity("e", NewTransform(), newProbe("keep", &journal))
	require.NoError(t, err)
	before := e.Components()

	bad := &paintable{probe: probe{name: "bad", journal: &journal, startErr: errors.New("no")}}
	err = e.AddComponent(bad)
	require.Error(t, err)

	assert.Equal(t, before, e.Components())
	assert.Empty(t, e.Renderables())
	assert.Nil(t, bad.Entity())
	assert.Zero(t, bad.removed, "a failed start is not a removal")

	// The component can be reused once fixed
	bad.startErr = nil
	require.NoError(t, e.AddComponent(bad))
	assert.Len(t, e.Renderables(), 1)
}

func TestRemoveComponent(t *testing.T) {
	var journal []string
	e, err := NewEntity("e")
	require.NoError(t, err)
	p := &paintable{probe: probe{name: "p", journal: &journal}}
	require.NoError(t, e.AddComponent(p))
	require.Len(t, e.Renderables(), 1)

	require.NoError(t, e.RemoveComponent(p))
	assert.Nil(t, p.Entity())
	assert.Empty(t, e.Renderables())
	assert.Equal(t, 1, p.removed)

	// Absent components are a no-op
	assert.NoError(t, e.RemoveComponent(nil))
	var typedNil *probe
	assert.NoError(t, e.RemoveComponent(typedNil))

	assert.ErrorIs(t, e.RemoveComponent(p), ErrComponentNotFound)
	assert.ErrorIs(t, e.RemoveComponent(e.Transform()), ErrTransformRequired)
}

func TestDetachedComponentIsNotUpdated(t *testing.T) {
	var journal []string
	p := newProbe("p", &journal)
	first := newProbe("first", &journal)
	e, err := NewEntity("e", first, p)
	require.NoError(t, err)
	first.onUpdate = func(*probe) { require.NoError(t, e.RemoveComponent(p)) }
	journal = nil

	e.Update(0)
	assert.Equal(t, []string{"update first", "remove p"}, journal)
}

func TestGetComponent(t *testing.T) {
	a, b := newProbe("a", nil), newProbe("b", nil)
	e, err := NewEntity("e", a, b)
	require.NoError(t, err)

	got, ok := GetComponent[*probe](e)
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = GetComponent[*Camera](e)
	assert.False(t, ok)

	h, ok := GetComponent[MessageHandler](e)
	require.True(t, ok)
	assert.Same(t, a, h)
}

func TestHandleMessage(t *testing.T) {
	silent := newProbe("silent", nil)
	e, err := NewEntity("e", silent)
	require.NoError(t, err)
	assert.Nil(t, e.HandleMessage("ping"))

	var journal []string
	first, answer, last := newProbe("first", &journal), newProbe("answer", &journal), newProbe("last", &journal)
	answer.reply = 42
	e2, err := NewEntity("e2", first, answer, last)
	require.NoError(t, err)
	journal = nil

	assert.Equal(t, 42, e2.HandleMessage("ping", "x"))
	assert.Equal(t, []string{"message first", "message answer"}, journal, "first non-nil answer stops the scan")
}

func TestRenderOnlyRenderables(t *testing.T) {
	e, err := NewEntity("e", newProbe("plain", nil), &paintable{color: render.Red})
	require.NoError(t, err)
	child, err := e.NewChild("child", &paintable{color: render.Blue})
	require.NoError(t, err)
	require.NotNil(t, child)

	rec := render.NewRecorder()
	e.Render(rec)

	var colors []render.Color
	for _, c := range rec.Calls() {
		if c.Op == render.OpSetColor {
			colors = append(colors, c.Color)
		}
	}
	assert.Equal(t, []render.Color{render.Red, render.Blue}, colors)
}

func TestTreeIsAForest(t *testing.T) {
	s := newTestScene(t)
	a := mustEntity(t, s, "a")
	b := mustEntity(t, s, "b")
	c, err := a.NewChild("c")
	require.NoError(t, err)

	require.NoError(t, b.AddChild(c))
	assert.Same(t, b, c.Parent())
	assert.Empty(t, a.Children())
	assert.Equal(t, []*Entity{c}, b.Children())

	assert.ErrorIs(t, c.AddChild(b), ErrCycle)
	assert.ErrorIs(t, c.AddChild(c), ErrCycle)

	other := newTestScene(t)
	assert.ErrorIs(t, other.Root().AddChild(a), ErrForeignScene)

	assert.ErrorIs(t, a.RemoveChild(c), ErrNotChild)
	require.NoError(t, b.RemoveChild(c))
	assert.Nil(t, c.Parent())
}

func TestFreeEntityJoinsScene(t *testing.T) {
	s := newTestScene(t)
	cam := NewCamera(10, mgl64.Vec3{})
	free, err := NewEntity("free", cam)
	require.NoError(t, err)
	assert.Nil(t, s.Camera())

	require.NoError(t, s.Add(free))
	assert.Same(t, s, free.Scene())
	assert.Same(t, cam, s.Camera())
	assert.True(t, cam.Active())
}

func TestRemoveChildReleasesRegistries(t *testing.T) {
	s := newTestScene(t)
	light := NewLight()
	cam := NewCamera(10, mgl64.Vec3{})
	lamp := mustEntity(t, s, "lamp", light, cam)
	bulb := NewLight()
	_, err := lamp.NewChild("bulb", bulb)
	require.NoError(t, err)
	require.Len(t, s.Lights(), 2)

	require.NoError(t, s.Root().RemoveChild(lamp))
	assert.Empty(t, s.Lights())
	assert.Equal(t, LightNone, light.Unit())
	assert.Equal(t, LightNone, bulb.Unit())
	assert.Nil(t, s.Camera())
	assert.False(t, cam.Active())

	rec := render.NewRecorder()
	s.Render(rec)
	assert.Zero(t, rec.Count(render.OpEnableLight))

	// components added while detached stay unregistered
	extra := NewLight()
	require.NoError(t, lamp.AddComponent(extra))
	assert.Equal(t, LightNone, extra.Unit())
	assert.Empty(t, s.Lights())

	require.NoError(t, s.Add(lamp))
	assert.Len(t, s.Lights(), 3)
	assert.NotEqual(t, LightNone, light.Unit())
	assert.NotEqual(t, LightNone, bulb.Unit())
	assert.NotEqual(t, LightNone, extra.Unit())
	assert.Same(t, cam, s.Camera())
	assert.True(t, cam.Active())
}

func TestMoveUnderDetachedParentReleasesRegistries(t *testing.T) {
	s := newTestScene(t)
	holder := mustEntity(t, s, "holder")
	require.NoError(t, s.Root().RemoveChild(holder))

	light := NewLight()
	lamp := mustEntity(t, s, "lamp", light)
	require.Len(t, s.Lights(), 1)

	require.NoError(t, holder.AddChild(lamp))
	assert.Empty(t, s.Lights())
	assert.Equal(t, LightNone, light.Unit())

	require.NoError(t, s.Add(holder))
	assert.Equal(t, 0, light.Unit())
}

func TestDestroyIsDeferred(t *testing.T) {
	s := newTestScene(t)
	var journal []string
	doomed := newProbe("doomed", &journal)
	after := newProbe("after", &journal)
	e := mustEntity(t, s, "e", doomed, after)
	_, err := e.NewChild("child")
	require.NoError(t, err)
	doomed.onUpdate = func(p *probe) { p.Entity().Destroy() }
	journal = nil

	s.Update(0)
	assert.Equal(t, []string{"update doomed"}, journal, "a dying entity stops updating")
	assert.False(t, e.Alive())
	assert.Same(t, s.Root(), e.Parent(), "still in the tree until the step ends")
	assert.Nil(t, s.Find("e"), "lookups skip dying entities")

	s.Step(1.0 / 60)
	assert.Nil(t, e.Parent())
	assert.Empty(t, s.Root().Children())
	assert.Nil(t, s.Find("child"))
	assert.Nil(t, doomed.Entity())
	assert.Nil(t, e.Transform())
	assert.Equal(t, 1, after.removed)
	assert.ErrorIs(t, e.AddComponent(newProbe("late", nil)), ErrEntityDestroyed)
}

func TestFindByTag(t *testing.T) {
	s := newTestScene(t)
	a := mustEntity(t, s, "a")
	a.Tag = "ball"
	b, err := a.NewChild("b")
	require.NoError(t, err)
	b.Tag = "ball"
	mustEntity(t, s, "c").Tag = "paddle"

	assert.Equal(t, []*Entity{a, b}, s.FindByTag("ball"))
	assert.Empty(t, s.FindByTag("wall"))
}
