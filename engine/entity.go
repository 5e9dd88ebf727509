package engine

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/ngine/render"
)

// Entity is a node of the scene tree owning an ordered list of components
// It always holds exactly one Transform and at most one Rigidbody and one Collider
type Entity struct {
	ID   uuid.UUID
	Name string
	Tag  string

	scene    *Scene
	parent   *Entity
	children []*Entity

	components  []Component
	renderables []Renderable
	transform   *Transform
	rigidbody   *Rigidbody
	collider    *Collider

	// dying is set by Destroy, the entity is skipped until torn down
	dying     bool
	destroyed bool
}

// NewEntity creates an entity outside any scene
// A Transform is added first unless comps starts with one
func NewEntity(name string, comps ...Component) (*Entity, error) {
	return buildEntity(nil, nil, name, comps)
}

func buildEntity(s *Scene, parent *Entity, name string, comps []Component) (*Entity, error) {
	e := &Entity{
		ID:     uuid.New(),
		Name:   name,
		scene:  s,
		parent: parent,
	}

	if len(comps) == 0 || !isTransform(comps[0]) {
		comps = append([]Component{NewTransform()}, comps...)
	}
	for _, c := range comps {
		if err := e.AddComponent(c); err != nil {
			e.teardown()
			return nil, fmt.Errorf("entity %q: %w", name, err)
		}
	}

	e.log().Debug("entity created",
		zap.String("name", name),
		zap.Stringer("id", e.ID),
		zap.Int("components", len(e.components)))
	return e, nil
}

func isTransform(c Component) bool {
	_, ok := c.(*Transform)
	return ok
}

func (e *Entity) log() *zap.Logger {
	if e.scene != nil {
		return e.scene.logger
	}
	return zap.NewNop()
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s(%s)", e.Name, e.ID.String()[:8])
}

// Scene returns the owning scene, nil for a free entity
func (e *Entity) Scene() *Scene { return e.scene }

func (e *Entity) Transform() *Transform { return e.transform }
func (e *Entity) Rigidbody() *Rigidbody { return e.rigidbody }
func (e *Entity) Collider() *Collider   { return e.collider }

// Components returns the components in insertion order
func (e *Entity) Components() []Component { return slices.Clone(e.components) }

// Renderables returns the renderable components in insertion order
func (e *Entity) Renderables() []Renderable { return slices.Clone(e.renderables) }

func (e *Entity) Parent() *Entity { return e.parent }

// Children returns the direct children in insertion order
func (e *Entity) Children() []*Entity { return slices.Clone(e.children) }

// Alive reports whether the entity is neither destroyed nor pending destruction
func (e *Entity) Alive() bool { return !e.dying && !e.destroyed }

// GetComponent returns the first component of type T in insertion order
func GetComponent[T any](e *Entity) (T, bool) {
	for _, c := range e.components {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// AddComponents adds each component in order, stopping at the first error
func (e *Entity) AddComponents(comps ...Component) error {
	for _, c := range comps {
		if err := e.AddComponent(c); err != nil {
			return err
		}
	}
	return nil
}

// AddComponent attaches c and runs its Start hook
// A Transform, Rigidbody or Collider replaces the current occupant of its slot; the previous
// occupant is detached only after the new one started successfully. When Start fails the
// entity is left exactly as it was and the error is returned
func (e *Entity) AddComponent(c Component) error {
	if isNil(c) {
		return ErrNilComponent
	}
	if e.destroyed {
		return ErrEntityDestroyed
	}
	b := c.base()
	if b.entity != nil {
		return fmt.Errorf("%T: %w", c, ErrComponentAttached)
	}

	e.components = append(e.components, c)
	r, renderable := c.(Renderable)
	if renderable {
		e.renderables = append(e.renderables, r)
	}

	var prev Component
	switch v := c.(type) {
	case *Transform:
		if e.transform != nil {
			prev = e.transform
		}
		e.transform = v
	case *Rigidbody:
		if e.rigidbody != nil {
			prev = e.rigidbody
		}
		e.rigidbody = v
	case *Collider:
		if e.collider != nil {
			prev = e.collider
		}
		e.collider = v
	case *Camera:
		if e.linked() {
			e.scene.registerCamera(v)
		}
	case *Light:
		if e.linked() {
			e.scene.registerLight(v)
		}
	}
	b.entity = e

	if err := c.Start(); err != nil {
		e.unlink(c)
		switch v := c.(type) {
		case *Transform:
			e.transform, _ = prev.(*Transform)
		case *Rigidbody:
			e.rigidbody, _ = prev.(*Rigidbody)
		case *Collider:
			e.collider, _ = prev.(*Collider)
		case *Camera:
			if e.scene != nil {
				e.scene.unregisterCamera(v)
			}
		case *Light:
			if e.scene != nil {
				e.scene.unregisterLight(v)
			}
		}
		b.entity = nil
		return fmt.Errorf("start %T: %w", c, err)
	}

	if prev != nil {
		e.detach(prev)
	}
	e.log().Debug("component added", zap.Stringer("entity", e), zap.String("type", fmt.Sprintf("%T", c)))
	return nil
}

// RemoveComponent detaches c from the entity
// A nil component is a no-op. The current Transform can only be replaced, not removed
func (e *Entity) RemoveComponent(c Component) error {
	if isNil(c) {
		return nil
	}
	if c.Entity() != e {
		return fmt.Errorf("%T: %w", c, ErrComponentNotFound)
	}
	if t, ok := c.(*Transform); ok && t == e.transform {
		return ErrTransformRequired
	}
	e.detach(c)
	e.log().Debug("component removed", zap.Stringer("entity", e), zap.String("type", fmt.Sprintf("%T", c)))
	return nil
}

// detach clears every registration of c, runs its release hook, then clears its owner
func (e *Entity) detach(c Component) {
	e.unlink(c)
	switch v := c.(type) {
	case *Transform:
		if e.transform == v {
			e.transform = nil
		}
	case *Rigidbody:
		if e.rigidbody == v {
			e.rigidbody = nil
		}
	case *Collider:
		if e.collider == v {
			e.collider = nil
		}
	case *Camera:
		if e.scene != nil {
			e.scene.unregisterCamera(v)
		}
	case *Light:
		if e.scene != nil {
			e.scene.unregisterLight(v)
		}
	}
	if rm, ok := c.(Remover); ok {
		rm.OnRemove()
	}
	c.base().entity = nil
}

// unlink removes c from the component and render lists
func (e *Entity) unlink(c Component) {
	e.components = slices.DeleteFunc(e.components, func(x Component) bool { return x == c })
	if _, ok := c.(Renderable); ok {
		e.renderables = slices.DeleteFunc(e.renderables, func(r Renderable) bool { return any(r) == any(c) })
	}
}

// isNil catches both untyped nil and typed nil pointers
func isNil(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Update runs every component then every child, pre-order
// Iteration works on snapshots so components may restructure the tree while running
func (e *Entity) Update(dt float64) {
	if !e.Alive() {
		return
	}
	for _, c := range slices.Clone(e.components) {
		if c.Entity() != e || !e.Alive() {
			continue
		}
		c.Update(dt)
	}
	if !e.Alive() {
		return
	}
	for _, child := range slices.Clone(e.children) {
		if child.parent == e {
			child.Update(dt)
		}
	}
}

// Render draws the renderable components then the children, pre-order
func (e *Entity) Render(r render.Renderer) {
	if !e.Alive() {
		return
	}
	for _, rc := range slices.Clone(e.renderables) {
		if c, ok := rc.(Component); ok && c.Entity() != e {
			continue
		}
		rc.Render(r)
	}
	for _, child := range slices.Clone(e.children) {
		if child.parent == e {
			child.Render(r)
		}
	}
}

// HandleMessage offers the message to each component in order and returns the first non-nil answer
func (e *Entity) HandleMessage(name string, args ...any) any {
	for _, c := range slices.Clone(e.components) {
		h, ok := c.(MessageHandler)
		if !ok || c.Entity() != e {
			continue
		}
		if res := h.HandleMessage(name, args); res != nil {
			return res
		}
	}
	return nil
}

// OnCollision forwards a contact with other to every collision handler
func (e *Entity) OnCollision(other *Entity) {
	for _, c := range slices.Clone(e.components) {
		h, ok := c.(CollisionHandler)
		if !ok || c.Entity() != e {
			continue
		}
		h.OnCollision(other)
	}
}

// AddChild moves child under e, detaching it from its previous parent
// A free child joins e's scene
func (e *Entity) AddChild(child *Entity) error {
	if child == nil {
		return fmt.Errorf("add child: nil entity")
	}
	if e.destroyed || child.destroyed {
		return ErrEntityDestroyed
	}
	for p := e; p != nil; p = p.parent {
		if p == child {
			return ErrCycle
		}
	}
	if child.scene != nil && child.scene != e.scene {
		return ErrForeignScene
	}

	wasLinked := child.linked()
	if child.parent != nil {
		child.parent.removeChildRef(child)
	}
	child.parent = e
	e.children = append(e.children, child)

	if child.scene == nil && e.scene != nil {
		e.scene.adopt(child)
	}
	switch linked := child.linked(); {
	case linked && !wasLinked:
		e.scene.enlist(child)
	case !linked && wasLinked:
		e.scene.disown(child)
	}
	return nil
}

// RemoveChild detaches child from e; it stays alive but leaves the update and render passes
// and gives up its cameras and lights until it rejoins the tree
func (e *Entity) RemoveChild(child *Entity) error {
	if child == nil || child.parent != e {
		return ErrNotChild
	}
	wasLinked := child.linked()
	e.removeChildRef(child)
	child.parent = nil
	if wasLinked {
		e.scene.disown(child)
	}
	return nil
}

// linked reports whether e hangs under its scene's root
func (e *Entity) linked() bool {
	if e.scene == nil {
		return false
	}
	for p := e; p != nil; p = p.parent {
		if p == e.scene.root {
			return true
		}
	}
	return false
}

func (e *Entity) removeChildRef(child *Entity) {
	e.children = slices.DeleteFunc(e.children, func(x *Entity) bool { return x == child })
}

// NewChild creates an entity under e in e's scene
func (e *Entity) NewChild(name string, comps ...Component) (*Entity, error) {
	if e.destroyed {
		return nil, ErrEntityDestroyed
	}
	child, err := buildEntity(e.scene, e, name, comps)
	if err != nil {
		return nil, err
	}
	e.children = append(e.children, child)
	return child, nil
}

// Destroy removes the entity and its subtree
// Inside a scene the teardown is deferred to the end of the current physics step
func (e *Entity) Destroy() {
	if e.dying || e.destroyed {
		return
	}
	if e.scene != nil && e.scene.root != e {
		e.dying = true
		e.scene.pending = append(e.scene.pending, e)
		return
	}
	e.teardown()
}

// teardown releases children first, then components in reverse insertion order
func (e *Entity) teardown() {
	if e.destroyed {
		return
	}
	e.destroyed = true

	for _, child := range slices.Clone(e.children) {
		child.teardown()
	}
	e.children = nil
	if e.parent != nil {
		e.parent.removeChildRef(e)
		e.parent = nil
	}

	comps := slices.Clone(e.components)
	for i := len(comps) - 1; i >= 0; i-- {
		if comps[i].Entity() == e {
			e.detach(comps[i])
		}
	}
	e.log().Debug("entity destroyed", zap.Stringer("entity", e))
}
