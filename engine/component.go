package engine

import (
	"github.com/lixenwraith/ngine/input"
	"github.com/lixenwraith/ngine/render"
)

// Component is a unit of state or behaviour attached to an Entity
// Implementations embed BaseComponent, which supplies the owner binding and no-op hooks
//
// Lifecycle: a component is constructed detached (no physics or renderer resources),
// then Entity.AddComponent binds it and calls Start exactly once after all bookkeeping.
// Removal calls OnRemove (when implemented) while the owner is still reachable, then clears it
type Component interface {
	// Entity returns the owner, nil while detached
	Entity() *Entity
	// Start acquires resources and may read sibling components
	Start() error
	Update(dt float64)

	base() *BaseComponent
}

// Renderable components draw through the renderer during the render pass
type Renderable interface {
	Render(r render.Renderer)
}

// CollisionHandler components are told about contacts involving their entity
type CollisionHandler interface {
	OnCollision(other *Entity)
}

// MessageHandler components answer named messages; nil means "not handled"
type MessageHandler interface {
	HandleMessage(name string, args []any) any
}

// Remover components release resources when detached
type Remover interface {
	OnRemove()
}

// BaseComponent provides the owner reference and default hooks
type BaseComponent struct {
	entity *Entity
}

func (b *BaseComponent) Entity() *Entity      { return b.entity }
func (b *BaseComponent) Start() error         { return nil }
func (b *BaseComponent) Update(float64)       {}
func (b *BaseComponent) base() *BaseComponent { return b }

// Attached reports whether the component has an owner
func (b *BaseComponent) Attached() bool { return b.entity != nil }

// Transform returns the owner's transform, nil while detached
func (b *BaseComponent) Transform() *Transform {
	if b.entity == nil {
		return nil
	}
	return b.entity.transform
}

// Rigidbody returns the owner's rigidbody, if any
func (b *BaseComponent) Rigidbody() *Rigidbody {
	if b.entity == nil {
		return nil
	}
	return b.entity.rigidbody
}

// Collider returns the owner's collider, if any
func (b *BaseComponent) Collider() *Collider {
	if b.entity == nil {
		return nil
	}
	return b.entity.collider
}

// Scene returns the owner's scene, if any
func (b *BaseComponent) Scene() *Scene {
	if b.entity == nil {
		return nil
	}
	return b.entity.scene
}

// Input returns the scene input state, nil when unavailable
func (b *BaseComponent) Input() *input.State {
	if s := b.Scene(); s != nil {
		return s.input
	}
	return nil
}
