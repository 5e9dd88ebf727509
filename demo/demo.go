// Package demo builds the sample scenes shipped with the engine
package demo

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/lixenwraith/ngine/audio"
	"github.com/lixenwraith/ngine/engine"
	"github.com/lixenwraith/ngine/mesh"
)

// ErrUnknownDemo is returned by Build for an unregistered name
var ErrUnknownDemo = errors.New("unknown demo")

// Deps are the optional services a demo may use
type Deps struct {
	Player audio.Player
	Meshes *mesh.Cache
	Logger *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Player == nil {
		d.Player = audio.NopPlayer{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return d
}

// Builder populates a scene
type Builder func(s *engine.Scene, d Deps) error

var builders = map[string]Builder{
	"pong":       BuildPong,
	"platformer": BuildPlatformer,
}

// Names lists the registered demos, sorted
func Names() []string {
	names := make([]string, 0, len(builders))
	for n := range builders {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Assets lists the mesh files a demo would like preloaded
func Assets(name string) []string {
	if name == "platformer" {
		return []string{TrophyMesh}
	}
	return nil
}

// Build populates s with the named demo
func Build(name string, s *engine.Scene, d Deps) error {
	b, ok := builders[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDemo, name)
	}
	return b(s, d.withDefaults())
}

// entities builds several entities, stopping at the first error
type entities struct {
	s   *engine.Scene
	err error
}

func (b *entities) add(name, tag string, comps ...engine.Component) *engine.Entity {
	if b.err != nil {
		return nil
	}
	e, err := b.s.NewEntity(name, comps...)
	if err != nil {
		b.err = fmt.Errorf("%s: %w", name, err)
		return nil
	}
	e.Tag = tag
	return e
}
