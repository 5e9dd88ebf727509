package engine

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/lixenwraith/ngine/input"
	"github.com/lixenwraith/ngine/physics"
	"github.com/lixenwraith/ngine/render"
)

// Scene is the root entity plus the physics context and the camera and light registries it owns
type Scene struct {
	root *Entity

	world    *physics.World
	space    *physics.Space
	contacts *physics.ContactGroup
	surface  physics.Surface

	cameras []*Camera // registration order, the last one is active
	lights []*Light // indexed by light unit
	freed  []int    // units released since the last render

	input  *input.State
	logger *zap.Logger

	pending []*Entity
	closed  bool
}

type sceneOptions struct {
	gravity    mgl64.Vec3
	erp        float64
	cfm        float64
	lightUnits int
	surface    physics.Surface
	input      *input.State
	logger     *zap.Logger
}

type SceneOption func(*sceneOptions)

func WithGravity(g mgl64.Vec3) SceneOption {
	return func(o *sceneOptions) { o.gravity = g }
}

func WithERP(erp float64) SceneOption {
	return func(o *sceneOptions) { o.erp = erp }
}

func WithCFM(cfm float64) SceneOption {
	return func(o *sceneOptions) { o.cfm = cfm }
}

// WithLightUnits caps the light registry, at most render.MaxLightUnits
func WithLightUnits(n int) SceneOption {
	return func(o *sceneOptions) { o.lightUnits = n }
}

// WithSurface sets the contact surface used for every collision
func WithSurface(s physics.Surface) SceneOption {
	return func(o *sceneOptions) { o.surface = s }
}

func WithInput(in *input.State) SceneOption {
	return func(o *sceneOptions) { o.input = in }
}

func WithLogger(l *zap.Logger) SceneOption {
	return func(o *sceneOptions) { o.logger = l }
}

// NewScene creates a scene with an empty root and its own physics world
func NewScene(opts ...SceneOption) *Scene {
	o := sceneOptions{
		gravity:    physics.DefaultGravity,
		erp:        physics.DefaultERP,
		cfm:        physics.DefaultCFM,
		lightUnits: render.MaxLightUnits,
		surface:    physics.DefaultSurface,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.lightUnits = min(max(o.lightUnits, 0), render.MaxLightUnits)
	if o.input == nil {
		o.input = input.NewState(0)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	world := physics.NewWorld(o.gravity, o.erp, o.cfm)
	s := &Scene{
		world:    world,
		space:    physics.NewSpace(),
		contacts: world.NewContactGroup(),
		surface:  o.surface,
		lights:   make([]*Light, o.lightUnits),
		input:    o.input,
		logger:   o.logger,
	}
	// A bare root cannot fail
	s.root, _ = buildEntity(s, nil, "root", nil)
	return s
}

func (s *Scene) Root() *Entity                   { return s.root }
func (s *Scene) World() *physics.World           { return s.world }
func (s *Scene) Space() *physics.Space           { return s.space }
func (s *Scene) Contacts() *physics.ContactGroup { return s.contacts }
func (s *Scene) Input() *input.State             { return s.input }
func (s *Scene) Logger() *zap.Logger             { return s.logger }

// Camera returns the active camera, nil when none
func (s *Scene) Camera() *Camera {
	if len(s.cameras) == 0 {
		return nil
	}
	return s.cameras[len(s.cameras)-1]
}

// Lights returns the lights holding a unit, in unit order
func (s *Scene) Lights() []*Light {
	var out []*Light
	for _, l := range s.lights {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

// NewEntity creates an entity under the root
func (s *Scene) NewEntity(name string, comps ...Component) (*Entity, error) {
	return s.root.NewChild(name, comps...)
}

// Add moves a free entity under the root
func (s *Scene) Add(e *Entity) error {
	return s.root.AddChild(e)
}

// Find returns the first entity named name in pre-order
func (s *Scene) Find(name string) *Entity {
	var found *Entity
	s.walk(s.root, func(e *Entity) bool {
		if e.Name == name {
			found = e
			return false
		}
		return true
	})
	return found
}

// FindByTag returns every live entity carrying tag in pre-order
func (s *Scene) FindByTag(tag string) []*Entity {
	var out []*Entity
	s.walk(s.root, func(e *Entity) bool {
		if e.Tag == tag {
			out = append(out, e)
		}
		return true
	})
	return out
}

func (s *Scene) walk(e *Entity, fn func(*Entity) bool) bool {
	if !e.Alive() {
		return true
	}
	if !fn(e) {
		return false
	}
	for _, child := range e.children {
		if !s.walk(child, fn) {
			return false
		}
	}
	return true
}

// registerCamera makes c active
func (s *Scene) registerCamera(c *Camera) {
	s.unregisterCamera(c)
	s.cameras = append(s.cameras, c)
}

// unregisterCamera drops c; the most recent remaining camera becomes active
func (s *Scene) unregisterCamera(c *Camera) {
	s.cameras = slices.DeleteFunc(s.cameras, func(x *Camera) bool { return x == c })
}

// registerLight assigns the lowest free unit; with none left the light stays inert
func (s *Scene) registerLight(l *Light) {
	for unit, cur := range s.lights {
		if cur == nil {
			s.lights[unit] = l
			l.unit = unit
			s.freed = slices.DeleteFunc(s.freed, func(u int) bool { return u == unit })
			return
		}
	}
	l.unit = LightNone
	s.logger.Warn("light units exhausted, light is inert", zap.Int("units", len(s.lights)))
}

func (s *Scene) unregisterLight(l *Light) {
	if l.unit != LightNone && l.unit < len(s.lights) && s.lights[l.unit] == l {
		s.lights[l.unit] = nil
		s.freed = append(s.freed, l.unit)
	}
	l.unit = LightNone
}

// adopt binds a free subtree to the scene
func (s *Scene) adopt(e *Entity) {
	e.scene = s
	for _, child := range e.children {
		s.adopt(child)
	}
}

// enlist registers the cameras and lights of a subtree that joined the tree
func (s *Scene) enlist(e *Entity) {
	for _, c := range e.components {
		switch v := c.(type) {
		case *Camera:
			s.registerCamera(v)
		case *Light:
			s.registerLight(v)
		}
	}
	for _, child := range e.children {
		s.enlist(child)
	}
}

// disown unregisters the cameras and lights of a subtree that left the tree
func (s *Scene) disown(e *Entity) {
	for _, c := range e.components {
		switch v := c.(type) {
		case *Camera:
			s.unregisterCamera(v)
		case *Light:
			s.unregisterLight(v)
		}
	}
	for _, child := range e.children {
		s.disown(child)
	}
}

// Update runs the entity tree
func (s *Scene) Update(dt float64) {
	if s.closed {
		return
	}
	s.root.Update(dt)
}

// Render draws the tree through the active camera with the registered lights
func (s *Scene) Render(r render.Renderer) {
	if s.closed {
		return
	}
	for _, unit := range s.freed {
		r.DisableLight(unit)
	}
	s.freed = s.freed[:0]

	cam := s.Camera()
	if cam != nil {
		cam.Push(r)
	}
	for _, l := range s.lights {
		if l != nil {
			l.Enable(r)
		}
	}
	s.root.Render(r)
	if cam != nil {
		cam.Pop(r)
	}
}

// Step advances physics by dt
// Both entities of a touching non-plane pair get OnCollision before the contact is resolved;
// entities destroyed during the step are torn down after it
func (s *Scene) Step(dt float64) {
	if s.closed {
		return
	}
	s.space.Collide(s.near)
	s.world.Step(dt)
	s.contacts.Empty()
	s.flush()
}

func (s *Scene) near(a, b *physics.Geom) {
	contacts := physics.Collide(a, b)
	if len(contacts) == 0 {
		return
	}

	if a.Kind() != physics.GeomPlane && b.Kind() != physics.GeomPlane {
		ea, _ := a.Data.(*Entity)
		eb, _ := b.Data.(*Entity)
		if ea != nil && eb != nil && ea.Alive() && eb.Alive() {
			ea.OnCollision(eb)
			eb.OnCollision(ea)
		}
	}

	// A handler may have removed a collider
	if !a.Alive() || !b.Alive() {
		return
	}
	for _, c := range contacts {
		s.contacts.Add(c, s.surface)
	}
}

// flush tears down destroyed entities, including ones destroyed by teardown hooks
func (s *Scene) flush() {
	for len(s.pending) > 0 {
		batch := s.pending
		s.pending = nil
		for _, e := range batch {
			e.teardown()
		}
	}
}

// Close tears down the whole tree and releases physics state
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.flush()
	s.root.teardown()
	s.contacts.Empty()
	s.closed = true
	s.logger.Debug("scene closed",
		zap.Int("bodies", len(s.world.Bodies())),
		zap.Int("geoms", s.space.Len()))
}
