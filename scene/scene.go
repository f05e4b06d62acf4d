// Package scene owns one ECS world together with the systems that run on it.
// Each scene has its own World; nothing in the simulation is global.
package scene

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/milk9111/collide/ecs/system"
	"github.com/milk9111/collide/prefabs"
)

type Options struct {
	Timestep float64
	Logger   *log.Logger
	// LoadScript overrides where collision scripts are read from.
	LoadScript system.ScriptLoader
}

// Scene runs, in order: scripts binding, TTL expiry, movement, collision.
type Scene struct {
	Name string

	world     *ecs.World
	scheduler *ecs.Scheduler

	Scripts    *system.CollisionScriptSystem
	TTL        *system.TTLSystem
	Movement   *system.MovementSystem
	Collisions *system.CollisionSystem

	names map[string]ecs.Entity
	tick  int
}

func New(name string, opts Options) *Scene {
	scripts := system.NewCollisionScriptSystem(opts.LoadScript)
	scripts.Logger = opts.Logger
	collisions := system.NewCollisionSystem()
	collisions.Logger = opts.Logger

	s := &Scene{
		Name:       name,
		world:      ecs.NewWorld(),
		Scripts:    scripts,
		TTL:        system.NewTTLSystem(),
		Movement:   system.NewMovementSystem(opts.Timestep),
		Collisions: collisions,
		names:      map[string]ecs.Entity{},
	}
	s.scheduler = ecs.NewScheduler(s.Scripts, s.TTL, s.Movement, s.Collisions)
	return s
}

// FromSpec builds a scene and spawns every entity in spec.
func FromSpec(spec *prefabs.SceneSpec, opts Options) (*Scene, error) {
	if spec == nil {
		return nil, fmt.Errorf("scene: nil spec")
	}
	if opts.Timestep <= 0 {
		opts.Timestep = spec.Timestep
	}
	s := New(spec.Name, opts)
	for i := range spec.Entities {
		if _, err := s.Spawn(spec, &spec.Entities[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// World returns the scene's registry.
func (s *Scene) World() *ecs.World {
	if s == nil {
		return nil
	}
	return s.world
}

// Tick returns how many updates have run.
func (s *Scene) Tick() int {
	if s == nil {
		return 0
	}
	return s.tick
}

// Update advances the scene by one tick.
func (s *Scene) Update() {
	if s == nil {
		return
	}
	s.scheduler.Update(s.world)
	s.tick++
}

// Events drains the collision events raised by the last Update.
func (s *Scene) Events() []ecs.CollisionEvent {
	if s == nil {
		return nil
	}
	var out []ecs.CollisionEvent
	for _, evt := range s.world.Events().Drain() {
		if ce, ok := evt.Data.(ecs.CollisionEvent); ok {
			out = append(out, ce)
		}
	}
	return out
}

// Lookup finds a spawned entity by name.
func (s *Scene) Lookup(name string) (ecs.Entity, bool) {
	if s == nil {
		return 0, false
	}
	e, ok := s.names[name]
	if !ok || !s.world.IsAlive(e) {
		return 0, false
	}
	return e, true
}

// NameOf returns the Name component of e, or its id.
func (s *Scene) NameOf(e ecs.Entity) string {
	if n, ok := ecs.Get(s.World(), e, component.NameComponent.Kind()); ok && n.Value != "" {
		return n.Value
	}
	return e.String()
}

// Spawn creates one entity from es. Layer names resolve through spec. On
// error nothing is left behind.
func (s *Scene) Spawn(spec *prefabs.SceneSpec, es *prefabs.EntitySpec) (ecs.Entity, error) {
	prev, named := s.names[es.Name]
	e := ecs.CreateEntity(s.world)
	if err := s.build(spec, es, e); err != nil {
		ecs.DestroyEntity(s.world, e)
		if named {
			s.names[es.Name] = prev
		} else {
			delete(s.names, es.Name)
		}
		return 0, err
	}
	return e, nil
}

func (s *Scene) build(spec *prefabs.SceneSpec, es *prefabs.EntitySpec, e ecs.Entity) error {
	w := s.world
	if es.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: es.Name}); err != nil {
			return err
		}
		s.names[es.Name] = e
	}

	if es.Transform != nil {
		tr, err := ecs.AddDefault(w, e, component.TransformComponent)
		if err != nil {
			return err
		}
		tr.Position = cp.Vector{X: es.Transform.X, Y: es.Transform.Y}
		if es.Transform.ScaleX != nil {
			tr.Scale.X = *es.Transform.ScaleX
		}
		if es.Transform.ScaleY != nil {
			tr.Scale.Y = *es.Transform.ScaleY
		}
		tr.Rotation = es.Transform.Rotation
	}

	if cs := es.Collider; cs != nil {
		col, err := ecs.AddDefault(w, e, component.ColliderComponent)
		if err != nil {
			return err
		}
		if err := applyCollider(spec, cs, col); err != nil {
			return fmt.Errorf("scene: entity %q: %w", es.Name, err)
		}
	}

	if es.Velocity != nil {
		vel := &component.Velocity{Linear: cp.Vector{X: es.Velocity.X, Y: es.Velocity.Y}}
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), vel); err != nil {
			return err
		}
	}

	if es.Script != "" {
		if err := ecs.Add(w, e, component.CollisionScriptComponent.Kind(), &component.CollisionScript{Path: es.Script}); err != nil {
			return err
		}
	}

	if es.TTL > 0 {
		if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: es.TTL}); err != nil {
			return err
		}
	}

	return nil
}

func applyCollider(spec *prefabs.SceneSpec, cs *prefabs.ColliderSpec, col *component.Collider) error {
	shape, err := cs.ShapeKind()
	if err != nil {
		return err
	}
	col.Shape = shape
	col.Offset = cp.Vector{X: cs.OffsetX, Y: cs.OffsetY}
	switch shape {
	case component.ShapeCircle:
		if cs.Radius > 0 {
			col.Size = cp.Vector{X: cs.Radius}
		}
	default:
		if cs.Width > 0 {
			col.Size.X = cs.Width
		}
		if cs.Height > 0 {
			col.Size.Y = cs.Height
		}
	}
	if len(cs.Layer) > 0 {
		if col.Layer, err = spec.LayerBits(cs.Layer); err != nil {
			return err
		}
	}
	if len(cs.Mask) > 0 {
		if col.Mask, err = spec.LayerBits(cs.Mask); err != nil {
			return err
		}
	}
	col.IsTrigger = cs.Trigger
	col.IsStatic = cs.Static
	return nil
}
