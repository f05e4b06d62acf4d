package system

import (
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
)

// DefaultTimestep is one tick at 60 updates per second.
const DefaultTimestep = 1.0 / 60.0

// MovementSystem integrates Velocity into Transform. It runs before the
// collision system so resolution sees this tick's positions.
type MovementSystem struct {
	Timestep float64
}

func NewMovementSystem(timestep float64) *MovementSystem {
	if timestep <= 0 {
		timestep = DefaultTimestep
	}
	return &MovementSystem{Timestep: timestep}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.VelocityComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, vel *component.Velocity, tr *component.Transform) {
		if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok && col.IsStatic {
			return
		}
		tr.Position = tr.Position.Add(vel.Linear.Mult(s.Timestep))
	})
}
