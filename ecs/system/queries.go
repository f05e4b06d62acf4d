package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
)

// EntitiesInRadius returns entities whose Transform position lies within
// radius of center, in creation order. Collider shapes are ignored.
func (cs *CollisionSystem) EntitiesInRadius(w *ecs.World, center cp.Vector, radius float64) []ecs.Entity {
	if w == nil || radius < 0 {
		return nil
	}
	var out []ecs.Entity
	for _, e := range w.Entities() {
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if tr.Position.Sub(center).LengthSq() <= radius*radius {
			out = append(out, e)
		}
	}
	return out
}

// EntitiesInBox returns entities whose Transform position lies inside the box
// of full size centered on center, edges inclusive.
func (cs *CollisionSystem) EntitiesInBox(w *ecs.World, center, size cp.Vector) []ecs.Entity {
	if w == nil || size.X < 0 || size.Y < 0 {
		return nil
	}
	bb := cp.NewBBForExtents(center, size.X*0.5, size.Y*0.5)
	var out []ecs.Entity
	for _, e := range w.Entities() {
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if bb.ContainsVect(tr.Position) {
			out = append(out, e)
		}
	}
	return out
}
