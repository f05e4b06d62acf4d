package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
)

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func vecNear(a, b cp.Vector) bool {
	return nearlyEqual(a.X, b.X) && nearlyEqual(a.Y, b.Y)
}

func spawnBox(t *testing.T, w *ecs.World, pos, size cp.Vector) (ecs.Entity, *component.Collider) {
	t.Helper()
	return spawn(t, w, pos, component.Collider{
		Shape: component.ShapeBox,
		Size:  size,
		Layer: component.LayerDefault,
		Mask:  component.LayerAll,
	})
}

func spawnCircle(t *testing.T, w *ecs.World, pos cp.Vector, radius float64) (ecs.Entity, *component.Collider) {
	t.Helper()
	return spawn(t, w, pos, component.Collider{
		Shape: component.ShapeCircle,
		Size:  cp.Vector{X: radius},
		Layer: component.LayerDefault,
		Mask:  component.LayerAll,
	})
}

func spawn(t *testing.T, w *ecs.World, pos cp.Vector, col component.Collider) (ecs.Entity, *component.Collider) {
	t.Helper()
	e := ecs.CreateEntity(w)
	tr, err := ecs.AddDefault(w, e, component.TransformComponent)
	if err != nil {
		t.Fatalf("add transform: %v", err)
	}
	tr.Position = pos
	c := col
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &c); err != nil {
		t.Fatalf("add collider: %v", err)
	}
	return e, &c
}

func position(t *testing.T, w *ecs.World, e ecs.Entity) cp.Vector {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %d has no transform", e)
	}
	return tr.Position
}

func setPosition(t *testing.T, w *ecs.World, e ecs.Entity, p cp.Vector) {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %d has no transform", e)
	}
	tr.Position = p
}
