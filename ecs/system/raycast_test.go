package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
)

func TestRaycast(t *testing.T) {
	w := ecs.NewWorld()
	cs := NewCollisionSystem()
	near, _ := spawnBox(t, w, cp.Vector{X: 20}, cp.Vector{X: 10, Y: 10})
	far, _ := spawnBox(t, w, cp.Vector{X: 60}, cp.Vector{X: 10, Y: 10})
	ball, _ := spawnCircle(t, w, cp.Vector{Y: 30}, 5)
	_, wall := spawnBox(t, w, cp.Vector{X: -40}, cp.Vector{X: 10, Y: 100})
	wall.Layer = component.LayerWorld

	tests := []struct {
		name     string
		origin   cp.Vector
		dir      cp.Vector
		max      float64
		mask     uint32
		hit      bool
		entity   ecs.Entity
		point    cp.Vector
		normal   cp.Vector
		distance float64
	}{
		{
			name: "nearest_box_along_x", origin: cp.Vector{}, dir: cp.Vector{X: 1}, max: 100,
			hit: true, entity: near, point: cp.Vector{X: 15}, normal: cp.Vector{X: -1}, distance: 15,
		},
		{
			name: "direction_is_normalised", origin: cp.Vector{}, dir: cp.Vector{X: 7}, max: 100,
			hit: true, entity: near, point: cp.Vector{X: 15}, normal: cp.Vector{X: -1}, distance: 15,
		},
		{
			name: "out_of_range", origin: cp.Vector{}, dir: cp.Vector{X: 1}, max: 10,
			hit: false,
		},
		{
			name: "skips_past_first_box", origin: cp.Vector{X: 40}, dir: cp.Vector{X: 1}, max: 100,
			hit: true, entity: far, point: cp.Vector{X: 55}, normal: cp.Vector{X: -1}, distance: 15,
		},
		{
			name: "circle_from_below", origin: cp.Vector{}, dir: cp.Vector{Y: 1}, max: 100,
			hit: true, entity: ball, point: cp.Vector{Y: 25}, normal: cp.Vector{Y: -1}, distance: 25,
		},
		{
			name: "box_top_face", origin: cp.Vector{X: 20, Y: -50}, dir: cp.Vector{Y: 1}, max: 100,
			hit: true, entity: near, point: cp.Vector{X: 20, Y: -5}, normal: cp.Vector{Y: -1}, distance: 45,
		},
		{
			name: "mask_filters_layers", origin: cp.Vector{}, dir: cp.Vector{X: -1}, max: 100, mask: component.LayerDefault,
			hit: false,
		},
		{
			name: "mask_selects_wall", origin: cp.Vector{}, dir: cp.Vector{X: -1}, max: 100, mask: component.LayerWorld,
			hit: true, entity: 4, point: cp.Vector{X: -35}, normal: cp.Vector{X: 1}, distance: 35,
		},
		{
			name: "origin_inside_box", origin: cp.Vector{X: 20}, dir: cp.Vector{X: 1}, max: 100,
			hit: true, entity: near, point: cp.Vector{X: 20}, normal: cp.Vector{X: -1}, distance: 0,
		},
		{
			name: "origin_inside_circle", origin: cp.Vector{Y: 31}, dir: cp.Vector{Y: 1}, max: 100,
			hit: true, entity: ball, point: cp.Vector{Y: 31}, normal: cp.Vector{Y: -1}, distance: 0,
		},
		{
			name: "pointing_away", origin: cp.Vector{Y: 50}, dir: cp.Vector{Y: 1}, max: 100,
			hit: false,
		},
		{
			name: "zero_direction", origin: cp.Vector{}, dir: cp.Vector{}, max: 100,
			hit: false,
		},
		{
			name: "non_positive_distance", origin: cp.Vector{}, dir: cp.Vector{X: 1}, max: 0,
			hit: false,
		},
		{
			name: "nan_distance", origin: cp.Vector{}, dir: cp.Vector{X: 1}, max: math.NaN(),
			hit: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mask := tc.mask
			if mask == 0 {
				mask = component.LayerAll
			}
			hit, ok := cs.RaycastMask(w, tc.origin, tc.dir, tc.max, mask)
			if ok != tc.hit {
				t.Fatalf("expected hit=%v, got %v (%+v)", tc.hit, ok, hit)
			}
			if !ok {
				return
			}
			if hit.Entity != tc.entity {
				t.Fatalf("expected entity %d, got %d", tc.entity, hit.Entity)
			}
			if !vecNear(hit.Point, tc.point) {
				t.Fatalf("expected point %+v, got %+v", tc.point, hit.Point)
			}
			if !vecNear(hit.Normal, tc.normal) {
				t.Fatalf("expected normal %+v, got %+v", tc.normal, hit.Normal)
			}
			if !nearlyEqual(hit.Distance, tc.distance) {
				t.Fatalf("expected distance %v, got %v", tc.distance, hit.Distance)
			}
		})
	}
}

func TestRaycastAllLayersAndTies(t *testing.T) {
	w := ecs.NewWorld()
	cs := NewCollisionSystem()
	first, _ := spawnBox(t, w, cp.Vector{X: 10}, cp.Vector{X: 4, Y: 4})
	spawnBox(t, w, cp.Vector{X: 10}, cp.Vector{X: 4, Y: 4})

	hit, ok := cs.Raycast(w, cp.Vector{}, cp.Vector{X: 1}, 50)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if hit.Entity != first {
		t.Fatalf("equal distances should keep the earlier entity, got %d", hit.Entity)
	}

	if _, ok := cs.Raycast(nil, cp.Vector{}, cp.Vector{X: 1}, 50); ok {
		t.Fatalf("nil world should never hit")
	}
}

func TestRaycastIgnoresEntitiesWithoutTransform(t *testing.T) {
	w := ecs.NewWorld()
	cs := NewCollisionSystem()
	e := ecs.CreateEntity(w)
	if _, err := ecs.AddDefault(w, e, component.ColliderComponent); err != nil {
		t.Fatal(err)
	}
	if _, ok := cs.Raycast(w, cp.Vector{X: -100}, cp.Vector{X: 1}, 500); ok {
		t.Fatalf("collider without transform should not be hit")
	}
}
