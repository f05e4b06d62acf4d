package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
)

func box(w, h float64) *component.Collider {
	return &component.Collider{Shape: component.ShapeBox, Size: cp.Vector{X: w, Y: h}}
}

func circle(r float64) *component.Collider {
	return &component.Collider{Shape: component.ShapeCircle, Size: cp.Vector{X: r}}
}

func TestTestShapes(t *testing.T) {
	tests := []struct {
		name        string
		posA        cp.Vector
		a           *component.Collider
		posB        cp.Vector
		b           *component.Collider
		hit         bool
		normal      cp.Vector
		penetration float64
	}{
		{
			name: "box_box_same_center_ties_to_x",
			posA: cp.Vector{}, a: box(10, 10),
			posB: cp.Vector{}, b: box(10, 10),
			hit: true, normal: cp.Vector{X: 1}, penetration: 10,
		},
		{
			name: "box_box_x_sign_follows_displacement",
			posA: cp.Vector{X: 4}, a: box(10, 10),
			posB: cp.Vector{}, b: box(10, 10),
			hit: true, normal: cp.Vector{X: -1}, penetration: 6,
		},
		{
			name: "box_box_smaller_overlap_on_y",
			posA: cp.Vector{}, a: box(10, 10),
			posB: cp.Vector{X: 1, Y: 8}, b: box(10, 10),
			hit: true, normal: cp.Vector{Y: 1}, penetration: 2,
		},
		{
			name: "box_box_touching_edges_miss",
			posA: cp.Vector{}, a: box(10, 10),
			posB: cp.Vector{X: 10}, b: box(10, 10),
			hit: false,
		},
		{
			name: "box_box_one_axis_only_miss",
			posA: cp.Vector{}, a: box(10, 10),
			posB: cp.Vector{X: 2, Y: 30}, b: box(10, 10),
			hit: false,
		},
		{
			name: "circle_circle_overlap",
			posA: cp.Vector{}, a: circle(5),
			posB: cp.Vector{X: 8}, b: circle(5),
			hit: true, normal: cp.Vector{X: 1}, penetration: 2,
		},
		{
			name: "circle_circle_apart",
			posA: cp.Vector{}, a: circle(5),
			posB: cp.Vector{X: 20}, b: circle(5),
			hit: false,
		},
		{
			name: "circle_circle_touching_miss",
			posA: cp.Vector{}, a: circle(5),
			posB: cp.Vector{X: 10}, b: circle(5),
			hit: false,
		},
		{
			name: "circle_circle_coincident_default_normal",
			posA: cp.Vector{X: 3, Y: 3}, a: circle(2),
			posB: cp.Vector{X: 3, Y: 3}, b: circle(4),
			hit: true, normal: cp.Vector{X: 1}, penetration: 6,
		},
		{
			name: "circle_circle_diagonal",
			posA: cp.Vector{}, a: circle(5),
			posB: cp.Vector{X: 3, Y: 4}, b: circle(5),
			hit: true, normal: cp.Vector{X: 0.6, Y: 0.8}, penetration: 5,
		},
		{
			name: "box_circle_center_on_corner",
			posA: cp.Vector{}, a: box(10, 10),
			posB: cp.Vector{X: 5, Y: 5}, b: circle(1),
			hit: true, normal: cp.Vector{X: 1}, penetration: 1,
		},
		{
			name: "box_circle_side",
			posA: cp.Vector{}, a: box(10, 10),
			posB: cp.Vector{X: 7}, b: circle(3),
			hit: true, normal: cp.Vector{X: 1}, penetration: 1,
		},
		{
			name: "circle_box_normal_negated",
			posA: cp.Vector{X: 7}, a: circle(3),
			posB: cp.Vector{}, b: box(10, 10),
			hit: true, normal: cp.Vector{X: -1}, penetration: 1,
		},
		{
			name: "circle_box_above",
			posA: cp.Vector{Y: -6}, a: circle(2),
			posB: cp.Vector{}, b: box(10, 10),
			hit: true, normal: cp.Vector{Y: 1}, penetration: 1,
		},
		{
			name: "box_circle_miss",
			posA: cp.Vector{}, a: box(10, 10),
			posB: cp.Vector{X: 9, Y: 9}, b: circle(2),
			hit: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, hit := testShapes(tc.posA, tc.a, tc.posB, tc.b)
			if hit != tc.hit {
				t.Fatalf("expected hit=%v, got %v (%+v)", tc.hit, hit, res)
			}
			if !hit {
				return
			}
			if res.penetration < 0 {
				t.Fatalf("penetration must be non-negative, got %v", res.penetration)
			}
			if !nearlyEqual(res.penetration, tc.penetration) {
				t.Fatalf("expected penetration %v, got %v", tc.penetration, res.penetration)
			}
			if !vecNear(res.normal, tc.normal) {
				t.Fatalf("expected normal %+v, got %+v", tc.normal, res.normal)
			}
			if !nearlyEqual(res.normal.Length(), 1) {
				t.Fatalf("normal should be unit length, got %v", res.normal.Length())
			}
		})
	}
}

func TestCheckUsesOffset(t *testing.T) {
	w := ecs.NewWorld()
	a, colA := spawnBox(t, w, cp.Vector{}, cp.Vector{X: 10, Y: 10})
	b, _ := spawnBox(t, w, cp.Vector{X: 30}, cp.Vector{X: 10, Y: 10})

	cs := NewCollisionSystem()
	if _, hit := cs.Check(w, a, b); hit {
		t.Fatalf("boxes 30 apart should not collide")
	}

	colA.Offset = cp.Vector{X: 24}
	info, hit := cs.Check(w, a, b)
	if !hit {
		t.Fatalf("offset should move the shape into contact")
	}
	if info.A != a || info.B != b || !nearlyEqual(info.Penetration, 4) || !vecNear(info.Normal, cp.Vector{X: 1}) {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestCheckMissingComponents(t *testing.T) {
	w := ecs.NewWorld()
	a, _ := spawnBox(t, w, cp.Vector{}, cp.Vector{X: 10, Y: 10})
	b, _ := spawnBox(t, w, cp.Vector{}, cp.Vector{X: 10, Y: 10})
	cs := NewCollisionSystem()

	if _, hit := cs.Check(w, a, a); hit {
		t.Fatalf("an entity never collides with itself")
	}

	ecs.Remove(w, b, component.TransformComponent.Kind())
	if _, hit := cs.Check(w, a, b); hit {
		t.Fatalf("missing transform should abort the test")
	}
	if _, hit := cs.Check(w, a, 999); hit {
		t.Fatalf("unknown entity should abort the test")
	}
}
