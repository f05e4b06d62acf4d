package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
)

// RaycastHit is the nearest shape a ray touched.
type RaycastHit struct {
	Entity   ecs.Entity
	Point    cp.Vector
	Normal   cp.Vector
	Distance float64
}

// Raycast casts a ray against every collider and returns the nearest hit
// within maxDistance. direction need not be normalised; a zero direction or
// non-positive distance never hits.
func (cs *CollisionSystem) Raycast(w *ecs.World, origin, direction cp.Vector, maxDistance float64) (RaycastHit, bool) {
	return cs.RaycastMask(w, origin, direction, maxDistance, component.LayerAll)
}

// RaycastMask is Raycast restricted to colliders whose layer intersects mask.
func (cs *CollisionSystem) RaycastMask(w *ecs.World, origin, direction cp.Vector, maxDistance float64, mask uint32) (RaycastHit, bool) {
	if w == nil || maxDistance <= 0 || math.IsNaN(maxDistance) {
		return RaycastHit{}, false
	}
	length := direction.Length()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return RaycastHit{}, false
	}
	dir := direction.Mult(1 / length)

	best := RaycastHit{Distance: maxDistance}
	hasHit := false

	for _, e := range w.Entities() {
		col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
		if !ok || col.Layer&mask == 0 {
			continue
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		center := shapeCenter(tr, col)
		var (
			t      float64
			normal cp.Vector
			hit    bool
		)
		if col.Shape == component.ShapeCircle {
			t, normal, hit = rayCircle(origin, dir, center, col.Radius(), maxDistance)
		} else {
			half := col.HalfExtents()
			t, normal, hit = rayBox(origin, dir, cp.NewBBForExtents(center, half.X, half.Y), maxDistance)
		}
		// strict compare keeps the earliest-created entity on ties
		if !hit || (hasHit && t >= best.Distance) {
			continue
		}
		best = RaycastHit{
			Entity:   e,
			Point:    origin.Add(dir.Mult(t)),
			Normal:   normal,
			Distance: t,
		}
		hasHit = true
	}

	if !hasHit {
		return RaycastHit{}, false
	}
	return best, true
}

// rayBox is the slab test for a unit-direction ray. A ray starting inside the
// box hits at distance 0 with the normal facing back along the ray.
func rayBox(origin, dir cp.Vector, bb cp.BB, maxDistance float64) (float64, cp.Vector, bool) {
	tmin := 0.0
	tmax := maxDistance
	normal := dir.Neg()

	slab := func(o, d, lo, hi float64, axis cp.Vector) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		invD := 1 / d
		t1 := (lo - o) * invD
		t2 := (hi - o) * invD
		n := axis.Neg()
		if t1 > t2 {
			t1, t2 = t2, t1
			n = axis
		}
		if t1 > tmin {
			tmin = t1
			normal = n
		}
		tmax = math.Min(tmax, t2)
		return tmin <= tmax
	}

	if !slab(origin.X, dir.X, bb.L, bb.R, cp.Vector{X: 1}) {
		return 0, cp.Vector{}, false
	}
	if !slab(origin.Y, dir.Y, bb.B, bb.T, cp.Vector{Y: 1}) {
		return 0, cp.Vector{}, false
	}
	return tmin, normal, true
}

// rayCircle solves |origin + t*dir - center| = radius for the smallest
// t in [0, maxDistance]. dir is unit length so the quadratic's a is 1.
func rayCircle(origin, dir, center cp.Vector, radius, maxDistance float64) (float64, cp.Vector, bool) {
	if radius <= 0 {
		return 0, cp.Vector{}, false
	}
	f := origin.Sub(center)
	c := f.LengthSq() - radius*radius
	if c <= 0 {
		return 0, dir.Neg(), true
	}

	b := f.Dot(dir)
	disc := b*b - c
	if disc < 0 || b > 0 {
		return 0, cp.Vector{}, false
	}

	t := -b - math.Sqrt(disc)
	if t < 0 || t > maxDistance {
		return 0, cp.Vector{}, false
	}
	point := origin.Add(dir.Mult(t))
	return t, safeNormal(point.Sub(center), radius), true
}
