package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
)

// Below this separation a normal cannot be derived from the center delta.
const normalEpsilon = 0.001

var defaultNormal = cp.Vector{X: 1, Y: 0}

// CollisionInfo describes a positive narrow-phase test. Normal is a unit
// vector pointing from A towards B.
type CollisionInfo struct {
	A           ecs.Entity
	B           ecs.Entity
	Normal      cp.Vector
	Penetration float64
	IsTrigger   bool
}

// contact is the shape-level result before entity ids are attached.
type contact struct {
	normal      cp.Vector
	penetration float64
}

// shapeCenter is the world-space center of a collider.
func shapeCenter(t *component.Transform, c *component.Collider) cp.Vector {
	return t.Position.Add(c.Offset)
}

// testShapes dispatches on the shape pair. The normal always points from the
// first operand to the second, whatever order the shapes come in.
func testShapes(posA cp.Vector, a *component.Collider, posB cp.Vector, b *component.Collider) (contact, bool) {
	switch {
	case a.Shape == component.ShapeBox && b.Shape == component.ShapeBox:
		return boxBox(posA, a.Size, posB, b.Size)
	case a.Shape == component.ShapeCircle && b.Shape == component.ShapeCircle:
		return circleCircle(posA, a.Radius(), posB, b.Radius())
	case a.Shape == component.ShapeBox:
		return boxCircle(posA, a.Size, posB, b.Radius())
	default:
		res, ok := boxCircle(posB, b.Size, posA, a.Radius())
		if ok {
			res.normal = res.normal.Neg()
		}
		return res, ok
	}
}

// boxBox tests two axis-aligned boxes given their centers and full sizes.
// The separating axis is the one with less overlap; equal overlaps pick x.
func boxBox(posA, sizeA, posB, sizeB cp.Vector) (contact, bool) {
	d := posB.Sub(posA)
	half := sizeA.Add(sizeB).Mult(0.5)

	overlapX := half.X - math.Abs(d.X)
	overlapY := half.Y - math.Abs(d.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return contact{}, false
	}

	if overlapX <= overlapY {
		return contact{normal: cp.Vector{X: axisSign(d.X)}, penetration: overlapX}, true
	}
	return contact{normal: cp.Vector{Y: axisSign(d.Y)}, penetration: overlapY}, true
}

func circleCircle(posA cp.Vector, radiusA float64, posB cp.Vector, radiusB float64) (contact, bool) {
	d := posB.Sub(posA)
	combined := radiusA + radiusB
	distSq := d.LengthSq()
	if distSq >= combined*combined {
		return contact{}, false
	}

	dist := math.Sqrt(distSq)
	return contact{normal: safeNormal(d, dist), penetration: combined - dist}, true
}

// boxCircle tests a box (center, full size) against a circle. The normal runs
// from the closest point on the box to the circle center.
func boxCircle(boxPos, boxSize, circlePos cp.Vector, radius float64) (contact, bool) {
	bb := cp.NewBBForExtents(boxPos, boxSize.X*0.5, boxSize.Y*0.5)
	closest := cp.Vector{
		X: cp.Clamp(circlePos.X, bb.L, bb.R),
		Y: cp.Clamp(circlePos.Y, bb.B, bb.T),
	}

	d := circlePos.Sub(closest)
	distSq := d.LengthSq()
	if distSq >= radius*radius {
		return contact{}, false
	}

	dist := math.Sqrt(distSq)
	return contact{normal: safeNormal(d, dist), penetration: radius - dist}, true
}

func safeNormal(d cp.Vector, dist float64) cp.Vector {
	if dist > normalEpsilon {
		return d.Mult(1 / dist)
	}
	return defaultNormal
}

// axisSign maps a displacement to ±1; zero counts as positive.
func axisSign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
