package component

import "github.com/jakecoffman/cp"

// ColliderShape selects the narrow-phase geometry of a Collider.
type ColliderShape int

const (
	ShapeBox ColliderShape = iota
	ShapeCircle
)

func (s ColliderShape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// CollisionCallback receives the id of the other entity in the pair. The id
// is passed as a plain uint32 so this package does not depend on ecs.
type CollisionCallback func(other uint32)

// Collider describes the collision shape attached to an entity's Transform.
type Collider struct {
	Shape ColliderShape
	// Offset is added to the Transform position to get the shape center.
	Offset cp.Vector
	// Size is the full width and height for boxes; circles keep their radius
	// in X.
	Size cp.Vector
	// Layer is the category bitmask of this collider.
	Layer uint32
	// Mask is the set of layers this collider tests against.
	Mask uint32
	// IsTrigger colliders report contacts but are never resolved.
	IsTrigger bool
	// IsStatic colliders are never moved by resolution.
	IsStatic bool

	OnEnter CollisionCallback
	OnStay  CollisionCallback
	OnExit  CollisionCallback
}

// Radius returns the circle radius.
func (c *Collider) Radius() float64 {
	return c.Size.X
}

// HalfExtents returns half the box width and height.
func (c *Collider) HalfExtents() cp.Vector {
	return c.Size.Mult(0.5)
}

var ColliderComponent = NewComponentWithDefault(func() Collider {
	return Collider{
		Shape: ShapeBox,
		Size:  cp.Vector{X: 32, Y: 32},
		Layer: LayerDefault,
		Mask:  LayerAll,
	}
})
