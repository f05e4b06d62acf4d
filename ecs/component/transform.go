package component

import "github.com/jakecoffman/cp"

// Transform places an entity in the world. Rotation is in degrees and is not
// considered by collision.
type Transform struct {
	Position cp.Vector
	Scale    cp.Vector
	Rotation float64
}

var TransformComponent = NewComponentWithDefault(func() Transform {
	return Transform{Scale: cp.Vector{X: 1, Y: 1}}
})
