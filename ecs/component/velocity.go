package component

import "github.com/jakecoffman/cp"

// Velocity is integrated into Transform.Position by the movement system
// before collision runs, in units per second.
type Velocity struct {
	Linear cp.Vector
}

var VelocityComponent = NewComponent[Velocity]()
