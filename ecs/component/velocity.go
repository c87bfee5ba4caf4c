package component

import "github.com/jakecoffman/cp"

// Velocity is the per-step displacement of a moving entity.
type Velocity struct {
	cp.Vector
}

var VelocityComponent = NewComponent[Velocity]()
