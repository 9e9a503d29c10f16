package component

import "github.com/jakecoffman/cp"

// Launcher aims along Direction (unit length) and fires at Power pixels per second.
type Launcher struct {
	Direction cp.Vector
	Power     float64
}

func (l Launcher) Velocity() cp.Vector {
	return l.Direction.Mult(l.Power)
}

var LauncherComponent = NewComponent[Launcher]()
