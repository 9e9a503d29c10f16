package component

import "github.com/jakecoffman/cp"

// Path moves an entity along a closed polyline at constant speed.
type Path struct {
	Points []cp.Vector
	Speed  float64

	Segment  int
	Progress float64
}

var PathComponent = NewComponent[Path]()
