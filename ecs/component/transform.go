package component

import "github.com/jakecoffman/cp"

// Transform is an entity position in render space (pixels, y down).
type Transform struct {
	X float64
	Y float64
}

func (t Transform) Vector() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

var TransformComponent = NewComponent[Transform]()
