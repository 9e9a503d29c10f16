package component

import "github.com/milk9111/pegshot/shape"

// Collider is the render-space geometry and surface response of an entity.
type Collider struct {
	Shape       shape.Shape
	Restitution shape.Restitution
	Friction    float64
}

var ColliderComponent = NewComponent[Collider]()
