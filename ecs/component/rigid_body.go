package component

import "github.com/jakecoffman/cp"

type BodyKind uint8

const (
	BodyFixed BodyKind = iota
	BodyDynamic
	BodyKinematic
)

// RigidBody stores the live simulation role of an entity. Body and Shape are
// owned by the physics system and are nil until it has created them.
type RigidBody struct {
	Kind     BodyKind
	Mass     float64
	Velocity cp.Vector

	Body  *cp.Body
	Shape *cp.Shape
}

var RigidBodyComponent = NewComponent[RigidBody]()
