package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
	"github.com/milk9111/pegshot/prefabs"
)

const ballPrefab = "ball.yaml"

// NewBall spawns a ball at pos moving with velocity, both in render units.
func NewBall(w *ecs.World, pos, velocity cp.Vector) (ecs.Entity, error) {
	e, err := BuildEntity(w, ballPrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, pos); err != nil {
		return 0, fmt.Errorf("ball: override transform: %w", err)
	}
	rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("ball: prefab %q has no rigid_body", ballPrefab)
	}
	rb.Velocity = velocity
	return e, nil
}

// BallTemplate reads the collider and mass a launched ball will have.
func BallTemplate() (component.Collider, float64, error) {
	spec, err := prefabs.LoadEntityBuildSpec(ballPrefab)
	if err != nil {
		return component.Collider{}, 0, err
	}
	colSpec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](spec.Components["collider"])
	if err != nil {
		return component.Collider{}, 0, fmt.Errorf("ball: decode collider: %w", err)
	}
	col, err := ColliderFromSpec(colSpec)
	if err != nil {
		return component.Collider{}, 0, fmt.Errorf("ball: %w", err)
	}
	rbSpec, err := prefabs.DecodeComponentSpec[prefabs.RigidBodyComponentSpec](spec.Components["rigid_body"])
	if err != nil {
		return component.Collider{}, 0, fmt.Errorf("ball: decode rigid_body: %w", err)
	}
	return col, rbSpec.Mass, nil
}
