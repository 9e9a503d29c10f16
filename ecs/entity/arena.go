package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
	"github.com/milk9111/pegshot/prefabs"
	"github.com/milk9111/pegshot/shape"
)

// NewArena builds the ceiling and both side walls just outside the arena. The
// floor is open so balls fall out.
func NewArena(w *ecs.World, spec prefabs.ArenaSpec) ([]ecs.Entity, error) {
	prefab := spec.WallPrefab
	if prefab == "" {
		prefab = "wall.yaml"
	}
	t := spec.WallThickness / 2
	walls := []struct {
		pos  cp.Vector
		half cp.Vector
	}{
		{pos: cp.Vector{X: spec.Width / 2, Y: -t}, half: cp.Vector{X: spec.Width/2 + spec.WallThickness, Y: t}},
		{pos: cp.Vector{X: -t, Y: spec.Height / 2}, half: cp.Vector{X: t, Y: spec.Height / 2}},
		{pos: cp.Vector{X: spec.Width + t, Y: spec.Height / 2}, half: cp.Vector{X: t, Y: spec.Height / 2}},
	}

	out := make([]ecs.Entity, 0, len(walls))
	for _, wall := range walls {
		e, err := BuildEntity(w, prefab)
		if err != nil {
			return out, err
		}
		if err := SetEntityTransform(w, e, wall.pos); err != nil {
			return out, fmt.Errorf("arena: override transform: %w", err)
		}
		col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
		if !ok {
			return out, fmt.Errorf("arena: prefab %q has no collider", prefab)
		}
		if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
			Shape:       shape.Cuboid{HalfWidth: wall.half.X, HalfHeight: wall.half.Y},
			Restitution: col.Restitution,
			Friction:    col.Friction,
		}); err != nil {
			return out, fmt.Errorf("arena: override collider: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
