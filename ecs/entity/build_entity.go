package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
	"github.com/milk9111/pegshot/prefabs"
	"github.com/milk9111/pegshot/shape"
)

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any) error

var componentRegistry = map[string]componentBuildFn{
	"ball_tag":           addBallTag,
	"wall_tag":           addWallTag,
	"transform":          addTransform,
	"collider":           addCollider,
	"rigid_body":         addRigidBody,
	"peg":                addPeg,
	"launcher":           addLauncher,
	"trajectory_preview": addTrajectoryPreview,
	"input":              addInput,
	"path":               addPath,
}

// Tags go first so systems that inspect an entity on insertion see them.
var componentBuildOrder = []string{
	"ball_tag",
	"wall_tag",
	"transform",
	"collider",
	"rigid_body",
	"peg",
	"launcher",
	"trajectory_preview",
	"input",
	"path",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	unknown := make([]string, 0, len(remaining))
	for name := range remaining {
		unknown = append(unknown, name)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, unknown[0])
	}

	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name]); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, pos cp.Vector) error {
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y})
}

func addBallTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.BallTagComponent.Kind(), &component.BallTag{})
}

func addWallTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.WallTagComponent.Kind(), &component.WallTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y})
}

func addCollider(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	c, err := ColliderFromSpec(spec)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &c)
}

// ColliderFromSpec converts a prefab collider into the component form.
func ColliderFromSpec(spec prefabs.ColliderComponentSpec) (component.Collider, error) {
	var s shape.Shape
	switch strings.ToLower(spec.Type) {
	case "ball", "circle":
		s = shape.Ball{Radius: spec.Radius}
	case "cuboid", "box":
		s = shape.Cuboid{HalfWidth: spec.HalfWidth, HalfHeight: spec.HalfHeight}
	case "polygon":
		verts := make([]cp.Vector, len(spec.Points))
		for i, p := range spec.Points {
			verts[i] = cp.Vector{X: p.X, Y: p.Y}
		}
		s = shape.Polygon{Verts: verts, Radius: spec.Radius}
	case "segment":
		if len(spec.Points) != 2 {
			return component.Collider{}, fmt.Errorf("segment collider needs 2 points, got %d", len(spec.Points))
		}
		s = shape.Segment{
			A:      cp.Vector{X: spec.Points[0].X, Y: spec.Points[0].Y},
			B:      cp.Vector{X: spec.Points[1].X, Y: spec.Points[1].Y},
			Radius: spec.Radius,
		}
	default:
		return component.Collider{}, fmt.Errorf("unknown collider type %q", spec.Type)
	}
	if err := s.Validate(); err != nil {
		return component.Collider{}, err
	}

	var combine shape.CombineRule
	if spec.Combine != "" {
		if err := combine.UnmarshalText([]byte(spec.Combine)); err != nil {
			return component.Collider{}, err
		}
	}
	return component.Collider{
		Shape:       s,
		Restitution: shape.Restitution{Coefficient: spec.Restitution, Combine: combine},
		Friction:    spec.Friction,
	}, nil
}

func addRigidBody(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RigidBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode rigid_body spec: %w", err)
	}
	var kind component.BodyKind
	switch strings.ToLower(spec.Kind) {
	case "", "fixed", "static":
		kind = component.BodyFixed
	case "dynamic":
		kind = component.BodyDynamic
	case "kinematic":
		kind = component.BodyKinematic
	default:
		return fmt.Errorf("unknown rigid body kind %q", spec.Kind)
	}
	return ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Kind: kind, Mass: spec.Mass})
}

func addPeg(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PegComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode peg spec: %w", err)
	}
	return ecs.Add(w, e, component.PegComponent.Kind(), &component.Peg{Target: spec.Target})
}

func addLauncher(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LauncherComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode launcher spec: %w", err)
	}
	return ecs.Add(w, e, component.LauncherComponent.Kind(), &component.Launcher{
		Direction: cp.Vector{X: 0, Y: 1},
		Power:     spec.Power,
	})
}

func addTrajectoryPreview(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.TrajectoryPreviewComponent.Kind(), &component.TrajectoryPreview{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPath(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PathComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode path spec: %w", err)
	}
	return ecs.Add(w, e, component.PathComponent.Kind(), &component.Path{
		Points: pointsToVectors(spec.Points),
		Speed:  spec.Speed,
	})
}

func pointsToVectors(points []prefabs.PointSpec) []cp.Vector {
	out := make([]cp.Vector, len(points))
	for i, p := range points {
		out[i] = cp.Vector{X: p.X, Y: p.Y}
	}
	return out
}
