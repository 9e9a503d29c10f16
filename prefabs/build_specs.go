package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ColliderComponentSpec is a render-space collider. Type is one of ball,
// cuboid, polygon or segment.
type ColliderComponentSpec struct {
	Type       string      `yaml:"type"`
	Radius     float64     `yaml:"radius"`
	HalfWidth  float64     `yaml:"half_width"`
	HalfHeight float64     `yaml:"half_height"`
	Points     []PointSpec `yaml:"points"`

	Restitution float64 `yaml:"restitution"`
	Combine     string  `yaml:"combine"`
	Friction    float64 `yaml:"friction"`
}

type RigidBodyComponentSpec struct {
	Kind string  `yaml:"kind"`
	Mass float64 `yaml:"mass"`
}

type PegComponentSpec struct {
	Target bool `yaml:"target"`
}

type LauncherComponentSpec struct {
	Power float64 `yaml:"power"`
}

type PathComponentSpec struct {
	Speed  float64     `yaml:"speed"`
	Points []PointSpec `yaml:"points"`
}
