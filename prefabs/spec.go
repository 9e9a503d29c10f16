package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/trajectory"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is the top-level tuning file.
type GameSpec struct {
	Title      string         `yaml:"title"`
	Screen     ScreenSpec     `yaml:"screen"`
	Physics    PhysicsSpec    `yaml:"physics"`
	Trajectory TrajectorySpec `yaml:"trajectory"`
	Arena      ArenaSpec      `yaml:"arena"`
	Ball       BallRulesSpec  `yaml:"ball"`
	Cleanup    CleanupSpec    `yaml:"cleanup"`
}

type ScreenSpec struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Background *YAMLColor `yaml:"background"`
}

type PhysicsSpec struct {
	PixelsPerMeter    float64   `yaml:"pixels_per_meter"`
	Gravity           PointSpec `yaml:"gravity"`
	ShapeSubdivisions int       `yaml:"shape_subdivisions"`
	TimeStep          float64   `yaml:"time_step"`
	Iterations        uint      `yaml:"iterations"`
	CollisionSlop     float64   `yaml:"collision_slop"`
}

// TrajectoryConfig is the shared live and shadow physics configuration.
func (p PhysicsSpec) TrajectoryConfig() trajectory.Config {
	return trajectory.Config{
		Scale:         p.PixelsPerMeter,
		Gravity:       cp.Vector{X: p.Gravity.X, Y: p.Gravity.Y},
		Subdivisions:  p.ShapeSubdivisions,
		TimeStep:      p.TimeStep,
		Iterations:    p.Iterations,
		CollisionSlop: p.CollisionSlop,
	}
}

type TrajectorySpec struct {
	MaxCollisions int `yaml:"max_collisions"`
	MaxSteps      int `yaml:"max_steps"`
}

// ArenaSpec places the ceiling and side walls around a Width x Height area
// whose top-left corner is the origin.
type ArenaSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
	WallPrefab    string  `yaml:"wall_prefab"`
	LauncherY     float64 `yaml:"launcher_y"`
}

type BallRulesSpec struct {
	Prefab          string  `yaml:"prefab"`
	DespawnDistance float64 `yaml:"despawn_distance"`
}

type CleanupSpec struct {
	Interval float64 `yaml:"interval"`
}

func LoadGameSpec() (GameSpec, error) {
	return LoadSpec[GameSpec]("game.yaml")
}

// LevelSpec describes a peg layout and any moving pegs.
type LevelSpec struct {
	Name       string          `yaml:"name"`
	Layout     LayoutSpec      `yaml:"layout"`
	MovingPegs []MovingPegSpec `yaml:"moving_pegs"`
}

type LayoutSpec struct {
	Script      string  `yaml:"script"`
	Columns     int     `yaml:"columns"`
	Rows        int     `yaml:"rows"`
	OriginX     float64 `yaml:"origin_x"`
	OriginY     float64 `yaml:"origin_y"`
	SpacingX    float64 `yaml:"spacing_x"`
	SpacingY    float64 `yaml:"spacing_y"`
	TargetEvery int     `yaml:"target_every"`
	RoundPrefab string  `yaml:"round_prefab"`
	RectPrefab  string  `yaml:"rect_prefab"`
}

type MovingPegSpec struct {
	Prefab string      `yaml:"prefab"`
	Target bool        `yaml:"target"`
	Speed  float64     `yaml:"speed"`
	Path   []PointSpec `yaml:"path"`
}

func LoadLevelSpec(name string) (LevelSpec, error) {
	if !strings.HasSuffix(name, ".yaml") {
		name = "level_" + name + ".yaml"
	}
	return LoadSpec[LevelSpec](name)
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
