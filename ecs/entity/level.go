package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
	"github.com/milk9111/pegshot/prefabs"
)

// LoadLevel spawns the level's pegs and returns how many are targets.
func LoadLevel(w *ecs.World, spec prefabs.LevelSpec, seed int64) (int, error) {
	placements, err := RunLayout(spec.Layout, seed)
	if err != nil {
		return 0, err
	}

	targets := 0
	for _, p := range placements {
		prefab := spec.Layout.RectPrefab
		if p.Round {
			prefab = spec.Layout.RoundPrefab
		}
		if _, err := NewPegAt(w, prefab, cp.Vector{X: p.X, Y: p.Y}, p.Round, p.Target); err != nil {
			return targets, err
		}
		if p.Target {
			targets++
		}
	}

	for i, mp := range spec.MovingPegs {
		if len(mp.Path) < 2 {
			return targets, fmt.Errorf("level %q: moving peg %d needs at least 2 path points", spec.Name, i)
		}
		if _, err := NewMovingPeg(w, mp); err != nil {
			return targets, err
		}
		if mp.Target {
			targets++
		}
	}
	return targets, nil
}

func NewPegAt(w *ecs.World, prefab string, pos cp.Vector, round, target bool) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, pos); err != nil {
		return 0, fmt.Errorf("peg: override transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PegComponent.Kind(), &component.Peg{Round: round, Target: target}); err != nil {
		return 0, fmt.Errorf("peg: override peg: %w", err)
	}
	return e, nil
}

// NewMovingPeg spawns a kinematic peg at the first point of its looped path.
func NewMovingPeg(w *ecs.World, spec prefabs.MovingPegSpec) (ecs.Entity, error) {
	prefab := spec.Prefab
	if prefab == "" {
		prefab = "peg_moving.yaml"
	}
	points := pointsToVectors(spec.Path)
	e, err := NewPegAt(w, prefab, points[0], false, spec.Target)
	if err != nil {
		return 0, err
	}
	path, ok := ecs.Get(w, e, component.PathComponent.Kind())
	if !ok {
		path = &component.Path{}
	}
	path.Points = points
	if spec.Speed > 0 {
		path.Speed = spec.Speed
	}
	if err := ecs.Add(w, e, component.PathComponent.Kind(), path); err != nil {
		return 0, fmt.Errorf("peg: override path: %w", err)
	}
	return e, nil
}

// NewGame creates the round state singleton.
func NewGame(w *ecs.World, targets int) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.GameComponent.Kind(), &component.Game{
		Phase:       component.PhaseLauncher,
		TargetsLeft: targets,
	}); err != nil {
		return 0, err
	}
	return e, nil
}

// BuildArena creates walls, level pegs, the launcher and the game state.
func BuildArena(w *ecs.World, game prefabs.GameSpec, level prefabs.LevelSpec, seed int64) error {
	if _, err := NewArena(w, game.Arena); err != nil {
		return err
	}
	targets, err := LoadLevel(w, level, seed)
	if err != nil {
		return err
	}
	if _, err := NewLauncherAt(w, cp.Vector{X: game.Arena.Width / 2, Y: game.Arena.LauncherY}); err != nil {
		return err
	}
	_, err = NewGame(w, targets)
	return err
}
