package entity

import (
	"testing"

	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
	"github.com/milk9111/pegshot/prefabs"
)

func TestBuildArena(t *testing.T) {
	game, err := prefabs.LoadGameSpec()
	if err != nil {
		t.Fatalf("load game spec: %v", err)
	}
	level, err := prefabs.LoadLevelSpec("2")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}

	w := ecs.NewWorld()
	if err := BuildArena(w, game, level, 3); err != nil {
		t.Fatalf("build arena: %v", err)
	}

	if got := ecs.Count(w, component.WallTagComponent.Kind()); got != 3 {
		t.Fatalf("expected 3 walls, got %d", got)
	}
	gridPegs := level.Layout.Columns * level.Layout.Rows
	if got := ecs.Count(w, component.PegComponent.Kind()); got != gridPegs+len(level.MovingPegs) {
		t.Fatalf("expected %d pegs, got %d", gridPegs+len(level.MovingPegs), got)
	}
	if got := ecs.Count(w, component.PathComponent.Kind()); got != len(level.MovingPegs) {
		t.Fatalf("expected %d moving pegs, got %d", len(level.MovingPegs), got)
	}

	targets := 0
	ecs.ForEach(w, component.PegComponent.Kind(), func(_ ecs.Entity, p *component.Peg) {
		if p.Target {
			targets++
		}
	})
	if want := gridPegs/level.Layout.TargetEvery + 1; targets != want {
		t.Fatalf("expected %d targets, got %d", want, targets)
	}

	ge, ok := ecs.First(w, component.GameComponent.Kind())
	if !ok {
		t.Fatalf("no game state")
	}
	g, _ := ecs.Get(w, ge, component.GameComponent.Kind())
	if g.TargetsLeft != targets || g.Phase != component.PhaseLauncher {
		t.Fatalf("unexpected game state %+v", g)
	}

	le, ok := ecs.First(w, component.LauncherComponent.Kind())
	if !ok {
		t.Fatalf("no launcher")
	}
	tr, _ := ecs.Get(w, le, component.TransformComponent.Kind())
	if tr.X != game.Arena.Width/2 || tr.Y != game.Arena.LauncherY {
		t.Fatalf("launcher at (%v, %v)", tr.X, tr.Y)
	}
}

func TestNewMovingPegStartsOnPath(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewMovingPeg(w, prefabs.MovingPegSpec{
		Speed: 30,
		Path:  []prefabs.PointSpec{{X: 10, Y: 20}, {X: 50, Y: 20}},
	})
	if err != nil {
		t.Fatalf("new moving peg: %v", err)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 10 || tr.Y != 20 {
		t.Fatalf("moving peg should start at its first point, got (%v, %v)", tr.X, tr.Y)
	}
	p, _ := ecs.Get(w, e, component.PathComponent.Kind())
	if p.Speed != 30 || len(p.Points) != 2 {
		t.Fatalf("unexpected path %+v", p)
	}
	rb, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	if rb.Kind != component.BodyKinematic {
		t.Fatalf("moving peg should be kinematic, got %v", rb.Kind)
	}
}

func TestLoadLevelRejectsShortPath(t *testing.T) {
	w := ecs.NewWorld()
	level := prefabs.LevelSpec{
		Name:       "bad",
		Layout:     prefabs.LayoutSpec{Script: "peg_grid.tengo"},
		MovingPegs: []prefabs.MovingPegSpec{{Path: []prefabs.PointSpec{{X: 1, Y: 1}}}},
	}
	if _, err := LoadLevel(w, level, 1); err == nil {
		t.Fatalf("expected an error for a one point path")
	}
}
