package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
)

func spawnLauncher(t *testing.T, w *ecs.World, pos cp.Vector, in component.Input) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y})
	mustAdd(t, w, e, component.LauncherComponent.Kind(), &component.Launcher{Direction: cp.Vector{Y: 1}, Power: 450})
	mustAdd(t, w, e, component.InputComponent.Kind(), &in)
	return e
}

func TestLauncherSystem(t *testing.T) {
	tests := []struct {
		name      string
		phase     component.Phase
		input     component.Input
		wantX     float64
		wantDir   cp.Vector
		wantBalls int
		wantPhase component.Phase
	}{
		{
			name:      "aims_at_cursor",
			phase:     component.PhaseLauncher,
			input:     component.Input{CursorX: 500, CursorY: 40},
			wantX:     400,
			wantDir:   cp.Vector{X: 1},
			wantPhase: component.PhaseLauncher,
		},
		{
			name:      "move_is_clamped",
			phase:     component.PhaseLauncher,
			input:     component.Input{CursorX: 900, CursorY: 140, MoveLauncher: true},
			wantX:     800,
			wantDir:   cp.Vector{X: 100, Y: 100}.Normalize(),
			wantPhase: component.PhaseLauncher,
		},
		{
			name:      "cursor_on_launcher_keeps_direction",
			phase:     component.PhaseLauncher,
			input:     component.Input{CursorX: 400, CursorY: 40},
			wantX:     400,
			wantDir:   cp.Vector{Y: 1},
			wantPhase: component.PhaseLauncher,
		},
		{
			name:      "shoot_spawns_ball",
			phase:     component.PhaseLauncher,
			input:     component.Input{CursorX: 400, CursorY: 140, Shoot: true},
			wantX:     400,
			wantDir:   cp.Vector{Y: 1},
			wantBalls: 1,
			wantPhase: component.PhaseBall,
		},
		{
			name:      "shoot_ignored_during_flight",
			phase:     component.PhaseBall,
			input:     component.Input{CursorX: 400, CursorY: 140, Shoot: true},
			wantX:     400,
			wantDir:   cp.Vector{Y: 1},
			wantPhase: component.PhaseBall,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			game := newGame(t, w, tc.phase, 1)
			e := spawnLauncher(t, w, cp.Vector{X: 400, Y: 40}, tc.input)
			NewLauncherSystem(0, 800).Update(w)

			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if tr.X != tc.wantX || tr.Y != 40 {
				t.Fatalf("expected launcher at (%v, 40), got (%v, %v)", tc.wantX, tr.X, tr.Y)
			}
			l, _ := ecs.Get(w, e, component.LauncherComponent.Kind())
			if l.Direction.Distance(tc.wantDir) > 1e-9 {
				t.Fatalf("expected direction %v, got %v", tc.wantDir, l.Direction)
			}
			if got := ecs.Count(w, component.BallTagComponent.Kind()); got != tc.wantBalls {
				t.Fatalf("expected %d balls, got %d", tc.wantBalls, got)
			}
			if game.Phase != tc.wantPhase {
				t.Fatalf("expected phase %v, got %v", tc.wantPhase, game.Phase)
			}
		})
	}
}

func TestLauncherSystemBallVelocity(t *testing.T) {
	w := ecs.NewWorld()
	newGame(t, w, component.PhaseLauncher, 1)
	spawnLauncher(t, w, cp.Vector{X: 100, Y: 40}, component.Input{CursorX: 100, CursorY: 90, Shoot: true})
	NewLauncherSystem(0, 800).Update(w)

	ball, ok := ecs.First(w, component.BallTagComponent.Kind())
	if !ok {
		t.Fatalf("expected a ball")
	}
	tr, _ := ecs.Get(w, ball, component.TransformComponent.Kind())
	if tr.X != 100 || tr.Y != 40 {
		t.Fatalf("ball should start at the launcher, got (%v, %v)", tr.X, tr.Y)
	}
	rb, _ := ecs.Get(w, ball, component.RigidBodyComponent.Kind())
	if math.Abs(rb.Velocity.X) > 1e-9 || math.Abs(rb.Velocity.Y-450) > 1e-9 {
		t.Fatalf("unexpected launch velocity %v", rb.Velocity)
	}
}
