package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
)

func TestBallSystem(t *testing.T) {
	tests := []struct {
		name      string
		pos       cp.Vector
		phase     component.Phase
		wantAlive bool
		wantPhase component.Phase
	}{
		{"inside_keeps_flying", cp.Vector{X: 400, Y: 300}, component.PhaseBall, true, component.PhaseBall},
		{"below_despawns", cp.Vector{X: 400, Y: 1400}, component.PhaseBall, false, component.PhaseCleanup},
		{"far_left_despawns", cp.Vector{X: -700, Y: 300}, component.PhaseBall, false, component.PhaseCleanup},
		{"despawn_outside_flight_keeps_phase", cp.Vector{X: 400, Y: 1400}, component.PhaseLauncher, false, component.PhaseLauncher},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			game := newGame(t, w, tc.phase, 1)
			ball := spawnBall(t, w, tc.pos, cp.Vector{})
			NewBallSystem(cp.Vector{X: 400, Y: 300}, 1000).Update(w)

			if ecs.IsAlive(w, ball) != tc.wantAlive {
				t.Fatalf("expected alive=%v", tc.wantAlive)
			}
			if game.Phase != tc.wantPhase {
				t.Fatalf("expected phase %v, got %v", tc.wantPhase, game.Phase)
			}
		})
	}
}

func TestBallSystemPausedDoesNothing(t *testing.T) {
	w := ecs.NewWorld()
	game := newGame(t, w, component.PhaseBall, 1)
	game.Paused = true
	ball := spawnBall(t, w, cp.Vector{Y: 5000}, cp.Vector{})
	NewBallSystem(cp.Vector{}, 1000).Update(w)
	if !ecs.IsAlive(w, ball) || game.Phase != component.PhaseBall {
		t.Fatalf("paused world should not change")
	}
}
