package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
	"github.com/milk9111/pegshot/shape"
)

// hitInjector pushes ball hit events for the listed pegs once.
type hitInjector struct {
	pegs []ecs.Entity
}

func (h *hitInjector) Update(w *ecs.World) {
	for _, p := range h.pegs {
		w.Events().Push(ecs.Event{Type: ecs.EventBallHit, Data: ecs.CollisionEvent{Other: p}})
	}
	h.pegs = nil
}

func spawnPeg(t *testing.T, w *ecs.World, x float64, target bool) ecs.Entity {
	t.Helper()
	e := spawnCollider(t, w, cp.Vector{X: x}, shape.Ball{Radius: 9})
	mustAdd(t, w, e, component.PegComponent.Kind(), &component.Peg{Target: target, Round: true})
	return e
}

func newGame(t *testing.T, w *ecs.World, phase component.Phase, targets int) *component.Game {
	t.Helper()
	e := ecs.CreateEntity(w)
	g := &component.Game{Phase: phase, TargetsLeft: targets}
	mustAdd(t, w, e, component.GameComponent.Kind(), g)
	return g
}

func TestPegSystemMarksAndCleansUp(t *testing.T) {
	w := ecs.NewWorld()
	game := newGame(t, w, component.PhaseBall, 1)
	a := spawnPeg(t, w, 0, false)
	b := spawnPeg(t, w, 40, true)
	c := spawnPeg(t, w, 80, false)

	inject := &hitInjector{pegs: []ecs.Entity{b, a, b}}
	ps := NewPegSystem(0.1, 1.0/60)
	w.AddSystem(inject)
	w.AddSystem(ps)

	w.Update()
	if ps.Pending() != 2 {
		t.Fatalf("expected 2 queued pegs (duplicate hit ignored), got %d", ps.Pending())
	}
	for _, e := range []ecs.Entity{a, b} {
		peg, _ := ecs.Get(w, e, component.PegComponent.Kind())
		if peg.State != component.PegHit {
			t.Fatalf("peg %v should be marked hit", e)
		}
	}
	if peg, _ := ecs.Get(w, c, component.PegComponent.Kind()); peg.State != component.PegActive {
		t.Fatalf("untouched peg should stay active")
	}

	game.Phase = component.PhaseCleanup
	frames := 0
	for game.Phase == component.PhaseCleanup && frames < 120 {
		w.Update()
		frames++
		if frames == 4 && (!ecs.IsAlive(w, b) || !ecs.IsAlive(w, a)) {
			t.Fatalf("pegs removed before the first interval elapsed")
		}
	}

	if game.Phase != component.PhaseLauncher {
		t.Fatalf("expected return to aiming after cleanup, phase %v", game.Phase)
	}
	if frames < 11 || frames > 14 {
		t.Fatalf("two pegs at 0.1s each should take about 12 frames, took %d", frames)
	}
	if ecs.IsAlive(w, a) || ecs.IsAlive(w, b) || !ecs.IsAlive(w, c) {
		t.Fatalf("only hit pegs should be despawned")
	}
	if game.Score != 2 || game.TargetsLeft != 0 || !game.Won() {
		t.Fatalf("unexpected score %d targets %d", game.Score, game.TargetsLeft)
	}
}

func TestPegSystemEmptyCleanupReturnsToAim(t *testing.T) {
	w := ecs.NewWorld()
	game := newGame(t, w, component.PhaseCleanup, 3)
	w.AddSystem(NewPegSystem(0.1, 1.0/60))
	w.Update()
	if game.Phase != component.PhaseLauncher {
		t.Fatalf("expected aiming phase, got %v", game.Phase)
	}
}
