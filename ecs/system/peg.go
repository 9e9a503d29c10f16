package system

import (
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
)

// PegSystem marks pegs hit by a ball and, during cleanup, removes them one
// per interval in hit order while scoring.
type PegSystem struct {
	interval float64
	dt       float64
	timer    float64
	queue    []ecs.Entity
}

func NewPegSystem(interval, dt float64) *PegSystem {
	return &PegSystem{interval: interval, dt: dt}
}

// Pending returns the number of hit pegs waiting for cleanup.
func (ps *PegSystem) Pending() int {
	return len(ps.queue)
}

func (ps *PegSystem) Update(w *ecs.World) {
	game, ok := gameState(w)
	if !ok || game.Paused {
		return
	}

	for _, evt := range w.Events().Of(ecs.EventBallHit) {
		hit, ok := evt.Data.(ecs.CollisionEvent)
		if !ok {
			continue
		}
		peg, ok := ecs.Get(w, hit.Other, component.PegComponent.Kind())
		if !ok || peg.State != component.PegActive {
			continue
		}
		if err := ecs.Add(w, hit.Other, component.PegComponent.Kind(), &component.Peg{Target: peg.Target, Round: peg.Round, State: component.PegHit}); err != nil {
			panic("peg system: mark hit: " + err.Error())
		}
		ps.queue = append(ps.queue, hit.Other)
	}

	if game.Phase != component.PhaseCleanup {
		ps.timer = 0
		return
	}

	ps.timer += ps.dt
	for len(ps.queue) > 0 && ps.timer >= ps.interval {
		ps.timer -= ps.interval
		e := ps.queue[0]
		ps.queue = ps.queue[1:]
		if peg, ok := ecs.Get(w, e, component.PegComponent.Kind()); ok {
			game.Score++
			if peg.Target && game.TargetsLeft > 0 {
				game.TargetsLeft--
			}
		}
		ecs.DestroyEntity(w, e)
	}
	if len(ps.queue) == 0 {
		ps.timer = 0
		game.Phase = component.PhaseLauncher
	}
}
