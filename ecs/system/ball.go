package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
)

// BallSystem despawns balls that left the arena and ends the ball phase once
// none remain.
type BallSystem struct {
	center   cp.Vector
	distance float64
}

func NewBallSystem(center cp.Vector, distance float64) *BallSystem {
	return &BallSystem{center: center, distance: distance}
}

func (bs *BallSystem) Update(w *ecs.World) {
	game, ok := gameState(w)
	if !ok || game.Paused {
		return
	}

	ecs.ForEach2(w, component.BallTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.BallTag, t *component.Transform) {
		if math.Abs(t.X-bs.center.X) > bs.distance || math.Abs(t.Y-bs.center.Y) > bs.distance {
			ecs.DestroyEntity(w, e)
		}
	})

	if game.Phase == component.PhaseBall && ecs.Count(w, component.BallTagComponent.Kind()) == 0 {
		game.Phase = component.PhaseCleanup
	}
}
