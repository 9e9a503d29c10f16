package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
	"github.com/milk9111/pegshot/ecs/entity"
)

// LauncherSystem moves and aims the launcher from input and fires a ball
// during the aiming phase.
type LauncherSystem struct {
	minX float64
	maxX float64
}

// NewLauncherSystem limits launcher movement to [minX, maxX].
func NewLauncherSystem(minX, maxX float64) *LauncherSystem {
	return &LauncherSystem{minX: minX, maxX: maxX}
}

func (ls *LauncherSystem) Update(w *ecs.World) {
	game, ok := gameState(w)
	if !ok || game.Paused {
		return
	}

	ecs.ForEach3(w, component.LauncherComponent.Kind(), component.TransformComponent.Kind(), component.InputComponent.Kind(),
		func(e ecs.Entity, l *component.Launcher, t *component.Transform, in *component.Input) {
			if in.MoveLauncher {
				x := math.Max(ls.minX, math.Min(ls.maxX, in.CursorX))
				if x != t.X {
					if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: t.Y}); err != nil {
						panic("launcher system: update transform: " + err.Error())
					}
					t, _ = ecs.Get(w, e, component.TransformComponent.Kind())
				}
			}

			aim := cp.Vector{X: in.CursorX - t.X, Y: in.CursorY - t.Y}
			if aim.Length() > 1e-6 {
				l.Direction = aim.Normalize()
			}

			if !in.Shoot || game.Phase != component.PhaseLauncher {
				return
			}
			if _, err := entity.NewBall(w, t.Vector(), l.Velocity()); err != nil {
				panic("launcher system: spawn ball: " + err.Error())
			}
			game.Phase = component.PhaseBall
		})
}
