package system

import (
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
)

func gameState(w *ecs.World) (*component.Game, bool) {
	e, ok := ecs.First(w, component.GameComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.GameComponent.Kind())
}

// PauseSystem toggles the paused flag on Pause input.
type PauseSystem struct{}

func NewPauseSystem() *PauseSystem {
	return &PauseSystem{}
}

func (p *PauseSystem) Update(w *ecs.World) {
	game, ok := gameState(w)
	if !ok {
		return
	}
	toggle := false
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		toggle = toggle || in.Pause
	})
	if toggle {
		game.Paused = !game.Paused
	}
}
