package system

import (
	"github.com/milk9111/pegshot/ecs"
	"github.com/milk9111/pegshot/ecs/component"
)

// PathSystem advances entities along their closed paths at constant speed.
type PathSystem struct {
	dt float64
}

func NewPathSystem(dt float64) *PathSystem {
	return &PathSystem{dt: dt}
}

func (ps *PathSystem) Update(w *ecs.World) {
	if game, ok := gameState(w); ok && game.Paused {
		return
	}
	ecs.ForEach2(w, component.PathComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Path, t *component.Transform) {
		n := len(p.Points)
		if n < 2 || p.Speed <= 0 {
			return
		}
		remaining := p.Speed * ps.dt
		// Each pass either consumes the step or finishes a segment; a loop of
		// zero-length segments is bounded by n passes.
		for pass := 0; pass <= n && remaining > 0; pass++ {
			from, to := p.Points[p.Segment%n], p.Points[(p.Segment+1)%n]
			left := to.Distance(from) - p.Progress
			if remaining < left {
				p.Progress += remaining
				break
			}
			remaining -= left
			p.Segment = (p.Segment + 1) % n
			p.Progress = 0
		}

		from, to := p.Points[p.Segment%n], p.Points[(p.Segment+1)%n]
		pos := from
		if length := to.Distance(from); length > 0 {
			pos = from.Lerp(to, p.Progress/length)
		}
		if pos.X == t.X && pos.Y == t.Y {
			return
		}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
			panic("path system: update transform: " + err.Error())
		}
	})
}
