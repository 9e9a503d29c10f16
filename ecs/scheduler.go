package ecs

import "github.com/hajimehoshi/ebiten/v2"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// RenderSystem is a System that also draws.
type RenderSystem interface {
	Draw(w *World, screen *ebiten.Image)
}

// Scheduler runs systems in insertion order and draws the render systems among
// them in the same order. A system instance is scheduled once.
type Scheduler struct {
	systems   []System
	renderers []RenderSystem
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	for _, existing := range s.systems {
		if existing == system {
			return
		}
	}
	s.systems = append(s.systems, system)
	if r, ok := system.(RenderSystem); ok {
		s.renderers = append(s.renderers, r)
	}
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	for _, r := range s.renderers {
		r.Draw(w, screen)
	}
}

func (s *Scheduler) Len() int {
	return len(s.systems)
}

// Draw runs every render system.
func (w *World) Draw(screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	w.scheduler.Draw(w, screen)
}
