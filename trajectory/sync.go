package trajectory

import "github.com/jakecoffman/cp"

type ShapeChange struct {
	ID       EntityID
	Collider Collider
}

type Move struct {
	ID       EntityID
	Position cp.Vector
}

type Addition struct {
	ID       EntityID
	Collider Collider
	Position cp.Vector
}

// Changes is one frame of live collider lifecycle events.
type Changes struct {
	ShapeChanged []ShapeChange
	Moved        []Move
	Added        []Addition
	Removed      []EntityID
}

func (c Changes) Empty() bool {
	return len(c.ShapeChanged) == 0 && len(c.Moved) == 0 && len(c.Added) == 0 && len(c.Removed) == 0
}

// Apply replays a frame of changes onto the mirror. Updates and moves run before
// removals so they never address a freed collider, and additions run after updates so
// an entity added this frame is inserted in its final shape and position.
func (w *World) Apply(c Changes) {
	if w == nil {
		return
	}
	for _, ch := range c.ShapeChanged {
		w.UpdateShape(ch.ID, ch.Collider)
	}
	for _, mv := range c.Moved {
		w.MoveTo(mv.ID, mv.Position)
	}
	for _, add := range c.Added {
		w.Add(add.ID, add.Collider, add.Position)
	}
	for _, id := range c.Removed {
		w.Remove(id)
	}
}
