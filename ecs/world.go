package ecs

import (
	"fmt"

	"github.com/milk9111/pegshot/ecs/component"
)

// World owns entities, components, and system order.
type World struct {
	entities  entityStore
	scheduler Scheduler
	events    EventQueue
	stores    map[component.ComponentID]*SparseSet
	changes   changeLog
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:  make(map[component.ComponentID]*SparseSet),
		changes: make(changeLog),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for id, store := range w.stores {
		if store.Remove(e) {
			w.changes.removed(id, e)
		}
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Update runs all systems once, then starts a new change frame and drops
// this frame's events.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.scheduler.Update(w)
	w.changes.reset()
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s := w.stores[id]
	if s == nil && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) set(e Entity, id component.ComponentID, v any) error {
	if w == nil || !w.entities.isAlive(e) {
		return fmt.Errorf("%w: %v", component.ErrEntityNotAlive, e)
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if w.store(id, true).Set(e, v) {
		w.changes.added(id, e)
	} else {
		w.changes.changed(id, e)
	}
	return nil
}

func (w *World) remove(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	if !w.store(id, false).Remove(e) {
		return false
	}
	w.changes.removed(id, e)
	return true
}
