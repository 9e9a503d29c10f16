package ecs

import (
	"slices"

	"github.com/milk9111/pegshot/ecs/component"
)

type changeState uint8

const (
	stateAdded changeState = iota + 1
	stateChanged
	stateRemoved
)

// kindChanges is the net effect of one frame of writes to a single component kind.
type kindChanges struct {
	state map[Entity]changeState
	order []Entity
}

type changeLog map[component.ComponentID]*kindChanges

func (l changeLog) kind(id component.ComponentID) *kindChanges {
	kc := l[id]
	if kc == nil {
		kc = &kindChanges{state: make(map[Entity]changeState)}
		l[id] = kc
	}
	return kc
}

func (kc *kindChanges) put(e Entity, s changeState) {
	if _, ok := kc.state[e]; !ok {
		kc.order = append(kc.order, e)
	}
	kc.state[e] = s
}

// added records an insertion. Re-inserting a component removed this frame
// is a change from the caller's point of view.
func (l changeLog) added(id component.ComponentID, e Entity) {
	kc := l.kind(id)
	if kc.state[e] == stateRemoved {
		kc.put(e, stateChanged)
		return
	}
	kc.put(e, stateAdded)
}

// changed records an overwrite. A component added this frame stays added.
func (l changeLog) changed(id component.ComponentID, e Entity) {
	kc := l.kind(id)
	if kc.state[e] == stateAdded {
		return
	}
	kc.put(e, stateChanged)
}

// removed records a removal. A component added this frame cancels out.
func (l changeLog) removed(id component.ComponentID, e Entity) {
	kc := l.kind(id)
	if kc.state[e] == stateAdded {
		delete(kc.state, e)
		kc.order = slices.DeleteFunc(kc.order, func(o Entity) bool { return o == e })
		return
	}
	kc.put(e, stateRemoved)
}

func (l changeLog) filter(id component.ComponentID, s changeState) []Entity {
	kc := l[id]
	if kc == nil {
		return nil
	}
	var out []Entity
	for _, e := range kc.order {
		if st, ok := kc.state[e]; ok && st == s {
			out = append(out, e)
		}
	}
	return out
}

func (l changeLog) reset() {
	clear(l)
}

// Added returns entities that gained the component this frame, in write order.
func Added[T any](w *World, kind component.ComponentKind[T]) []Entity {
	if w == nil {
		return nil
	}
	return w.changes.filter(kind.ID(), stateAdded)
}

// Changed returns entities whose existing component was overwritten this frame.
func Changed[T any](w *World, kind component.ComponentKind[T]) []Entity {
	if w == nil {
		return nil
	}
	return w.changes.filter(kind.ID(), stateChanged)
}

// Removed returns entities that lost the component this frame, including
// destroyed entities.
func Removed[T any](w *World, kind component.ComponentKind[T]) []Entity {
	if w == nil {
		return nil
	}
	return w.changes.filter(kind.ID(), stateRemoved)
}
