package ecs

import (
	"fmt"

	"github.com/milk9111/pegshot/ecs/component"
)

// Add stores value on e, replacing any existing component of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if value == nil {
		return fmt.Errorf("add %s: %w", kind, component.ErrNilComponent)
	}
	if err := w.set(e, kind.ID(), value); err != nil {
		return fmt.Errorf("add %s: %w", kind, err)
	}
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.remove(e, kind.ID())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	return w.store(kind.ID(), false).Has(e)
}

// Get returns the stored pointer. Mutating it does not mark the component
// changed; call Add again for that.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	v, ok := w.store(kind.ID(), false).Get(e).(*T)
	return v, ok
}

// First returns the first entity holding the component.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	if s.Len() == 0 {
		return 0, false
	}
	return s.Entities()[0], true
}

// Count returns the number of entities holding the component.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	if w == nil {
		return 0
	}
	return w.store(kind.ID(), false).Len()
}

// ForEach visits every entity holding the component. fn may add or remove
// components; the visited set is fixed when ForEach starts.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil {
		return
	}
	s := w.store(kind.ID(), false)
	for _, e := range snapshot(s) {
		if v, ok := s.Get(e).(*T); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil {
		return
	}
	sa, sb := w.store(ka.ID(), false), w.store(kb.ID(), false)
	for _, e := range IntersectEntities(sa, sb) {
		a, okA := sa.Get(e).(*A)
		b, okB := sb.Get(e).(*B)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil {
		return
	}
	sa, sb, sc := w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false)
	for _, e := range IntersectEntities(sa, sb, sc) {
		a, okA := sa.Get(e).(*A)
		b, okB := sb.Get(e).(*B)
		c, okC := sc.Get(e).(*C)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

func snapshot(s *SparseSet) []Entity {
	if s.Len() == 0 {
		return nil
	}
	return append([]Entity(nil), s.Entities()...)
}
