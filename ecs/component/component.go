// Package component holds the plain data attached to ECS entities. Each
// component type registers one kind at init time.
package component

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys a component store. Zero is never assigned.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind identifies the store for values of type T.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func NewComponentKind[T any]() ComponentKind[T] {
	var zero T
	name := fmt.Sprintf("%T", zero)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1)), name: name}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// String names the kind by its Go type, for error messages.
func (k ComponentKind[T]) String() string {
	if k.name == "" {
		return fmt.Sprintf("kind#%d", k.id)
	}
	return k.name
}

// ComponentHandle is the package-level registration of a component type.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
