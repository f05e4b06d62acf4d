package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentKind is the stable tag a component type is stored under. Two kinds
// created for the same Go type are still distinct stores.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle pairs a kind with the constructor used when a component is
// added without an explicit value.
type ComponentHandle[T any] struct {
	kind    ComponentKind[T]
	newFunc func() T
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

// NewComponentWithDefault registers a kind whose default value is built by fn.
func NewComponentWithDefault[T any](fn func() T) ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T](), newFunc: fn}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

// New returns a freshly constructed default value.
func (h ComponentHandle[T]) New() *T {
	var v T
	if h.newFunc != nil {
		v = h.newFunc()
	}
	return &v
}

type ComponentID uint32

var nextComponentID atomic.Uint32
