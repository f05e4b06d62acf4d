package ecs

import "github.com/milk9111/collide/ecs/component"

func storeOf[T any](w *World, kind component.ComponentKind[T]) *SparseSet[T] {
	s, ok := w.store(kind.ID()).(*SparseSet[T])
	if !ok {
		return nil
	}
	return s
}

func ensureStore[T any](w *World, kind component.ComponentKind[T]) *SparseSet[T] {
	if s := storeOf(w, kind); s != nil {
		return s
	}
	s := &SparseSet[T]{}
	w.setStore(kind.ID(), s)
	return s
}

// Add attaches value to e under kind, replacing any existing component of
// that kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	ensureStore(w, kind).Set(e.id(), value)
	return nil
}

// AddDefault attaches a default-constructed component and returns it for
// initialisation.
func AddDefault[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, error) {
	v := handle.New()
	if err := Add(w, e, handle.Kind(), v); err != nil {
		return nil, err
	}
	return v, nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return storeOf(w, kind).Remove(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return storeOf(w, kind).Has(e.id())
}

// Get returns the component of kind attached to e. The pointer is only valid
// while the component stays attached; hold a Ref across ticks instead.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	v := storeOf(w, kind).Get(e.id())
	return v, v != nil
}

// Count returns how many entities carry kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	return storeOf(w, kind).Len()
}
