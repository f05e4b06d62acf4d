package ecs

import "github.com/milk9111/collide/ecs/component"

// Ref is a lease on one component of one entity. It holds no pointer into
// storage: every Get resolves through the world, so a Ref taken before
// DestroyEntity or Remove reports absent afterwards instead of dangling.
type Ref[T any] struct {
	w    *World
	e    Entity
	kind component.ComponentKind[T]
}

func RefOf[T any](w *World, e Entity, kind component.ComponentKind[T]) Ref[T] {
	return Ref[T]{w: w, e: e, kind: kind}
}

func (r Ref[T]) Entity() Entity {
	return r.e
}

// Get resolves the component, or reports absent.
func (r Ref[T]) Get() (*T, bool) {
	return Get(r.w, r.e, r.kind)
}

// Valid reports whether the component is still attached.
func (r Ref[T]) Valid() bool {
	return Has(r.w, r.e, r.kind) && r.w.IsAlive(r.e)
}

// Update applies fn to the component if it is still attached.
func (r Ref[T]) Update(fn func(*T)) bool {
	v, ok := r.Get()
	if !ok || fn == nil {
		return false
	}
	fn(v)
	return true
}
