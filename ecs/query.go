package ecs

import "github.com/milk9111/collide/ecs/component"

// Query returns the entities carrying kind, in storage order. The slice is a
// copy and is safe to keep while the world changes.
func Query[T any](w *World, kind component.ComponentKind[T]) []Entity {
	s := storeOf(w, kind)
	if s == nil || s.Len() == 0 {
		return nil
	}
	out := make([]Entity, 0, s.Len())
	for _, id := range s.Entities() {
		out = append(out, Entity(id))
	}
	return out
}

// ForEach calls fn for every entity carrying kind. fn may add or destroy
// entities; each step re-resolves the component so removed ones are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if fn == nil {
		return
	}
	for _, e := range Query(w, kind) {
		v, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

// ForEach2 calls fn for every entity carrying both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if fn == nil {
		return
	}
	sa, sb := storeOf(w, ka), storeOf(w, kb)
	if sa == nil || sb == nil {
		return
	}
	// iterate the smaller set
	var ids []Entity
	if sa.Len() <= sb.Len() {
		ids = Query(w, ka)
	} else {
		ids = Query(w, kb)
	}
	for _, e := range ids {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}
