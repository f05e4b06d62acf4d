package system

import (
	"log"

	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
)

// CollisionSystem detects and resolves overlaps between every pair of
// colliders once per tick. Pairs are tested all-against-all; there is no
// broad-phase index beyond the layer filter.
type CollisionSystem struct {
	// Logger receives enter/exit traces when set.
	Logger *log.Logger

	previous        pairSet
	collisionCount  int
	checksPerformed int
}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{previous: pairSet{}}
}

// CollisionCount returns the number of colliding pairs found last Update.
func (cs *CollisionSystem) CollisionCount() int {
	if cs == nil {
		return 0
	}
	return cs.collisionCount
}

// ChecksPerformed returns the number of narrow-phase tests attempted last
// Update.
func (cs *CollisionSystem) ChecksPerformed() int {
	if cs == nil {
		return 0
	}
	return cs.checksPerformed
}

// Colliding reports whether a and b were in contact at the end of the last
// Update.
func (cs *CollisionSystem) Colliding(a, b ecs.Entity) bool {
	if cs == nil {
		return false
	}
	return cs.previous.has(makePairKey(a, b))
}

// Reset forgets all contact state without firing exit callbacks.
func (cs *CollisionSystem) Reset() {
	if cs == nil {
		return
	}
	cs.previous = pairSet{}
	cs.collisionCount = 0
	cs.checksPerformed = 0
}

func (cs *CollisionSystem) Update(w *ecs.World) {
	if cs == nil {
		return
	}
	cs.collisionCount = 0
	cs.checksPerformed = 0
	if w == nil {
		return
	}

	// Callbacks may create or destroy entities, so walk a snapshot and
	// re-resolve components for every pair.
	entities := w.Entities()
	current := pairSet{}

	for i := 0; i < len(entities); i++ {
		a := entities[i]
		if !ecs.Has(w, a, component.ColliderComponent.Kind()) {
			continue
		}
		for j := i + 1; j < len(entities); j++ {
			b := entities[j]
			colA, okA := ecs.Get(w, a, component.ColliderComponent.Kind())
			if !okA {
				break
			}
			colB, okB := ecs.Get(w, b, component.ColliderComponent.Kind())
			if !okB {
				continue
			}
			if !component.LayersInteract(colA.Layer, colA.Mask, colB.Layer, colB.Mask) {
				continue
			}

			cs.checksPerformed++
			info, hit := cs.Check(w, a, b)
			if !hit {
				continue
			}

			cs.collisionCount++
			key := makePairKey(a, b)
			current.add(key)

			if cs.previous.has(key) {
				cs.dispatch(w, ecs.CollisionEventStay, a, b)
			} else {
				cs.logf("collision: enter a=%d b=%d", a, b)
				cs.dispatch(w, ecs.CollisionEventEnter, a, b)
			}

			if !info.IsTrigger {
				resolve(w, info)
			}
		}
	}

	for _, key := range cs.previous.missingFrom(current) {
		cs.logf("collision: exit a=%d b=%d", key.lo, key.hi)
		cs.dispatch(w, ecs.CollisionEventExit, key.lo, key.hi)
	}

	cs.previous = current
}

// Check runs the narrow phase for a single pair without touching contact
// state or callbacks. A missing Transform or Collider on either side yields
// false.
func (cs *CollisionSystem) Check(w *ecs.World, a, b ecs.Entity) (CollisionInfo, bool) {
	if a == b {
		return CollisionInfo{}, false
	}
	colA, ok := ecs.Get(w, a, component.ColliderComponent.Kind())
	if !ok {
		return CollisionInfo{}, false
	}
	colB, ok := ecs.Get(w, b, component.ColliderComponent.Kind())
	if !ok {
		return CollisionInfo{}, false
	}
	trA, ok := ecs.Get(w, a, component.TransformComponent.Kind())
	if !ok {
		return CollisionInfo{}, false
	}
	trB, ok := ecs.Get(w, b, component.TransformComponent.Kind())
	if !ok {
		return CollisionInfo{}, false
	}

	res, hit := testShapes(shapeCenter(trA, colA), colA, shapeCenter(trB, colB), colB)
	if !hit {
		return CollisionInfo{}, false
	}
	return CollisionInfo{
		A:           a,
		B:           b,
		Normal:      res.normal,
		Penetration: res.penetration,
		IsTrigger:   colA.IsTrigger || colB.IsTrigger,
	}, true
}

// dispatch invokes the callbacks for kind on both sides and queues the event.
// A side whose entity or collider is gone is skipped, and a pair with both
// sides destroyed reports nothing.
func (cs *CollisionSystem) dispatch(w *ecs.World, kind ecs.CollisionEventKind, a, b ecs.Entity) {
	if !w.IsAlive(a) && !w.IsAlive(b) {
		return
	}
	key := makePairKey(a, b)
	w.Events().Push(ecs.Event{
		Type: ecs.EventTypeCollision,
		Data: ecs.CollisionEvent{Kind: kind, A: key.lo, B: key.hi},
	})

	invoke(w, kind, a, b)
	invoke(w, kind, b, a)
}

func invoke(w *ecs.World, kind ecs.CollisionEventKind, self, other ecs.Entity) {
	col, ok := ecs.Get(w, self, component.ColliderComponent.Kind())
	if !ok {
		return
	}
	var cb component.CollisionCallback
	switch kind {
	case ecs.CollisionEventEnter:
		cb = col.OnEnter
	case ecs.CollisionEventStay:
		cb = col.OnStay
	case ecs.CollisionEventExit:
		cb = col.OnExit
	}
	if cb != nil {
		cb(uint32(other))
	}
}

// resolve pushes the pair apart along the contact normal. Dynamic pairs split
// the penetration evenly; a single dynamic side takes all of it. Components
// are looked up again because callbacks may have removed them.
func resolve(w *ecs.World, info CollisionInfo) {
	colA, okA := ecs.Get(w, info.A, component.ColliderComponent.Kind())
	colB, okB := ecs.Get(w, info.B, component.ColliderComponent.Kind())
	trA, okTA := ecs.Get(w, info.A, component.TransformComponent.Kind())
	trB, okTB := ecs.Get(w, info.B, component.TransformComponent.Kind())
	if !okA || !okB || !okTA || !okTB {
		return
	}
	if colA.IsTrigger || colB.IsTrigger {
		return
	}

	switch {
	case !colA.IsStatic && !colB.IsStatic:
		push := info.Normal.Mult(info.Penetration * 0.5)
		trA.Position = trA.Position.Sub(push)
		trB.Position = trB.Position.Add(push)
	case !colA.IsStatic:
		trA.Position = trA.Position.Sub(info.Normal.Mult(info.Penetration))
	case !colB.IsStatic:
		trB.Position = trB.Position.Add(info.Normal.Mult(info.Penetration))
	}
}

func (cs *CollisionSystem) logf(format string, args ...any) {
	if cs.Logger == nil {
		return
	}
	cs.Logger.Printf(format, args...)
}
