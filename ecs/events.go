package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// CollisionEventKind identifies collision event types.
type CollisionEventKind string

const (
	CollisionEventEnter CollisionEventKind = "enter"
	CollisionEventStay  CollisionEventKind = "stay"
	CollisionEventExit  CollisionEventKind = "exit"
)

// EventTypeCollision is the Event.Type used for CollisionEvent payloads.
const EventTypeCollision = "collision"

// CollisionEvent is emitted when a pair's contact state is classified. A is
// always the lower entity id. An exit is still emitted when one side has been
// destroyed, but not when both have.
type CollisionEvent struct {
	Kind CollisionEventKind
	A    Entity
	B    Entity
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
