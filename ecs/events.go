package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// EventBallHit is pushed by the physics system when a ball starts touching
// another collider. Data is a CollisionEvent.
const EventBallHit = "ball_hit"

// CollisionEvent names the two entities of a contact.
type CollisionEvent struct {
	Ball  Entity
	Other Entity
}

// EventQueue is a FIFO queue cleared at the end of every world update.
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

// Of returns this frame's events of the given type without consuming them.
func (q *EventQueue) Of(typ string) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
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
