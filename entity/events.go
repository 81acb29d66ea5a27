package entity

import "time"

// EventKind identifies a semantic world event.
type EventKind string

const (
	EventEnemyHit      EventKind = "enemy_hit"
	EventEnemyKilled   EventKind = "enemy_killed"
	EventPlayerHit     EventKind = "player_hit"
	EventPoleGrabbed   EventKind = "pole_grabbed"
	EventTeleported    EventKind = "teleported"
	EventLevelComplete EventKind = "level_complete"
)

// Event is a world event payload.
type Event struct {
	Kind    EventKind
	Entity  uint64
	X, Y    float64
	Value   int
	Elapsed time.Duration
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
