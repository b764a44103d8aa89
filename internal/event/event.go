package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is one published intent.
type Event struct {
	// ID is unique per emitted event.
	ID string

	// Topic is the dot-separated event name.
	Topic string

	// Payload is whatever the publisher attached, often a typed struct or a
	// map[string]any.
	Payload any

	// Time is when the event was emitted.
	Time time.Time
}

func newEvent(topic string, payload any, now time.Time) Event {
	return Event{
		ID:      uuid.NewString(),
		Topic:   topic,
		Payload: payload,
		Time:    now,
	}
}
