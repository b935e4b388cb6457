// Package queue defines message payloads exchanged over the message broker.
package queue

// MovieEventsQueue is the durable queue shared by the publisher and the
// background consumer.
const MovieEventsQueue = "catalog.movie-events"

// Actions carried by MovieEvent.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// MovieEvent is published whenever a movie is created or deleted.  It holds
// enough information for downstream consumers to log or trigger analytics
// without querying the primary database.
type MovieEvent struct {
	Action     string `json:"action"`
	MovieID    uint64 `json:"movie_id"`
	Title      string `json:"title,omitempty"`
	OwnerID    uint64 `json:"owner_id"`
	OccurredAt string `json:"occurred_at"`
}
