package billomat

import (
	"context"
	"time"
)

// EventType names a mutation.
type EventType string

// Mutation event types.
const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Event describes one successful mutation made through a client.
type Event struct {
	Type     EventType `json:"type"`
	Resource string    `json:"resource"`
	ID       int       `json:"id"`
	OwnerID  int       `json:"owner_id,omitempty"`
	At       time.Time `json:"at"`
}

// EventPublisher receives mutation events after the remote call succeeded.
// Publish failures are logged and never fail the mutation.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
