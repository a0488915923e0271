package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/lactec/intranet/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventObjectAdded    EventType = "object_added"
	EventObjectModified EventType = "object_modified"
)

// Event is a lifecycle notification about a content item.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Object    *domain.Content `json:"-"`
	ActorID   string          `json:"actor_id"`
	Changes   []string        `json:"changes,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent builds an event for obj.
func NewEvent(eventType EventType, obj *domain.Content, actorID string, changes ...string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Object:    obj,
		ActorID:   actorID,
		Changes:   changes,
		Timestamp: time.Now().UTC(),
	}
}
