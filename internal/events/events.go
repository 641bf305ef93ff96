package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	TypeContentUpdated = "content.updated"
)

// Event is a change notification. Consumers (cache purgers, static site
// rebuilders) fetch the document themselves; the event only names the version.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Version    string    `json:"version"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewContentUpdated builds a content.updated event for version
func NewContentUpdated(version string, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       TypeContentUpdated,
		Version:    version,
		OccurredAt: at.UTC(),
	}
}

// Publisher delivers change events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher discards every event. Used when AMQP_URL is unset.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
