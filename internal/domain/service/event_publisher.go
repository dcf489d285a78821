package service

import (
	"context"
	"time"
)

// UserEventType names a user lifecycle transition.
type UserEventType string

const (
	UserEventCreated UserEventType = "user.created"
	UserEventUpdated UserEventType = "user.updated"
	UserEventDeleted UserEventType = "user.deleted"
)

// UserEvent is published after a user write has been persisted.
type UserEvent struct {
	RequestID  string        `json:"request_id,omitempty"` // For distributed tracing
	EventID    string        `json:"event_id"`
	Type       UserEventType `json:"type"`
	UserID     string        `json:"user_id"`
	Username   string        `json:"username,omitempty"`
	Email      string        `json:"email,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// EventPublisher delivers user events to a message broker
type EventPublisher interface {
	PublishUserEvent(ctx context.Context, event *UserEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
