package service

import (
	"context"
	"time"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// DomainEvent is published for downstream marketing and analytics consumers.
type DomainEvent struct {
	Type        string                 `json:"type"`
	AggregateID string                 `json:"aggregate_id"`
	OccurredAt  time.Time              `json:"occurred_at"`
	Payload     map[string]interface{} `json:"payload"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}

// NotificationPusher delivers a persisted notification to connected clients.
type NotificationPusher interface {
	PushToUser(userID string, payload interface{})
	PushToAdmins(payload interface{})
}
