package service

import "context"

// Event topics published when a broker is configured.
const (
	TopicPointsEvents     = "points.events"
	TopicRedemptionEvents = "redemption.events"
)

// EventPublisher is satisfied by the kafka producer. Publishing is
// fire-and-forget: failures are the publisher's problem to log, never the
// request's problem to fail on.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any)
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) {}
