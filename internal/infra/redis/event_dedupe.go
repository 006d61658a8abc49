package redis

import (
	"context"
	"time"
)

const dedupeTTL = 24 * time.Hour

// EventDeduper short-circuits webhook redeliveries. The database upserts
// are idempotent anyway; this just saves the round trips. Errors are
// reported so callers can fall through to processing rather than drop
// an event on a redis hiccup.
type EventDeduper struct {
	client Client
}

func NewEventDeduper(client Client) *EventDeduper {
	return &EventDeduper{client: client}
}

// MarkSeen returns true if this event id has not been seen in the TTL
// window, claiming it in the same call.
func (d *EventDeduper) MarkSeen(ctx context.Context, eventID string) (bool, error) {
	return d.client.SetNX(ctx, "webhook_seen:"+eventID, 1, dedupeTTL)
}

// Release gives the claim back after a failed handling attempt so the
// provider's redelivery is processed instead of short-circuited.
func (d *EventDeduper) Release(ctx context.Context, eventID string) error {
	return d.client.Del(ctx, "webhook_seen:"+eventID)
}
