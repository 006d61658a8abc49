package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// WebhookEvent is an audit record of a processed provider event. The
// provider event id is unique, so redeliveries surface as conflicts
// rather than duplicate rows.
type WebhookEvent struct {
	ID         string // ULID, sortable by receipt time
	ProviderID string // e.g. "evt_..."
	Type       string
	ReceivedAt time.Time
}

func NewWebhookEvent(providerID, eventType string) *WebhookEvent {
	now := time.Now()
	return &WebhookEvent{
		ID:         ulid.Make().String(),
		ProviderID: providerID,
		Type:       eventType,
		ReceivedAt: now,
	}
}
