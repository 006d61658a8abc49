package repository

import (
	"context"

	"telegram-subscription-bot/internal/domain/model"
)

// WebhookEventRepository keeps the processed-event audit trail.
// Record must tolerate redelivery: inserting an already-seen provider
// event id is not an error.
type WebhookEventRepository interface {
	Record(ctx context.Context, e *model.WebhookEvent) error
}
