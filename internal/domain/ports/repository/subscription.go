package repository

import (
	"context"

	"telegram-subscription-bot/internal/domain/model"
)

// SubscriptionRepository mirrors provider subscription state. Upsert is
// keyed on telegram_id (one subscription per user); UpdateStatus is keyed
// on the provider subscription id and reports how many rows changed, so
// events for unknown subscriptions are visible no-ops.
type SubscriptionRepository interface {
	Upsert(ctx context.Context, s *model.Subscription) error
	FindByTelegramID(ctx context.Context, tgID int64) (*model.Subscription, error)
	FindByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*model.Subscription, error)
	UpdateStatus(ctx context.Context, stripeSubID string, status model.SubscriptionStatus) (int64, error)
}
