package adapter

import (
	"context"

	"telegram-subscription-bot/internal/domain/model"
)

// Notifier pushes subscription lifecycle messages back to the user over
// the bot transport. Implementations must be safe to call from HTTP
// handler goroutines.
type Notifier interface {
	NotifyActivated(ctx context.Context, tgID int64) error
	NotifyStatusChanged(ctx context.Context, tgID int64, status model.SubscriptionStatus) error
}
