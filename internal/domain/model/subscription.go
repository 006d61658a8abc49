package model

import (
	"time"

	"telegram-subscription-bot/internal/domain"
)

// SubscriptionStatus carries the provider's vocabulary verbatim. The local
// row is a cache of the provider's last-known state, never a source of
// truth, so the set is intentionally open.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// IsActive reports whether the cached status still entitles the user.
func (s SubscriptionStatus) IsActive() bool {
	return s == SubscriptionStatusActive || s == "trialing"
}

// Subscription mirrors one provider subscription per Telegram user.
type Subscription struct {
	TelegramID           int64
	StripeSubscriptionID string
	Status               SubscriptionStatus
	UpdatedAt            time.Time
}

func NewSubscription(tgID int64, stripeSubID string, status SubscriptionStatus) (*Subscription, error) {
	if tgID <= 0 || stripeSubID == "" || status == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Subscription{
		TelegramID:           tgID,
		StripeSubscriptionID: stripeSubID,
		Status:               status,
		UpdatedAt:            time.Now(),
	}, nil
}
