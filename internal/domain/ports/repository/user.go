package repository

import (
	"context"

	"telegram-subscription-bot/internal/domain/model"
)

// UserRepository persists Telegram users. Save is an upsert keyed on
// telegram_id so repeated /start handling stays idempotent.
type UserRepository interface {
	Save(ctx context.Context, u *model.User) error
	FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error)
	SetLanguage(ctx context.Context, tgID int64, lang model.Language) error
	SetStripeCustomerID(ctx context.Context, tgID int64, customerID string) error
}
