package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"telegram-subscription-bot/internal/domain"
	"telegram-subscription-bot/internal/domain/model"
	"telegram-subscription-bot/internal/domain/ports/repository"
	"telegram-subscription-bot/internal/infra/metrics"
)

// Compile-time check
var _ SubscriptionUseCase = (*subscriptionUC)(nil)

// SubscriptionUseCase reconciles provider subscription events into the
// local mirror. All writes are idempotent under webhook redelivery.
type SubscriptionUseCase interface {
	// ActivateFromCheckout links the provider customer to the user and
	// upserts the subscription row to active.
	ActivateFromCheckout(ctx context.Context, tgID int64, customerID, stripeSubID string) error
	// ApplyStatus updates the mirrored status by provider subscription id.
	// Unknown ids are a no-op: applied is false and err is nil.
	ApplyStatus(ctx context.Context, stripeSubID string, status model.SubscriptionStatus) (tgID int64, applied bool, err error)
	StatusFor(ctx context.Context, tgID int64) (*model.Subscription, error)
}

type subscriptionUC struct {
	users repository.UserRepository
	subs  repository.SubscriptionRepository
	log   *zerolog.Logger
}

func NewSubscriptionUseCase(users repository.UserRepository, subs repository.SubscriptionRepository, logger *zerolog.Logger) *subscriptionUC {
	return &subscriptionUC{users: users, subs: subs, log: logger}
}

func (u *subscriptionUC) ActivateFromCheckout(ctx context.Context, tgID int64, customerID, stripeSubID string) error {
	if tgID <= 0 || stripeSubID == "" {
		return domain.ErrInvalidArgument
	}

	// The buyer normally exists already (they pressed the button in the
	// bot), but a checkout completed for an unknown chat id must still
	// leave consistent rows behind.
	if _, err := u.users.FindByTelegramID(ctx, tgID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		nu, err := model.NewUser(tgID)
		if err != nil {
			return err
		}
		if err := u.users.Save(ctx, nu); err != nil {
			return err
		}
	}

	if customerID != "" {
		if err := u.users.SetStripeCustomerID(ctx, tgID, customerID); err != nil {
			return err
		}
	}

	sub, err := model.NewSubscription(tgID, stripeSubID, model.SubscriptionStatusActive)
	if err != nil {
		return err
	}
	if err := u.subs.Upsert(ctx, sub); err != nil {
		return err
	}

	metrics.IncSubscriptionUpdate(string(model.SubscriptionStatusActive))
	u.log.Info().Int64("tg_id", tgID).Str("subscription", stripeSubID).Msg("subscription activated")
	return nil
}

func (u *subscriptionUC) ApplyStatus(ctx context.Context, stripeSubID string, status model.SubscriptionStatus) (int64, bool, error) {
	if stripeSubID == "" || status == "" {
		return 0, false, domain.ErrInvalidArgument
	}

	sub, err := u.subs.FindByStripeSubscriptionID(ctx, stripeSubID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			u.log.Warn().Str("subscription", stripeSubID).Msg("status event for unknown subscription, ignoring")
			return 0, false, nil
		}
		return 0, false, err
	}

	n, err := u.subs.UpdateStatus(ctx, stripeSubID, status)
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}

	metrics.IncSubscriptionUpdate(string(status))
	u.log.Info().Int64("tg_id", sub.TelegramID).Str("subscription", stripeSubID).
		Str("status", string(status)).Msg("subscription status updated")
	return sub.TelegramID, true, nil
}

func (u *subscriptionUC) StatusFor(ctx context.Context, tgID int64) (*model.Subscription, error) {
	return u.subs.FindByTelegramID(ctx, tgID)
}
