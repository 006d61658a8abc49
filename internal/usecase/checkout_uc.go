package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-subscription-bot/internal/domain/ports/adapter"
	"telegram-subscription-bot/internal/infra/metrics"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

// CheckoutUseCase hands a user off to the provider's hosted page.
type CheckoutUseCase interface {
	CreateSession(ctx context.Context, tgID int64) (*adapter.CheckoutSession, error)
}

type checkoutUC struct {
	gateway adapter.CheckoutGateway
	log     *zerolog.Logger
}

func NewCheckoutUseCase(gateway adapter.CheckoutGateway, logger *zerolog.Logger) *checkoutUC {
	return &checkoutUC{gateway: gateway, log: logger}
}

// CreateSession is not retried here; the user gets a localized "try
// again" from the bot layer and presses the button again.
func (u *checkoutUC) CreateSession(ctx context.Context, tgID int64) (*adapter.CheckoutSession, error) {
	sess, err := u.gateway.CreateSession(ctx, tgID)
	if err != nil {
		metrics.IncCheckoutSession("failed")
		u.log.Error().Err(err).Int64("tg_id", tgID).Msg("create checkout session")
		return nil, err
	}
	metrics.IncCheckoutSession("created")
	u.log.Info().Int64("tg_id", tgID).Str("session", sess.ID).Msg("checkout session created")
	return sess, nil
}
