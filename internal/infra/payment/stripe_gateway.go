package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"telegram-subscription-bot/internal/config"
	"telegram-subscription-bot/internal/domain/ports/adapter"
)

var _ adapter.CheckoutGateway = (*StripeGateway)(nil)

// StripeGateway creates hosted Checkout Sessions for the single
// configured price. The Telegram id rides along as client_reference_id
// so the completed-checkout webhook can find its way back to the user.
type StripeGateway struct {
	priceID    string
	successURL string
	cancelURL  string
}

func NewStripeGateway(cfg *config.StripeConfig, baseURL string) (*StripeGateway, error) {
	if cfg.SecretKey == "" || cfg.PriceID == "" {
		return nil, errors.New("stripe secret key and price id are required")
	}
	stripe.Key = cfg.SecretKey
	return &StripeGateway{
		priceID:    cfg.PriceID,
		successURL: baseURL + "/billing/success",
		cancelURL:  baseURL + "/billing/cancel",
	}, nil
}

func (g *StripeGateway) CreateSession(ctx context.Context, tgID int64) (*adapter.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(g.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(g.successURL),
		CancelURL:         stripe.String(g.cancelURL),
		ClientReferenceID: stripe.String(strconv.FormatInt(tgID, 10)),
	}

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &adapter.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}
