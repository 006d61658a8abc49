package adapter

import "context"

// CheckoutSession is what the bot needs back from the provider: where to
// send the user.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutGateway creates hosted checkout sessions with the payment
// provider. Everything hard (card collection, PCI, retries) lives on the
// provider's side of this interface.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, tgID int64) (*CheckoutSession, error)
}
