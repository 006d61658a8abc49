package usecase

import (
	"context"
	"errors"
	"testing"

	"telegram-subscription-bot/internal/domain/ports/adapter"
)

func TestCheckoutUseCase_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the provider session", func(t *testing.T) {
		uc := NewCheckoutUseCase(&fakeGateway{}, newTestLogger())

		sess, err := uc.CreateSession(ctx, 42)
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if sess.URL == "" {
			t.Error("expected a checkout URL")
		}
	})

	t.Run("propagates gateway failures", func(t *testing.T) {
		wantErr := errors.New("provider unavailable")
		gw := &fakeGateway{
			CreateSessionFunc: func(ctx context.Context, tgID int64) (*adapter.CheckoutSession, error) {
				return nil, wantErr
			},
		}
		uc := NewCheckoutUseCase(gw, newTestLogger())

		if _, err := uc.CreateSession(ctx, 42); !errors.Is(err, wantErr) {
			t.Errorf("expected %v, got %v", wantErr, err)
		}
	})
}
