package usecase

import (
	"context"
	"errors"
	"testing"

	"telegram-subscription-bot/internal/domain"
	"telegram-subscription-bot/internal/domain/model"
)

func TestSubscriptionUseCase_ActivateFromCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("activates and links the customer", func(t *testing.T) {
		users := newMemUserRepo()
		subs := newMemSubRepo()
		_ = users.Save(ctx, &model.User{TelegramID: 42})
		uc := NewSubscriptionUseCase(users, subs, newTestLogger())

		if err := uc.ActivateFromCheckout(ctx, 42, "cus_1", "sub_1"); err != nil {
			t.Fatalf("ActivateFromCheckout failed: %v", err)
		}

		sub, err := subs.FindByTelegramID(ctx, 42)
		if err != nil {
			t.Fatalf("subscription not written: %v", err)
		}
		if sub.Status != model.SubscriptionStatusActive {
			t.Errorf("expected active, got %q", sub.Status)
		}
		if sub.StripeSubscriptionID != "sub_1" {
			t.Errorf("expected sub_1, got %q", sub.StripeSubscriptionID)
		}
		u, _ := users.FindByTelegramID(ctx, 42)
		if u.StripeCustomerID == nil || *u.StripeCustomerID != "cus_1" {
			t.Errorf("customer not linked: %v", u.StripeCustomerID)
		}
	})

	t.Run("redelivery leaves exactly one row", func(t *testing.T) {
		users := newMemUserRepo()
		subs := newMemSubRepo()
		_ = users.Save(ctx, &model.User{TelegramID: 42})
		uc := NewSubscriptionUseCase(users, subs, newTestLogger())

		if err := uc.ActivateFromCheckout(ctx, 42, "cus_1", "sub_1"); err != nil {
			t.Fatalf("first delivery failed: %v", err)
		}
		if err := uc.ActivateFromCheckout(ctx, 42, "cus_1", "sub_1"); err != nil {
			t.Fatalf("second delivery failed: %v", err)
		}

		if n := subs.count(); n != 1 {
			t.Errorf("expected exactly one subscription row, got %d", n)
		}
		sub, _ := subs.FindByTelegramID(ctx, 42)
		if sub.Status != model.SubscriptionStatusActive {
			t.Errorf("expected active after redelivery, got %q", sub.Status)
		}
	})

	t.Run("creates the user when checkout arrives first", func(t *testing.T) {
		users := newMemUserRepo()
		subs := newMemSubRepo()
		uc := NewSubscriptionUseCase(users, subs, newTestLogger())

		if err := uc.ActivateFromCheckout(ctx, 99, "cus_9", "sub_9"); err != nil {
			t.Fatalf("ActivateFromCheckout failed: %v", err)
		}
		if _, err := users.FindByTelegramID(ctx, 99); err != nil {
			t.Errorf("user should have been created: %v", err)
		}
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		uc := NewSubscriptionUseCase(newMemUserRepo(), newMemSubRepo(), newTestLogger())
		if err := uc.ActivateFromCheckout(ctx, 0, "", ""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestSubscriptionUseCase_ApplyStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("updates a known subscription", func(t *testing.T) {
		users := newMemUserRepo()
		subs := newMemSubRepo()
		_ = subs.Upsert(ctx, &model.Subscription{TelegramID: 42, StripeSubscriptionID: "sub_1", Status: model.SubscriptionStatusActive})
		uc := NewSubscriptionUseCase(users, subs, newTestLogger())

		tgID, applied, err := uc.ApplyStatus(ctx, "sub_1", model.SubscriptionStatusPastDue)
		if err != nil {
			t.Fatalf("ApplyStatus failed: %v", err)
		}
		if !applied || tgID != 42 {
			t.Errorf("expected applied for tg 42, got applied=%v tg=%d", applied, tgID)
		}
		sub, _ := subs.FindByTelegramID(ctx, 42)
		if sub.Status != model.SubscriptionStatusPastDue {
			t.Errorf("expected past_due, got %q", sub.Status)
		}
	})

	t.Run("unknown subscription id is a silent no-op", func(t *testing.T) {
		users := newMemUserRepo()
		subs := newMemSubRepo()
		uc := NewSubscriptionUseCase(users, subs, newTestLogger())

		_, applied, err := uc.ApplyStatus(ctx, "sub_missing", model.SubscriptionStatusCanceled)
		if err != nil {
			t.Fatalf("unknown id must not error: %v", err)
		}
		if applied {
			t.Error("nothing should have been applied")
		}
		if n := subs.count(); n != 0 {
			t.Errorf("no row must be created, got %d", n)
		}
	})

	t.Run("rejects empty arguments", func(t *testing.T) {
		uc := NewSubscriptionUseCase(newMemUserRepo(), newMemSubRepo(), newTestLogger())
		if _, _, err := uc.ApplyStatus(ctx, "", ""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
