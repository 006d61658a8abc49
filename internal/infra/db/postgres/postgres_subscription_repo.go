package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-subscription-bot/internal/domain"
	"telegram-subscription-bot/internal/domain/model"
	"telegram-subscription-bot/internal/domain/ports/repository"
)

var _ repository.SubscriptionRepository = (*PostgresSubscriptionRepo)(nil)

type PostgresSubscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresSubscriptionRepo(pool *pgxpool.Pool) *PostgresSubscriptionRepo {
	return &PostgresSubscriptionRepo{pool: pool}
}

// Upsert is keyed on telegram_id so a redelivered checkout event rewrites
// the same row instead of inserting a second one.
func (r *PostgresSubscriptionRepo) Upsert(ctx context.Context, s *model.Subscription) error {
	const q = `
INSERT INTO subscriptions (telegram_id, stripe_subscription_id, status, updated_at)
VALUES ($1,$2,$3,NOW())
ON CONFLICT (telegram_id) DO UPDATE SET
  stripe_subscription_id = EXCLUDED.stripe_subscription_id,
  status = EXCLUDED.status,
  updated_at = NOW();`
	_, err := r.pool.Exec(ctx, q, s.TelegramID, s.StripeSubscriptionID, string(s.Status))
	if err != nil {
		return fmt.Errorf("upsert subscription for %d: %w", s.TelegramID, err)
	}
	return nil
}

func (r *PostgresSubscriptionRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.Subscription, error) {
	const q = `
SELECT telegram_id, stripe_subscription_id, status, updated_at
  FROM subscriptions WHERE telegram_id = $1;`
	var (
		s      model.Subscription
		status string
	)
	err := r.pool.QueryRow(ctx, q, tgID).Scan(&s.TelegramID, &s.StripeSubscriptionID, &status, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find subscription for %d: %w", tgID, err)
	}
	s.Status = model.SubscriptionStatus(status)
	return &s, nil
}

func (r *PostgresSubscriptionRepo) FindByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*model.Subscription, error) {
	const q = `
SELECT telegram_id, stripe_subscription_id, status, updated_at
  FROM subscriptions WHERE stripe_subscription_id = $1;`
	var (
		s      model.Subscription
		status string
	)
	err := r.pool.QueryRow(ctx, q, stripeSubID).Scan(&s.TelegramID, &s.StripeSubscriptionID, &status, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find subscription %s: %w", stripeSubID, err)
	}
	s.Status = model.SubscriptionStatus(status)
	return &s, nil
}

// UpdateStatus touches nothing when the subscription id is unknown; the
// caller sees that via the returned row count, not an error.
func (r *PostgresSubscriptionRepo) UpdateStatus(ctx context.Context, stripeSubID string, status model.SubscriptionStatus) (int64, error) {
	const q = `
UPDATE subscriptions SET status = $2, updated_at = NOW()
 WHERE stripe_subscription_id = $1;`
	tag, err := r.pool.Exec(ctx, q, stripeSubID, string(status))
	if err != nil {
		return 0, fmt.Errorf("update status for %s: %w", stripeSubID, err)
	}
	return tag.RowsAffected(), nil
}
