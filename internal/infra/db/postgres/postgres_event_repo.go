package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-subscription-bot/internal/domain/model"
	"telegram-subscription-bot/internal/domain/ports/repository"
)

var _ repository.WebhookEventRepository = (*PostgresWebhookEventRepo)(nil)

type PostgresWebhookEventRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresWebhookEventRepo(pool *pgxpool.Pool) *PostgresWebhookEventRepo {
	return &PostgresWebhookEventRepo{pool: pool}
}

// Record inserts the audit row. ON CONFLICT DO NOTHING makes redelivered
// provider events a silent no-op.
func (r *PostgresWebhookEventRepo) Record(ctx context.Context, e *model.WebhookEvent) error {
	const q = `
INSERT INTO webhook_events (id, provider_event_id, event_type, received_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (provider_event_id) DO NOTHING;`
	_, err := r.pool.Exec(ctx, q, e.ID, e.ProviderID, e.Type, e.ReceivedAt)
	if err != nil {
		return fmt.Errorf("record webhook event %s: %w", e.ProviderID, err)
	}
	return nil
}
