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

var _ repository.UserRepository = (*PostgresUserRepo)(nil)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

func (r *PostgresUserRepo) Save(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (telegram_id, language, stripe_customer_id, created_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (telegram_id) DO UPDATE SET
  language = EXCLUDED.language,
  stripe_customer_id = COALESCE(EXCLUDED.stripe_customer_id, users.stripe_customer_id);`
	_, err := r.pool.Exec(ctx, q, u.TelegramID, string(u.Language), u.StripeCustomerID, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("save user %d: %w", u.TelegramID, err)
	}
	return nil
}

func (r *PostgresUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	const q = `
SELECT telegram_id, language, stripe_customer_id, created_at
  FROM users WHERE telegram_id = $1;`
	var (
		u    model.User
		lang string
	)
	err := r.pool.QueryRow(ctx, q, tgID).Scan(&u.TelegramID, &lang, &u.StripeCustomerID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", tgID, err)
	}
	u.Language = model.Language(lang)
	return &u, nil
}

func (r *PostgresUserRepo) SetLanguage(ctx context.Context, tgID int64, lang model.Language) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET language = $2 WHERE telegram_id = $1;`, tgID, string(lang))
	if err != nil {
		return fmt.Errorf("set language for %d: %w", tgID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepo) SetStripeCustomerID(ctx context.Context, tgID int64, customerID string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET stripe_customer_id = $2 WHERE telegram_id = $1;`, tgID, customerID)
	if err != nil {
		return fmt.Errorf("link customer for %d: %w", tgID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
