package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"telegram-subscription-bot/internal/domain"
	"telegram-subscription-bot/internal/domain/model"
	"telegram-subscription-bot/internal/domain/ports/repository"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// UserUseCase exposes user-related operations used by the bot and webhook flows.
type UserUseCase interface {
	RegisterOrFetch(ctx context.Context, tgID int64) (*model.User, error)
	Get(ctx context.Context, tgID int64) (*model.User, error)
	SetLanguage(ctx context.Context, tgID int64, lang model.Language) error
}

type userUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, logger *zerolog.Logger) *userUC {
	return &userUC{users: users, log: logger}
}

// RegisterOrFetch returns the existing user or creates one on first
// contact. Save is an upsert, so two racing first contacts both succeed.
func (u *userUC) RegisterOrFetch(ctx context.Context, tgID int64) (*model.User, error) {
	usr, err := u.users.FindByTelegramID(ctx, tgID)
	if err == nil {
		return usr, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	nu, err := model.NewUser(tgID)
	if err != nil {
		return nil, err
	}
	if err := u.users.Save(ctx, nu); err != nil {
		u.log.Error().Err(err).Int64("tg_id", tgID).Msg("register user")
		return nil, err
	}
	u.log.Info().Int64("tg_id", tgID).Msg("registered new user")
	return nu, nil
}

func (u *userUC) Get(ctx context.Context, tgID int64) (*model.User, error) {
	return u.users.FindByTelegramID(ctx, tgID)
}

func (u *userUC) SetLanguage(ctx context.Context, tgID int64, lang model.Language) error {
	if lang == model.LanguageNone {
		return domain.ErrInvalidArgument
	}
	return u.users.SetLanguage(ctx, tgID, lang)
}
