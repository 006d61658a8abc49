package model

import (
	"strings"
	"time"

	"telegram-subscription-bot/internal/domain"
)

// Language is the user's interface language. Empty means the user has not
// picked one yet and must be prompted on every /start.
type Language string

const (
	LanguageNone    Language = ""
	LanguageEnglish Language = "en"
	LanguageRussian Language = "ru"
)

// ParseLanguage maps arbitrary input (callback payloads, Telegram
// language_code values) onto the closed language set.
func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "en" || strings.HasPrefix(s, "en-"):
		return LanguageEnglish, nil
	case s == "ru" || strings.HasPrefix(s, "ru-"):
		return LanguageRussian, nil
	default:
		return LanguageNone, domain.ErrInvalidArgument
	}
}

// User is a Telegram user known to the bot. TelegramID is the external
// chat identifier and the unique key everywhere in the system.
type User struct {
	TelegramID       int64
	Language         Language
	StripeCustomerID *string
	CreatedAt        time.Time
}

func NewUser(tgID int64) (*User, error) {
	if tgID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		TelegramID: tgID,
		Language:   LanguageNone,
		CreatedAt:  time.Now(),
	}, nil
}

func (u *User) HasLanguage() bool { return u != nil && u.Language != LanguageNone }
