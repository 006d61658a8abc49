package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-subscription-bot/internal/domain"
	"telegram-subscription-bot/internal/domain/model"
	"telegram-subscription-bot/internal/infra/i18n"
	"telegram-subscription-bot/internal/infra/logging"
	red "telegram-subscription-bot/internal/infra/redis"
)

const checkoutRateLimit = 3 // per user per minute

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	tgID := msg.From.ID
	user, err := b.userUC.RegisterOrFetch(ctx, tgID)
	if err != nil {
		return err
	}
	t := b.bundle.For(user.Language)

	switch {
	case strings.HasPrefix(msg.Text, "/start"):
		// No language yet: the prompt repeats on every /start until the
		// user picks one.
		if !user.HasLanguage() {
			return b.sendLanguagePrompt(msg.Chat.ID)
		}
		reply := tgbotapi.NewMessage(msg.Chat.ID, t.T("menu_title"))
		reply.ReplyMarkup = mainMenuKeyboard(t)
		return b.send(reply)
	case strings.HasPrefix(msg.Text, "/help"):
		return b.send(tgbotapi.NewMessage(msg.Chat.ID, t.T("help")))
	default:
		return b.send(tgbotapi.NewMessage(msg.Chat.ID, t.T("unknown")))
	}
}

func (b *Bot) sendLanguagePrompt(chatID int64) error {
	en := b.bundle.For(model.LanguageEnglish)
	ru := b.bundle.For(model.LanguageRussian)
	prompt := en.T("choose_language") + "\n" + ru.T("choose_language")
	reply := tgbotapi.NewMessage(chatID, prompt)
	reply.ReplyMarkup = languageKeyboard()
	return b.send(reply)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	// Acknowledge first so the client stops its spinner even if we fail.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		logging.With(ctx, b.log).Warn().Err(err).Msg("answer callback")
	}

	tgID := cb.From.ID
	// Message is nil when the originating message is too old for Telegram
	// to deliver; fall back to the user's private chat.
	chatID := tgID
	if cb.Message != nil && cb.Message.Chat != nil {
		chatID = cb.Message.Chat.ID
	}

	user, err := b.userUC.RegisterOrFetch(ctx, tgID)
	if err != nil {
		return err
	}
	t := b.bundle.For(user.Language)

	switch {
	case strings.HasPrefix(cb.Data, "lang:"):
		return b.handleSetLanguage(ctx, tgID, chatID, strings.TrimPrefix(cb.Data, "lang:"))
	case cb.Data == cbBuy:
		return b.handleBuy(ctx, tgID, chatID, t)
	case cb.Data == cbStatus:
		return b.handleStatus(ctx, tgID, chatID, t)
	case cb.Data == cbLanguage:
		return b.sendLanguagePrompt(chatID)
	case cb.Data == cbHelp:
		return b.send(tgbotapi.NewMessage(chatID, t.T("help")))
	default:
		return b.send(tgbotapi.NewMessage(chatID, t.T("unknown")))
	}
}

func (b *Bot) handleSetLanguage(ctx context.Context, tgID, chatID int64, raw string) error {
	lang, err := model.ParseLanguage(raw)
	if err != nil {
		return err
	}
	if err := b.userUC.SetLanguage(ctx, tgID, lang); err != nil {
		return err
	}
	t := b.bundle.For(lang)
	reply := tgbotapi.NewMessage(chatID, t.T("language_set")+"\n\n"+t.T("menu_title"))
	reply.ReplyMarkup = mainMenuKeyboard(t)
	return b.send(reply)
}

func (b *Bot) handleBuy(ctx context.Context, tgID, chatID int64, t *i18n.Translator) error {
	if b.limiter != nil {
		allowed, err := b.limiter.Allow(ctx, red.UserActionKey(tgID, "buy"), checkoutRateLimit, time.Minute)
		if err != nil {
			logging.With(ctx, b.log).Warn().Err(err).Msg("rate limiter unavailable")
		} else if !allowed {
			return b.send(tgbotapi.NewMessage(chatID, t.T("rate_limited")))
		}
	}

	sess, err := b.checkout.CreateSession(ctx, tgID)
	if err != nil {
		// Surfaced to the user, not retried automatically.
		return b.send(tgbotapi.NewMessage(chatID, t.T("checkout_error")))
	}
	reply := tgbotapi.NewMessage(chatID, t.T("checkout_prompt"))
	reply.ReplyMarkup = payKeyboard(t, sess.URL)
	return b.send(reply)
}

func (b *Bot) handleStatus(ctx context.Context, tgID, chatID int64, t *i18n.Translator) error {
	sub, err := b.subUC.StatusFor(ctx, tgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return b.send(tgbotapi.NewMessage(chatID, t.T("status_none")))
		}
		return err
	}
	if sub.Status.IsActive() {
		return b.send(tgbotapi.NewMessage(chatID, t.T("status_active")))
	}
	return b.send(tgbotapi.NewMessage(chatID, t.T("status_inactive", string(sub.Status))))
}

// --- Notifier implementation (called from webhook handlers) ---

func (b *Bot) NotifyActivated(ctx context.Context, tgID int64) error {
	t, err := b.translatorFor(ctx, tgID)
	if err != nil {
		return err
	}
	text := t.T("activated",
		channelLink(b.cfg.Channels.ChannelID),
		channelLink(b.cfg.Channels.GroupID),
	)
	return b.send(tgbotapi.NewMessage(tgID, text))
}

func (b *Bot) NotifyStatusChanged(ctx context.Context, tgID int64, status model.SubscriptionStatus) error {
	t, err := b.translatorFor(ctx, tgID)
	if err != nil {
		return err
	}
	return b.send(tgbotapi.NewMessage(tgID, t.T("status_changed", string(status))))
}

func (b *Bot) translatorFor(ctx context.Context, tgID int64) (*i18n.Translator, error) {
	user, err := b.userUC.Get(ctx, tgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return b.bundle.For(model.LanguageNone), nil
		}
		return nil, err
	}
	return b.bundle.For(user.Language), nil
}

// channelLink turns a configured channel identifier into something
// clickable. "@name" becomes a t.me link; full links pass through.
func channelLink(id string) string {
	if strings.HasPrefix(id, "@") {
		return "https://t.me/" + strings.TrimPrefix(id, "@")
	}
	return id
}
