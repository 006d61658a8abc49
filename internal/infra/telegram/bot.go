package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-subscription-bot/internal/config"
	"telegram-subscription-bot/internal/infra/i18n"
	"telegram-subscription-bot/internal/infra/logging"
	"telegram-subscription-bot/internal/infra/metrics"
	red "telegram-subscription-bot/internal/infra/redis"
	"telegram-subscription-bot/internal/usecase"
)

// Bot wires Telegram updates to the use cases. Updates flow through one
// bounded channel regardless of transport (long polling or the webhook
// endpoint) and are consumed by a fixed worker pool.
type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      *config.Config
	userUC   usecase.UserUseCase
	subUC    usecase.SubscriptionUseCase
	checkout usecase.CheckoutUseCase
	limiter  *red.RateLimiter
	bundle   *i18n.Bundle
	log      *zerolog.Logger

	updates chan tgbotapi.Update
}

func NewBot(
	cfg *config.Config,
	userUC usecase.UserUseCase,
	subUC usecase.SubscriptionUseCase,
	checkout usecase.CheckoutUseCase,
	limiter *red.RateLimiter,
	bundle *i18n.Bundle,
	logger *zerolog.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, err
	}
	b := &Bot{
		api:      api,
		cfg:      cfg,
		userUC:   userUC,
		subUC:    subUC,
		checkout: checkout,
		limiter:  limiter,
		bundle:   bundle,
		log:      logger,
		updates:  make(chan tgbotapi.Update, 100),
	}
	if cfg.Bot.Mode == "webhook" {
		if err := b.registerWebhook(); err != nil {
			return nil, fmt.Errorf("register telegram webhook: %w", err)
		}
	}
	return b, nil
}

// registerWebhook points Telegram at our update endpoint so webhook mode
// works without an out-of-band setWebhook call.
func (b *Bot) registerWebhook() error {
	wh, err := tgbotapi.NewWebhook(b.cfg.HTTP.BaseURL + "/telegram/webhook")
	if err != nil {
		return err
	}
	_, err = b.api.Request(wh)
	return err
}

// Link is the t.me address of the bot, used on the billing redirect pages.
func (b *Bot) Link() string {
	return "https://t.me/" + b.api.Self.UserName
}

// Run starts the worker pool and, in polling mode, the update dispatcher.
// It blocks until ctx is canceled and the workers have drained.
func (b *Bot) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for i := 0; i < b.cfg.Bot.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case update, ok := <-b.updates:
					if !ok {
						return
					}
					b.handleUpdate(ctx, update)
				case <-ctx.Done():
					return
				}
			}
		}(i + 1)
	}

	if b.cfg.Bot.Mode == "polling" {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		incoming := b.api.GetUpdatesChan(u)

		go func() {
			for {
				select {
				case update := <-incoming:
					select {
					case b.updates <- update:
					case <-ctx.Done():
						return
					}
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	<-ctx.Done()
	if b.cfg.Bot.Mode == "polling" {
		b.api.StopReceivingUpdates()
	}
	wg.Wait()
	return ctx.Err()
}

// WebhookHandler is the bot transport endpoint for webhook mode. It only
// enqueues; the worker pool does the actual handling, same as polling.
func (b *Bot) WebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			b.log.Warn().Err(err).Msg("bad telegram update payload")
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		select {
		case b.updates <- update:
			w.WriteHeader(http.StatusOK)
		case <-r.Context().Done():
			http.Error(w, "shutting down", http.StatusServiceUnavailable)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		metrics.IncBotUpdate("message")
		ctx = logging.WithTgID(ctx, update.Message.From.ID)
		if err := b.handleMessage(ctx, update.Message); err != nil {
			metrics.IncBotHandlerError("message")
			logging.With(ctx, b.log).Error().Err(err).Msg("message handler")
		}
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		metrics.IncBotUpdate("callback")
		ctx = logging.WithTgID(ctx, update.CallbackQuery.From.ID)
		if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
			metrics.IncBotHandlerError("callback")
			logging.With(ctx, b.log).Error().Err(err).Msg("callback handler")
		}
	default:
		metrics.IncBotUpdate("other")
	}
}

func (b *Bot) send(c tgbotapi.Chattable) error {
	_, err := b.api.Send(c)
	return err
}
