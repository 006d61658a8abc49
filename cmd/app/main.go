package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"telegram-subscription-bot/internal/config"
	pg "telegram-subscription-bot/internal/infra/db/postgres"
	"telegram-subscription-bot/internal/infra/i18n"
	"telegram-subscription-bot/internal/infra/logging"
	"telegram-subscription-bot/internal/infra/metrics"
	"telegram-subscription-bot/internal/infra/payment"
	red "telegram-subscription-bot/internal/infra/redis"
	"telegram-subscription-bot/internal/infra/telegram"
	"telegram-subscription-bot/internal/infra/web"
	"telegram-subscription-bot/internal/usecase"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log)
	metrics.MustRegister()

	// ---- Postgres (runs embedded migrations) ----
	pool, err := pg.Connect(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	limiter := red.NewRateLimiter(redisClient)
	deduper := red.NewEventDeduper(redisClient)

	// ---- Repositories ----
	userRepo := pg.NewPostgresUserRepo(pool)
	subRepo := pg.NewPostgresSubscriptionRepo(pool)
	eventRepo := pg.NewPostgresWebhookEventRepo(pool)

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(userRepo, logger)
	subUC := usecase.NewSubscriptionUseCase(userRepo, subRepo, logger)

	gateway, err := payment.NewStripeGateway(&cfg.Stripe, cfg.HTTP.BaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("stripe gateway")
	}
	checkoutUC := usecase.NewCheckoutUseCase(gateway, logger)

	// ---- i18n ----
	bundle, err := i18n.NewBundle(i18n.LocalesFS)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}

	// ---- Telegram ----
	bot, err := telegram.NewBot(cfg, userUC, subUC, checkoutUC, limiter, bundle, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	go func() {
		if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("bot stopped")
		}
	}()

	// ---- HTTP: provider webhooks, billing redirects, health, metrics ----
	srv := web.NewServer(subUC, eventRepo, deduper, bot, cfg.Stripe.WebhookSecret, bot.Link(), logger)
	var botWebhook http.HandlerFunc
	if cfg.Bot.Mode == "webhook" {
		botWebhook = bot.WebhookHandler()
	}
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: srv.Router(botWebhook),
	}
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Str("mode", cfg.Bot.Mode).Msg("http listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown requested")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
