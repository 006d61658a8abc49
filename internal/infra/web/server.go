package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-subscription-bot/internal/domain/ports/adapter"
	"telegram-subscription-bot/internal/domain/ports/repository"
	"telegram-subscription-bot/internal/infra/logging"
	"telegram-subscription-bot/internal/usecase"
)

// eventDeduper is the slice of redis.EventDeduper the webhook handler
// needs; nil disables deduplication (the DB upserts stay idempotent).
type eventDeduper interface {
	MarkSeen(ctx context.Context, eventID string) (bool, error)
	Release(ctx context.Context, eventID string) error
}

type Server struct {
	subUC         usecase.SubscriptionUseCase
	events        repository.WebhookEventRepository
	deduper       eventDeduper
	notifier      adapter.Notifier
	webhookSecret string
	botLink       string // t.me link shown on the redirect pages
	log           *zerolog.Logger
}

func NewServer(
	subUC usecase.SubscriptionUseCase,
	events repository.WebhookEventRepository,
	deduper eventDeduper,
	notifier adapter.Notifier,
	webhookSecret string,
	botLink string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		subUC:         subUC,
		events:        events,
		deduper:       deduper,
		notifier:      notifier,
		webhookSecret: webhookSecret,
		botLink:       botLink,
		log:           logger,
	}
}

// Router builds the chi router. botWebhook, when non-nil, is mounted as
// the Telegram update transport (webhook bot mode).
func (s *Server) Router(botWebhook http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.traceID)
	r.Use(s.requestLog)

	r.Post("/webhook/stripe", s.handleStripeWebhook)
	r.Get("/billing/success", s.handleBillingSuccess)
	r.Get("/billing/cancel", s.handleBillingCancel)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	if botWebhook != nil {
		r.Post("/telegram/webhook", botWebhook)
	}
	return r
}

func (s *Server) traceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithTraceID(r.Context(), uuid.NewString())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := logging.With(r.Context(), s.log)
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		l.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("http_request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
