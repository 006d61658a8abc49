package telegram

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-subscription-bot/internal/config"
	"telegram-subscription-bot/internal/domain"
	"telegram-subscription-bot/internal/domain/model"
	"telegram-subscription-bot/internal/domain/ports/adapter"
	"telegram-subscription-bot/internal/infra/i18n"
)

type apiCall struct {
	endpoint string
	params   url.Values
}

// stubAPIClient answers every Bot API call with an empty success and
// records what was sent.
type stubAPIClient struct {
	mu    sync.Mutex
	calls []apiCall
}

func (c *stubAPIClient) Do(req *http.Request) (*http.Response, error) {
	body, _ := io.ReadAll(req.Body)
	params, _ := url.ParseQuery(string(body))
	path := req.URL.Path
	c.mu.Lock()
	c.calls = append(c.calls, apiCall{
		endpoint: path[strings.LastIndex(path, "/")+1:],
		params:   params,
	})
	c.mu.Unlock()
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"ok":true,"result":{}}`)),
	}, nil
}

func (c *stubAPIClient) find(endpoint string) *apiCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.calls {
		if c.calls[i].endpoint == endpoint {
			return &c.calls[i]
		}
	}
	return nil
}

type fakeUserUC struct {
	user *model.User
}

func (f *fakeUserUC) RegisterOrFetch(ctx context.Context, tgID int64) (*model.User, error) {
	return f.user, nil
}

func (f *fakeUserUC) Get(ctx context.Context, tgID int64) (*model.User, error) {
	return f.user, nil
}

func (f *fakeUserUC) SetLanguage(ctx context.Context, tgID int64, lang model.Language) error {
	f.user.Language = lang
	return nil
}

type fakeSubUC struct {
	sub *model.Subscription
}

func (f *fakeSubUC) ActivateFromCheckout(ctx context.Context, tgID int64, customerID, stripeSubID string) error {
	return nil
}

func (f *fakeSubUC) ApplyStatus(ctx context.Context, stripeSubID string, status model.SubscriptionStatus) (int64, bool, error) {
	return 0, false, nil
}

func (f *fakeSubUC) StatusFor(ctx context.Context, tgID int64) (*model.Subscription, error) {
	if f.sub == nil {
		return nil, domain.ErrNotFound
	}
	return f.sub, nil
}

type fakeCheckoutUC struct{}

func (f *fakeCheckoutUC) CreateSession(ctx context.Context, tgID int64) (*adapter.CheckoutSession, error) {
	return &adapter.CheckoutSession{ID: "cs_test", URL: "https://checkout.example/cs_test"}, nil
}

func newTestBot(t *testing.T, client *stubAPIClient) *Bot {
	t.Helper()
	api := &tgbotapi.BotAPI{Client: client, Buffer: 100}
	api.SetAPIEndpoint(tgbotapi.APIEndpoint)

	bundle, err := i18n.NewBundle(i18n.LocalesFS)
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}
	logger := zerolog.Nop()
	cfg := &config.Config{}
	cfg.HTTP.BaseURL = "https://bot.example.com"
	cfg.Channels.ChannelID = "@channel"
	cfg.Channels.GroupID = "@group"

	return &Bot{
		api:      api,
		cfg:      cfg,
		userUC:   &fakeUserUC{user: &model.User{TelegramID: 42, Language: model.LanguageEnglish}},
		subUC:    &fakeSubUC{},
		checkout: &fakeCheckoutUC{},
		bundle:   bundle,
		log:      &logger,
		updates:  make(chan tgbotapi.Update, 4),
	}
}

func TestHandleCallback_ChatTargeting(t *testing.T) {
	t.Run("without a message the reply goes to the user's private chat", func(t *testing.T) {
		// Telegram omits Message when the originating message is too old.
		client := &stubAPIClient{}
		b := newTestBot(t, client)

		cb := &tgbotapi.CallbackQuery{
			ID:   "cb1",
			From: &tgbotapi.User{ID: 42},
			Data: cbStatus,
		}
		if err := b.handleCallback(context.Background(), cb); err != nil {
			t.Fatalf("handleCallback failed: %v", err)
		}

		sent := client.find("sendMessage")
		if sent == nil {
			t.Fatal("expected a sendMessage call")
		}
		if got := sent.params.Get("chat_id"); got != "42" {
			t.Errorf("expected chat_id 42, got %q", got)
		}
	})

	t.Run("with a message the reply goes to its chat", func(t *testing.T) {
		client := &stubAPIClient{}
		b := newTestBot(t, client)

		cb := &tgbotapi.CallbackQuery{
			ID:      "cb2",
			From:    &tgbotapi.User{ID: 42},
			Data:    cbStatus,
			Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 777}},
		}
		if err := b.handleCallback(context.Background(), cb); err != nil {
			t.Fatalf("handleCallback failed: %v", err)
		}

		sent := client.find("sendMessage")
		if sent == nil {
			t.Fatal("expected a sendMessage call")
		}
		if got := sent.params.Get("chat_id"); got != "777" {
			t.Errorf("expected chat_id 777, got %q", got)
		}
	})
}

func TestRegisterWebhook(t *testing.T) {
	client := &stubAPIClient{}
	b := newTestBot(t, client)

	if err := b.registerWebhook(); err != nil {
		t.Fatalf("registerWebhook failed: %v", err)
	}

	call := client.find("setWebhook")
	if call == nil {
		t.Fatal("expected a setWebhook call")
	}
	if got := call.params.Get("url"); got != "https://bot.example.com/telegram/webhook" {
		t.Errorf("unexpected webhook url %q", got)
	}
}
