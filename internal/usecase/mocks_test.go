package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"telegram-subscription-bot/internal/domain"
	"telegram-subscription-bot/internal/domain/model"
	"telegram-subscription-bot/internal/domain/ports/adapter"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memUserRepo is a small in-memory implementation used by unit tests.
// The Func fields let individual tests inject failures.
type memUserRepo struct {
	mu    sync.RWMutex
	store map[int64]*model.User

	SaveFunc             func(ctx context.Context, u *model.User) error
	FindByTelegramIDFunc func(ctx context.Context, tgID int64) (*model.User, error)
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{store: make(map[int64]*model.User)}
}

func (m *memUserRepo) Save(ctx context.Context, u *model.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[u.TelegramID] = &cp
	return nil
}

func (m *memUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	if m.FindByTelegramIDFunc != nil {
		return m.FindByTelegramIDFunc(ctx, tgID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) SetLanguage(ctx context.Context, tgID int64, lang model.Language) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[tgID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Language = lang
	return nil
}

func (m *memUserRepo) SetStripeCustomerID(ctx context.Context, tgID int64, customerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[tgID]
	if !ok {
		return domain.ErrNotFound
	}
	u.StripeCustomerID = &customerID
	return nil
}

// memSubRepo mirrors the Postgres upsert semantics: one row per
// telegram_id, status updates keyed on the provider subscription id.
type memSubRepo struct {
	mu   sync.RWMutex
	subs map[int64]*model.Subscription

	UpsertFunc func(ctx context.Context, s *model.Subscription) error
}

func newMemSubRepo() *memSubRepo {
	return &memSubRepo{subs: make(map[int64]*model.Subscription)}
}

func (m *memSubRepo) Upsert(ctx context.Context, s *model.Subscription) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.subs[s.TelegramID] = &cp
	return nil
}

func (m *memSubRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.subs[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSubRepo) FindByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.subs {
		if s.StripeSubscriptionID == stripeSubID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memSubRepo) UpdateStatus(ctx context.Context, stripeSubID string, status model.SubscriptionStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range m.subs {
		if s.StripeSubscriptionID == stripeSubID {
			s.Status = status
			n++
		}
	}
	return n, nil
}

func (m *memSubRepo) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs)
}

// fakeGateway implements adapter.CheckoutGateway.
type fakeGateway struct {
	CreateSessionFunc func(ctx context.Context, tgID int64) (*adapter.CheckoutSession, error)
}

func (f *fakeGateway) CreateSession(ctx context.Context, tgID int64) (*adapter.CheckoutSession, error) {
	if f.CreateSessionFunc != nil {
		return f.CreateSessionFunc(ctx, tgID)
	}
	return &adapter.CheckoutSession{ID: "cs_test", URL: "https://checkout.example/cs_test"}, nil
}
