package http_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/application/billing"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacenamiento en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memClasses struct {
	mu       sync.Mutex
	sessions map[string]*entity.ClassSession
	regs     []*entity.ClassRegistration
}

func (m *memClasses) RunRegistration(_ context.Context, fn func(repository.ClassSessionRepository, repository.ClassRegistrationRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m, m)
}

func (m *memClasses) GetByID(_ context.Context, id, gymID string) (*entity.ClassSession, error) {
	s, ok := m.sessions[id]
	if !ok || s.GymID != gymID {
		return nil, nil
	}
	return s, nil
}

func (m *memClasses) GetByIDForUpdate(ctx context.Context, id, gymID string) (*entity.ClassSession, error) {
	return m.GetByID(ctx, id, gymID)
}

func (m *memClasses) Create(_ context.Context, reg *entity.ClassRegistration) error {
	reg.ID = fmt.Sprintf("reg-%d", len(m.regs)+1)
	reg.CreatedAt = time.Now()
	m.regs = append(m.regs, reg)
	return nil
}

func (m *memClasses) CountBySession(_ context.Context, sessionID, gymID string) (int, error) {
	n := 0
	for _, r := range m.regs {
		if r.SessionID == sessionID && r.GymID == gymID {
			n++
		}
	}
	return n, nil
}

func (m *memClasses) ListBySession(_ context.Context, sessionID, gymID string) ([]*entity.ClassRegistration, error) {
	var out []*entity.ClassRegistration
	for _, r := range m.regs {
		if r.SessionID == sessionID && r.GymID == gymID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memGyms map[string]*entity.Gym

func (m memGyms) GetByID(_ context.Context, id string) (*entity.Gym, error) {
	return m[id], nil
}

type memInvoices struct {
	items     []*entity.Invoice
	createErr error
	getErr    error
}

func (m *memInvoices) Create(_ context.Context, inv *entity.Invoice) error {
	if m.createErr != nil {
		return m.createErr
	}
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	m.items = append(m.items, inv)
	return nil
}

func (m *memInvoices) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, inv := range m.items {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (m *memInvoices) ListByPayment(_ context.Context, gymID, paymentID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range m.items {
		if inv.GymID == gymID && inv.PaymentID == paymentID {
			out = append(out, inv)
		}
	}
	return out, nil
}

type stubProvider struct {
	calls int
	reply billing.ProviderReply
}

func (s *stubProvider) Submit(context.Context, map[string]string) (*billing.ProviderReply, error) {
	s.calls++
	r := s.reply
	return &r, nil
}

type stubFetcher struct{ body []byte }

func (s stubFetcher) Fetch(context.Context, string) []byte { return s.body }
