package billing

import (
	"context"
	"sync"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

type fakeGymRepo struct {
	gyms map[string]*entity.Gym
	err  error
}

func (f *fakeGymRepo) GetByID(_ context.Context, id string) (*entity.Gym, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.gyms[id], nil
}

type fakeInvoiceRepo struct {
	mu        sync.Mutex
	invoices  []*entity.Invoice
	createErr error
	getErr    error
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invoices = append(f.invoices, inv)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, inv := range f.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) ListByPayment(_ context.Context, gymID, paymentID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range f.invoices {
		if inv.GymID == gymID && inv.PaymentID == paymentID {
			out = append(out, inv)
		}
	}
	return out, nil
}

type fakeProvider struct {
	reply *ProviderReply
	err   error
	calls int
	form  map[string]string
}

func (f *fakeProvider) Submit(_ context.Context, form map[string]string) (*ProviderReply, error) {
	f.calls++
	f.form = form
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

type fakeFetcher struct {
	body []byte
	urls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) []byte {
	f.urls = append(f.urls, url)
	return f.body
}

func strPtr(s string) *string { return &s }
