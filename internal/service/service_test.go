package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/voyagedesk/tripquote/internal/models"
	"github.com/voyagedesk/tripquote/internal/quotation"
)

// In-memory fakes for the persistence surfaces so service tests run
// without a database.

type memLeadStore struct {
	mu    sync.Mutex
	leads map[string]*models.Lead
	order []string
}

func newMemLeadStore() *memLeadStore {
	return &memLeadStore{leads: make(map[string]*models.Lead)}
}

func (m *memLeadStore) Create(lead *models.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *lead
	m.leads[lead.ID] = &cp
	m.order = append(m.order, lead.ID)
	return nil
}

func (m *memLeadStore) GetByID(id string) (*models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lead, ok := m.leads[id]
	if !ok {
		return nil, nil
	}
	cp := *lead
	return &cp, nil
}

func (m *memLeadStore) List(limit, offset int) ([]*models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := append([]string(nil), m.order...)
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	var out []*models.Lead
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		cp := *m.leads[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memLeadStore) UpdateStatus(id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lead, ok := m.leads[id]
	if !ok {
		return fmt.Errorf("lead %s not found", id)
	}
	lead.Status = status
	return nil
}

type memQuotationStore struct {
	mu      sync.Mutex
	nextID  int64
	byTrip  map[string]*models.Quotation
	history []*models.Quotation
}

func newMemQuotationStore() *memQuotationStore {
	return &memQuotationStore{byTrip: make(map[string]*models.Quotation)}
}

func (m *memQuotationStore) Create(q *models.Quotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byTrip[q.TripID]; exists {
		return fmt.Errorf("quotation for trip %s already exists", q.TripID)
	}
	m.nextID++
	q.ID = m.nextID
	cp := *q
	m.byTrip[q.TripID] = &cp
	m.history = append(m.history, &cp)
	return nil
}

func (m *memQuotationStore) GetByTripID(tripID string) (*models.Quotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.byTrip[tripID]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (m *memQuotationStore) List(limit, offset int) ([]*models.Quotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Quotation
	for i := len(m.history) - 1; i >= 0; i-- {
		if len(out) >= limit {
			break
		}
		cp := *m.history[i]
		out = append(out, &cp)
	}
	return out, nil
}

type fakeRenderer struct {
	mu     sync.Mutex
	calls  int
	last   quotation.Form
	failed error
}

func (f *fakeRenderer) Render(form quotation.Form) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = form
	if f.failed != nil {
		return "", f.failed
	}
	return fmt.Sprintf("/tmp/quotation_%s.pdf", form.TripID), nil
}
