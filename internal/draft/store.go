// Package draft persists in-progress quotation forms so an agent can kill
// the app mid-edit and resume where they left off. A draft is a full
// snapshot of the form wrapped in a versioned envelope, keyed by trip id.
package draft

import "sync"

// Store is a byte-level key/value store for draft envelopes. Get returns
// (nil, nil) when no draft exists for the trip id. Implementations do not
// need transactions: writes are idempotent full-snapshot overwrites and
// there is one logical writer per trip id.
type Store interface {
	Get(tripID string) ([]byte, error)
	Set(tripID string, raw []byte) error
	Delete(tripID string) error
}

// MemoryStore is an in-memory Store, safe for concurrent use. It backs
// tests and serves as a degraded fallback when the on-device database is
// unavailable: drafts then survive the session but not a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string][]byte)}
}

func (m *MemoryStore) Get(tripID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.byID[tripID]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), raw...), nil
}

func (m *MemoryStore) Set(tripID string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[tripID] = append([]byte(nil), raw...)
	return nil
}

func (m *MemoryStore) Delete(tripID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, tripID)
	return nil
}
