package booking

import (
	"context"
	"sync"
)

// InMemoryStore keeps booking records in a mutex-guarded map. It is
// the default backend when neither a database URL nor a bookings file
// is configured.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]Record)}
}

func (s *InMemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Reference] = rec
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, refOrFragment string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := resolve(refOrFragment, s.refSet())
	if !ok {
		return Record{}, ErrNotFound
	}
	return s.records[ref], nil
}

func (s *InMemoryStore) Delete(_ context.Context, refOrFragment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := resolve(refOrFragment, s.refSet())
	if !ok {
		return ErrNotFound
	}
	delete(s.records, ref)
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out, nil
}

func (s *InMemoryStore) Close() error { return nil }

// refSet must be called with the lock held.
func (s *InMemoryStore) refSet() map[string]struct{} {
	refs := make(map[string]struct{}, len(s.records))
	for ref := range s.records {
		refs[ref] = struct{}{}
	}
	return refs
}
