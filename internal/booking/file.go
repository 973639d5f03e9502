package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists booking records as a single JSON object keyed by
// booking reference. The whole map is rewritten on every mutation,
// which keeps the on-disk file human-readable and trivially restorable.
type FileStore struct {
	mu      sync.Mutex
	path    string
	records map[string]Record
}

// NewFileStore loads (or creates) the bookings file at path.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create bookings dir: %w", err)
		}
	}
	s := &FileStore{path: path, records: make(map[string]Record)}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read bookings file: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.records); err != nil {
			return nil, fmt.Errorf("parse bookings file %s: %w", path, err)
		}
	}
	return s, nil
}

func (s *FileStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Reference] = rec
	return s.persist()
}

func (s *FileStore) Get(_ context.Context, refOrFragment string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := resolve(refOrFragment, s.refSet())
	if !ok {
		return Record{}, ErrNotFound
	}
	return s.records[ref], nil
}

func (s *FileStore) Delete(_ context.Context, refOrFragment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := resolve(refOrFragment, s.refSet())
	if !ok {
		return ErrNotFound
	}
	delete(s.records, ref)
	return s.persist()
}

func (s *FileStore) List(_ context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out, nil
}

func (s *FileStore) Close() error { return nil }

// persist writes the map through a temp file and rename so a crash
// mid-write never truncates the bookings file. Caller holds the lock.
func (s *FileStore) persist() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write bookings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace bookings file: %w", err)
	}
	return nil
}

func (s *FileStore) refSet() map[string]struct{} {
	refs := make(map[string]struct{}, len(s.records))
	for ref := range s.records {
		refs[ref] = struct{}{}
	}
	return refs
}
