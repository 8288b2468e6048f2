package kb

import (
	"fmt"
	"sort"
	"sync"
)

// MemStore is an in-memory knowledgebase store. Embedders register models
// at startup; tests seed it per case.
type MemStore struct {
	mu     sync.RWMutex
	models map[string]*Model
}

func NewMemStore() *MemStore {
	return &MemStore{models: make(map[string]*Model)}
}

// Add registers a model. Re-adding a name replaces the previous record.
func (s *MemStore) Add(m *Model) error {
	if m.Name == "" {
		return fmt.Errorf("%w: model has no name", ErrMalformed)
	}
	if m.Type == ItemUnknown {
		return fmt.Errorf("%w: model %s has no item type", ErrMalformed, m.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[m.Name] = m.clone()
	return nil
}

func (s *MemStore) Lookup(name string) (*Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return m.clone(), nil
}

func (s *MemStore) Names() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.models))
	for name := range s.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
