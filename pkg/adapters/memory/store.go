package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
)

// Store implements ports.DefinitionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*definition.Definition
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*definition.Definition),
	}
}

// Save stores a copy of def.
func (s *Store) Save(ctx context.Context, name string, def *definition.Definition) error {
	copied := def.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load returns a copy so callers can't mutate the stored definition.
func (s *Store) Load(ctx context.Context, name string) (*definition.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.data[name]
	if !ok {
		return nil, domain.ErrDefinitionNotFound
	}
	return def.Clone(), nil
}

// Delete removes the definition.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
