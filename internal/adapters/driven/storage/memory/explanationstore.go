package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
	"github.com/custodia-labs/simple-utils/internal/core/ports/driven"
)

// Ensure ExplanationStore implements the interface.
var _ driven.ExplanationStore = (*ExplanationStore)(nil)

// ExplanationStore is an in-memory implementation of driven.ExplanationStore.
type ExplanationStore struct {
	mu           sync.RWMutex
	explanations map[string]domain.Explanation
}

// NewExplanationStore creates a new in-memory explanation store.
func NewExplanationStore() *ExplanationStore {
	return &ExplanationStore{
		explanations: make(map[string]domain.Explanation),
	}
}

// Save stores or replaces an explanation.
func (s *ExplanationStore) Save(_ context.Context, exp domain.Explanation) error {
	if exp.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.explanations[exp.ID] = exp
	return nil
}

// Get retrieves an explanation by ID.
func (s *ExplanationStore) Get(_ context.Context, id string) (*domain.Explanation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exp, ok := s.explanations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &exp, nil
}

// List returns up to limit explanations, newest first. A limit <= 0 returns all.
func (s *ExplanationStore) List(_ context.Context, limit int) ([]domain.Explanation, error) {
	s.mu.RLock()
	result := make([]domain.Explanation, 0, len(s.explanations))
	for _, exp := range s.explanations {
		result = append(result, exp)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Clear removes every stored explanation.
func (s *ExplanationStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.explanations = make(map[string]domain.Explanation)
	return nil
}
