package driven

import (
	"context"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

// ExplanationStore persists explanation history.
type ExplanationStore interface {
	// Save stores an explanation, replacing any with the same ID.
	Save(ctx context.Context, explanation domain.Explanation) error

	// Get retrieves an explanation by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Explanation, error)

	// List returns up to limit explanations, newest first.
	// A limit of zero or less returns all explanations.
	List(ctx context.Context, limit int) ([]domain.Explanation, error)

	// Clear deletes all explanations.
	Clear(ctx context.Context) error
}
