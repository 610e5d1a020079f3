package driving

import (
	"context"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

// ExplainService produces beginner-friendly explanations of source code
// and keeps a history of past explanations.
type ExplainService interface {
	// Explain asks the configured LLM to explain the request's code.
	// Returns domain.ErrCodeRequired for blank code and
	// domain.ErrLLMUnavailable when no LLM is configured.
	Explain(ctx context.Context, req domain.ExplainRequest) (*domain.Explanation, error)

	// History returns up to limit past explanations, newest first.
	// A limit of zero or less returns all of them.
	History(ctx context.Context, limit int) ([]domain.Explanation, error)

	// Get retrieves a past explanation by ID.
	Get(ctx context.Context, id string) (*domain.Explanation, error)

	// ClearHistory deletes all past explanations.
	ClearHistory(ctx context.Context) error

	// Available reports whether an LLM is configured.
	Available() bool
}
