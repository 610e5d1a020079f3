package driven

import "github.com/custodia-labs/simple-utils/internal/core/domain"

// ExplanationCache keeps recent explanations in memory so repeated requests
// for the same code skip the LLM round trip.
type ExplanationCache interface {
	// Get returns the cached explanation for key.
	Get(key string) (domain.Explanation, bool)

	// Add stores an explanation under key, evicting older entries as needed.
	Add(key string, explanation domain.Explanation)

	// Len returns the number of cached explanations.
	Len() int

	// Purge removes all cached explanations.
	Purge()
}
