// Package lru provides an in-memory explanation cache with least-recently-used eviction.
package lru

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
	"github.com/custodia-labs/simple-utils/internal/core/ports/driven"
)

// Ensure ExplanationCache implements the interface.
var _ driven.ExplanationCache = (*ExplanationCache)(nil)

// ExplanationCache is a fixed-size, thread-safe driven.ExplanationCache.
type ExplanationCache struct {
	cache *lru.Cache[string, domain.Explanation]
}

// NewExplanationCache creates a cache holding at most size explanations.
// A size of zero or less returns nil, which callers treat as "no cache".
func NewExplanationCache(size int) (*ExplanationCache, error) {
	if size <= 0 {
		return nil, nil
	}
	cache, err := lru.New[string, domain.Explanation](size)
	if err != nil {
		return nil, fmt.Errorf("create explanation cache: %w", err)
	}
	return &ExplanationCache{cache: cache}, nil
}

// Get returns the cached explanation for key and marks it recently used.
func (c *ExplanationCache) Get(key string) (domain.Explanation, bool) {
	return c.cache.Get(key)
}

// Add stores an explanation, evicting the least recently used entry when full.
func (c *ExplanationCache) Add(key string, explanation domain.Explanation) {
	c.cache.Add(key, explanation)
}

// Len returns the number of cached explanations.
func (c *ExplanationCache) Len() int {
	return c.cache.Len()
}

// Purge removes all cached explanations.
func (c *ExplanationCache) Purge() {
	c.cache.Purge()
}
