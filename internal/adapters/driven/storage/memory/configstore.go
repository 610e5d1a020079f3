package memory

import (
	"sync"

	"github.com/custodia-labs/simple-utils/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// memoryPath is reported by Path so settings output shows that nothing is
// written to disk.
const memoryPath = ":memory:"

// ConfigStore keeps settings in a map for the lifetime of the process.
// The CLI falls back to it when ~/.simpleutils cannot be used, so changes
// made with "settings" apply to the current run only.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore returns an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// Get returns the raw value stored under key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns key as a string, or "" for a missing or non-string value.
func (s *ConfigStore) GetString(key string) string {
	return valueAs[string](s, key)
}

// GetBool returns key as a bool, or false for a missing or non-bool value.
func (s *ConfigStore) GetBool(key string) bool {
	return valueAs[bool](s, key)
}

// GetInt accepts the same integer types the TOML store produces.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

// GetFloat widens integers, so a temperature set as 1 reads as 1.0.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// Set replaces the value under key.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// Save is a no-op; values live only in memory.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op; there is nothing to read back.
func (s *ConfigStore) Load() error { return nil }

// Path returns ":memory:".
func (s *ConfigStore) Path() string { return memoryPath }

// valueAs returns the value under key when it has type T, else T's zero value.
func valueAs[T any](s *ConfigStore, key string) T {
	val, _ := s.Get(key)
	v, _ := val.(T)
	return v
}
