package services

import (
	"github.com/custodia-labs/simple-utils/internal/core/ports/driving"
	"github.com/custodia-labs/simple-utils/internal/logger"
	"github.com/custodia-labs/simple-utils/internal/simpleutils"
)

// Ensure UtilityService implements the interface.
var _ driving.UtilityService = (*UtilityService)(nil)

// UtilityService exposes the simpleutils helpers through a driving port.
type UtilityService struct{}

// NewUtilityService creates a new utility service.
func NewUtilityService() *UtilityService {
	return &UtilityService{}
}

// Reverse returns text with its characters in reverse order.
func (s *UtilityService) Reverse(text string) string {
	result := simpleutils.Reverse(text)
	logger.Debug("reverse: %d bytes", len(text))
	return result
}

// CountWords returns the number of whitespace-delimited tokens in text.
func (s *UtilityService) CountWords(text string) int {
	count := simpleutils.CountWords(text)
	logger.Debug("count words: %d tokens in %d bytes", count, len(text))
	return count
}

// CelsiusToFahrenheit converts degrees Celsius to degrees Fahrenheit.
func (s *UtilityService) CelsiusToFahrenheit(celsius float64) float64 {
	fahrenheit := simpleutils.CelsiusToFahrenheit(celsius)
	logger.Debug("celsius to fahrenheit: %g -> %g", celsius, fahrenheit)
	return fahrenheit
}
