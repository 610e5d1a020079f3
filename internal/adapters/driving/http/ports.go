package http

import (
	"errors"

	"github.com/custodia-labs/simple-utils/internal/core/ports/driving"
)

// ErrMissingUtilityService is returned when the utility service is not provided.
var ErrMissingUtilityService = errors.New("http: utility service is required")

// Ports aggregates the driving ports served by the HTTP API.
type Ports struct {
	// Utility provides the string and temperature helpers.
	Utility driving.UtilityService

	// Explain explains code. Optional; /api/explain answers 500 without it.
	Explain driving.ExplainService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Utility == nil {
		return ErrMissingUtilityService
	}
	return nil
}
