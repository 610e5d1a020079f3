package mcp

import (
	"github.com/custodia-labs/simple-utils/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Utility provides the string and temperature helpers.
	Utility driving.UtilityService

	// Explain explains code and exposes explanation history.
	Explain driving.ExplainService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Utility == nil {
		return ErrMissingUtilityService
	}
	// Explain is optional; its tool and resources are only registered when set.
	return nil
}

func (p *Ports) explainAvailable() bool {
	return p.Explain != nil && p.Explain.Available()
}
