// Package tui provides an interactive terminal code explainer for simpleutils.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/simple-utils/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Explain explains code and exposes history.
	Explain driving.ExplainService

	// Utility counts words for the status bar. Optional.
	Utility driving.UtilityService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Explain == nil {
		return ErrMissingExplainService
	}
	return nil
}
