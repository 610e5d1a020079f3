package tui

import "errors"

// ErrMissingExplainService is returned when the explain service is not provided.
var ErrMissingExplainService = errors.New("tui: explain service is required")
