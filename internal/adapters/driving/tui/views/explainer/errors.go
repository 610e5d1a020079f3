package explainer

import "errors"

// Error definitions for the explainer view.
var (
	// ErrNoExplainService indicates that no explain service was provided.
	ErrNoExplainService = errors.New("explain service is required")

	// ErrEmptyCode is shown when explain is pressed with an empty editor.
	ErrEmptyCode = errors.New("please paste some code first")
)
