// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewExplain is the code editor and explanation view.
	ViewExplain ViewType = iota
	// ViewHistory lists past explanations.
	ViewHistory
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewExplain:
		return "explain"
	case ViewHistory:
		return "history"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// LanguageChanged is sent when the selected language changes.
type LanguageChanged struct {
	Language domain.Language
}

// ExplainCompleted carries an explanation back to the model.
type ExplainCompleted struct {
	Explanation *domain.Explanation
	Err         error
}

// HistoryLoaded carries past explanations, newest first.
type HistoryLoaded struct {
	Explanations []domain.Explanation
	Err          error
}

// ExplanationSelected is sent when a past explanation is opened.
type ExplanationSelected struct {
	Explanation domain.Explanation
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
