// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the code explainer.
type Theme struct {
	// Accent highlights the title and the selected language.
	Accent lipgloss.Color

	// Simple colours the simple explanation heading.
	Simple lipgloss.Color

	// Detail colours the step-by-step heading.
	Detail lipgloss.Color

	// Analogy colours the analogy heading.
	Analogy lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for hints and placeholders.
	Muted lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the panel border colour.
	Border lipgloss.Color

	// StatusBackground fills the status bar.
	StatusBackground lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:           lipgloss.Color("#2563EB"), // Blue
		Simple:           lipgloss.Color("#3B82F6"), // Light blue
		Detail:           lipgloss.Color("#22C55E"), // Green
		Analogy:          lipgloss.Color("#A855F7"), // Purple
		Foreground:       lipgloss.Color("#E5E7EB"),
		Muted:            lipgloss.Color("#6B7280"),
		Error:            lipgloss.Color("#EF4444"),
		Border:           lipgloss.Color("#374151"),
		StatusBackground: lipgloss.Color("#111827"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for the application header.
	Title lipgloss.Style

	// Tagline style for the line under the title.
	Tagline lipgloss.Style

	// Label style for field labels.
	Label lipgloss.Style

	// Language style for unselected language tabs.
	Language lipgloss.Style

	// LanguageActive style for the selected language tab.
	LanguageActive lipgloss.Style

	// Editor style wraps the code textarea.
	Editor lipgloss.Style

	// Panel style wraps the explanation output.
	Panel lipgloss.Style

	// SectionTitles holds one heading style per explanation section.
	SectionTitles []lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted list items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	heading := lipgloss.NewStyle().Bold(true)

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Tagline: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),

		Language: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		LanguageActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(theme.Accent).
			Padding(0, 1),

		Editor: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		SectionTitles: []lipgloss.Style{
			heading.Foreground(theme.Simple),
			heading.Foreground(theme.Detail),
			heading.Foreground(theme.Analogy),
		},

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(theme.Accent),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.StatusBackground).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// SectionTitle returns the heading style for the i-th explanation section.
func (s *Styles) SectionTitle(i int) lipgloss.Style {
	if i < 0 || i >= len(s.SectionTitles) {
		return s.Label
	}
	return s.SectionTitles[i]
}
