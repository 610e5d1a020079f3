// Package history provides the past explanations view for the TUI.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/simple-utils/internal/core/domain"
	"github.com/custodia-labs/simple-utils/internal/core/ports/driving"
)

// Limit is the number of past explanations loaded.
const Limit = 50

// View lists past explanations, newest first.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	explainService driving.ExplainService
	ctx            context.Context

	entries  []domain.Explanation
	selected int
	loading  bool
	err      error

	width  int
	height int
}

// NewView creates a new history view.
func NewView(s *styles.Styles, km *keymap.KeyMap, explainService driving.ExplainService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	bar := status.NewBar(s, km)
	bar.SetState(status.StateHistory)

	return &View{
		styles:         s,
		keymap:         km,
		statusbar:      bar,
		explainService: explainService,
		ctx:            context.Background(),
		width:          80,
		height:         24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Load returns a command fetching the history.
func (v *View) Load() tea.Cmd {
	v.loading = true
	return func() tea.Msg {
		if v.explainService == nil {
			return messages.HistoryLoaded{Err: domain.ErrHistoryUnavailable}
		}
		entries, err := v.explainService.History(v.ctx, Limit)
		return messages.HistoryLoaded{Explanations: entries, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.loading = false
		v.err = msg.Err
		v.entries = msg.Explanations
		v.selected = 0
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewExplain}
		}

	case key.Matches(msg, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}

	case key.Matches(msg, v.keymap.Down):
		if v.selected < len(v.entries)-1 {
			v.selected++
		}

	case key.Matches(msg, v.keymap.Select):
		entry, ok := v.Selected()
		if !ok {
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ExplanationSelected{Explanation: entry}
		}
	}
	return v, nil
}

// View renders the history view.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render("History"),
		v.styles.Tagline.Render("Past explanations, newest first"),
		"",
	}

	switch {
	case v.loading:
		sections = append(sections, v.styles.Muted.Render("Loading..."))
	case errors.Is(v.err, domain.ErrHistoryUnavailable):
		sections = append(sections, v.styles.Muted.Render("History is disabled"))
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case len(v.entries) == 0:
		sections = append(sections, v.styles.Muted.Render("No explanations yet"))
	default:
		sections = append(sections, v.renderEntries())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderEntries() string {
	lines := make([]string, 0, len(v.entries))
	for i := range v.entries {
		e := &v.entries[i]
		line := fmt.Sprintf("%s  %-10s  %s",
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Language.String(),
			truncate(firstLine(e.Code), max(v.width-34, 10)),
		)
		if i == v.selected {
			lines = append(lines, v.styles.Selected.Render("> "+line))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusbar.SetWidth(width)
}

// Selected returns the highlighted entry.
func (v *View) Selected() (domain.Explanation, bool) {
	if v.selected < 0 || v.selected >= len(v.entries) {
		return domain.Explanation{}, false
	}
	return v.entries[v.selected], true
}

// Entries returns the loaded entries.
func (v *View) Entries() []domain.Explanation {
	return v.entries
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
