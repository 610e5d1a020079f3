// Package result provides the scrollable explanation panel for the TUI.
package result

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

const emptyHint = "Your explanation will appear here"

// Panel renders an explanation's three sections in a scrollable viewport.
type Panel struct {
	styles      *styles.Styles
	viewport    viewport.Model
	explanation *domain.Explanation
	width       int
}

// NewPanel creates an empty result panel.
func NewPanel(s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	p := &Panel{
		styles:   s,
		viewport: viewport.New(78, 10),
		width:    80,
	}
	p.refresh()
	return p
}

// Update forwards scroll messages to the viewport.
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the panel.
func (p *Panel) View() string {
	return p.styles.Panel.Render(p.viewport.View())
}

// SetExplanation shows exp, or the empty hint when exp is nil.
func (p *Panel) SetExplanation(exp *domain.Explanation) {
	p.explanation = exp
	p.refresh()
	p.viewport.GotoTop()
}

// Explanation returns the explanation being shown.
func (p *Panel) Explanation() *domain.Explanation {
	return p.explanation
}

// SetSize sets the outer dimensions of the panel.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	// Border and padding take two columns each side and one row top and bottom.
	p.viewport.Width = max(width-4, 10)
	p.viewport.Height = max(height-2, 3)
	p.refresh()
}

// ScrollUp scrolls the content up by half a page.
func (p *Panel) ScrollUp() {
	p.viewport.HalfViewUp()
}

// ScrollDown scrolls the content down by half a page.
func (p *Panel) ScrollDown() {
	p.viewport.HalfViewDown()
}

func (p *Panel) refresh() {
	p.viewport.SetContent(p.render())
}

func (p *Panel) render() string {
	if p.explanation == nil {
		return p.styles.Muted.Render(emptyHint)
	}

	wrap := lipgloss.NewStyle().Width(p.viewport.Width)
	parts := make([]string, 0, 3)
	for i, section := range p.explanation.Sections() {
		parts = append(parts,
			p.styles.SectionTitle(i).Render(section.Title)+"\n"+
				wrap.Render(p.styles.Normal.Render(section.Body)))
	}
	return strings.Join(parts, "\n\n")
}
