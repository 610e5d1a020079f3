// Package explainer provides the code editor and explanation view for the TUI.
package explainer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/components/result"
	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/simple-utils/internal/core/domain"
	"github.com/custodia-labs/simple-utils/internal/core/ports/driving"
)

// View is the explainer: language selector, code editor, result panel and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	editor    textarea.Model
	spinner   spinner.Model
	panel     *result.Panel
	statusbar *status.Bar

	explainService driving.ExplainService
	utilityService driving.UtilityService
	ctx            context.Context

	languages  []domain.Language
	langIndex  int
	explaining bool
	err        error

	width  int
	height int
	ready  bool
}

// NewView creates a new explainer view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	explainService driving.ExplainService,
	utilityService driving.UtilityService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	editor := textarea.New()
	editor.Placeholder = "Paste your code here..."
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return &View{
		styles:         s,
		keymap:         km,
		editor:         editor,
		spinner:        sp,
		panel:          result.NewPanel(s),
		statusbar:      status.NewBar(s, km),
		explainService: explainService,
		utilityService: utilityService,
		ctx:            context.Background(),
		languages:      domain.AllLanguages(),
		width:          80,
		height:         24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the explainer view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.explaining {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.ExplainCompleted:
		v.handleExplainCompleted(msg)
		return v, nil

	case messages.ExplanationSelected:
		v.ShowExplanation(msg.Explanation)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		v.panel, cmd = v.panel.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Explain):
		return v, v.startExplain()

	case key.Matches(msg, v.keymap.NextLanguage):
		return v, v.cycleLanguage(1)

	case key.Matches(msg, v.keymap.PrevLanguage):
		return v, v.cycleLanguage(-1)

	case key.Matches(msg, v.keymap.Clear):
		v.Clear()
		return v, nil

	case key.Matches(msg, v.keymap.History):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHistory}
		}

	case key.Matches(msg, v.keymap.ScrollUp):
		v.panel.ScrollUp()
		return v, nil

	case key.Matches(msg, v.keymap.ScrollDown):
		v.panel.ScrollDown()
		return v, nil
	}

	// Editing is locked while a request is in flight.
	if v.explaining {
		return v, nil
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	v.updateWordCount()
	return v, cmd
}

func (v *View) cycleLanguage(step int) tea.Cmd {
	n := len(v.languages)
	v.langIndex = ((v.langIndex+step)%n + n) % n
	lang := v.Language()
	return func() tea.Msg {
		return messages.LanguageChanged{Language: lang}
	}
}

// startExplain validates the editor contents and dispatches the request.
func (v *View) startExplain() tea.Cmd {
	if v.explaining {
		return nil
	}

	code := v.editor.Value()
	if strings.TrimSpace(code) == "" {
		v.setError(ErrEmptyCode)
		return nil
	}

	v.err = nil
	v.explaining = true
	v.panel.SetExplanation(nil)
	v.statusbar.SetState(status.StateExplaining)
	v.statusbar.SetMessage("")

	return tea.Batch(v.spinner.Tick, v.performExplain(code, v.Language()))
}

// performExplain calls the explain service off the UI goroutine.
func (v *View) performExplain(code string, lang domain.Language) tea.Cmd {
	return func() tea.Msg {
		if v.explainService == nil {
			return messages.ExplainCompleted{Err: ErrNoExplainService}
		}
		exp, err := v.explainService.Explain(v.ctx, domain.ExplainRequest{
			Code:     code,
			Language: lang,
		})
		return messages.ExplainCompleted{Explanation: exp, Err: err}
	}
}

// handleExplainCompleted processes an explanation result.
func (v *View) handleExplainCompleted(msg messages.ExplainCompleted) {
	v.explaining = false
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.panel.SetExplanation(msg.Explanation)
	v.statusbar.SetState(status.StateDone)
	if msg.Explanation != nil && msg.Explanation.Model != "" {
		v.statusbar.SetMessage(fmt.Sprintf("Explained with %s", msg.Explanation.Model))
	}
}

// ShowExplanation loads a past explanation into the editor and panel.
func (v *View) ShowExplanation(exp domain.Explanation) {
	v.explaining = false
	v.err = nil
	v.editor.SetValue(exp.Code)
	v.SetLanguage(exp.Language)
	v.panel.SetExplanation(&exp)
	v.statusbar.SetState(status.StateDone)
	v.statusbar.SetMessage("Loaded from history")
	v.updateWordCount()
}

// Clear resets the editor, the result panel and any error.
func (v *View) Clear() {
	if v.explaining {
		return
	}
	v.editor.Reset()
	v.panel.SetExplanation(nil)
	v.err = nil
	v.statusbar.Clear()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) updateWordCount() {
	if v.utilityService == nil {
		return
	}
	v.statusbar.SetWordCount(v.utilityService.CountWords(v.editor.Value()))
}

// View renders the explainer view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	sections = append(sections,
		v.styles.Title.Render("Code Explainer"),
		v.styles.Tagline.Render("Understand your code with clear explanations"),
		"",
		v.renderLanguages(),
		"",
		v.styles.Editor.Render(v.editor.View()),
	)

	if v.explaining {
		sections = append(sections, v.spinner.View()+" "+v.styles.Muted.Render("Explaining..."))
	}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render(v.err.Error()))
	}

	sections = append(sections,
		"",
		v.styles.Label.Render("Explanation"),
		v.panel.View(),
		v.statusbar.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderLanguages() string {
	tabs := make([]string, 0, len(v.languages)+1)
	tabs = append(tabs, v.styles.Label.Render("Language "))
	for i, l := range v.languages {
		if i == v.langIndex {
			tabs = append(tabs, v.styles.LanguageActive.Render(l.String()))
		} else {
			tabs = append(tabs, v.styles.Language.Render(l.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Header, language row, labels and status take about ten rows; the rest
	// is shared between editor and panel.
	body := max(height-10, 8)
	editorHeight := body / 2
	v.editor.SetWidth(max(width-2, 20))
	v.editor.SetHeight(max(editorHeight-2, 3))
	v.panel.SetSize(width, body-editorHeight)
	v.statusbar.SetWidth(width)
}

// Language returns the selected language.
func (v *View) Language() domain.Language {
	return v.languages[v.langIndex]
}

// SetLanguage selects lang if it is supported.
func (v *View) SetLanguage(lang domain.Language) {
	for i, l := range v.languages {
		if l == lang {
			v.langIndex = i
			return
		}
	}
}

// Code returns the editor contents.
func (v *View) Code() string {
	return v.editor.Value()
}

// SetCode replaces the editor contents.
func (v *View) SetCode(code string) {
	v.editor.SetValue(code)
	v.updateWordCount()
}

// Explaining reports whether a request is in flight.
func (v *View) Explaining() bool {
	return v.explaining
}

// Explanation returns the explanation being shown, if any.
func (v *View) Explanation() *domain.Explanation {
	return v.panel.Explanation()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Ready reports whether the view has been sized.
func (v *View) Ready() bool {
	return v.ready
}

// StatusBar returns the view's status bar.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}
