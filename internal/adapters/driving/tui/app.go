package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/views/explainer"
	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// explainerView is the editor and explanation view.
	explainerView *explainer.View

	// historyView lists past explanations.
	historyView *history.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		explainerView: explainer.NewView(s, km, ports.Explain, ports.Utility),
		historyView:   history.NewView(s, km, ports.Explain),
		currentView:   messages.ViewExplain,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.explainerView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// WithCode pre-fills the editor.
func (a *App) WithCode(code string, lang domain.Language) *App {
	a.explainerView.SetCode(code)
	a.explainerView.SetLanguage(lang)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("simpleutils - Code Explainer"),
		a.explainerView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHistory {
			a.historyView, cmd = a.historyView.Update(msg)
			return a, cmd
		}
		a.explainerView, cmd = a.explainerView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewHistory {
			return a, a.historyView.Load()
		}
		return a, nil

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.ExplanationSelected:
		a.currentView = messages.ViewExplain
		a.explainerView, cmd = a.explainerView.Update(msg)
		return a, cmd

	case messages.ExplainCompleted, messages.LanguageChanged, messages.ErrorOccurred, spinner.TickMsg:
		a.explainerView, cmd = a.explainerView.Update(msg)
		return a, cmd
	}

	// Cursor blink and mouse events belong to the explainer.
	if a.currentView == messages.ViewExplain {
		a.explainerView, cmd = a.explainerView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewHistory:
		return a.historyView.View()
	default:
		return a.explainerView.View()
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Explainer returns the explainer view.
func (a *App) Explainer() *explainer.View {
	return a.explainerView
}

// History returns the history view.
func (a *App) History() *history.View {
	return a.historyView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.explainerView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
}
