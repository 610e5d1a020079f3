package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

// MockExplainService implements driving.ExplainService for testing.
type MockExplainService struct {
	history []domain.Explanation
}

func (m *MockExplainService) Explain(_ context.Context, req domain.ExplainRequest) (*domain.Explanation, error) {
	return &domain.Explanation{
		ID:                "new",
		Language:          req.Language,
		Code:              req.Code,
		SimpleExplanation: "simple",
		WhatItDoes:        "does",
		RealWorldAnalogy:  "analogy",
	}, nil
}

func (m *MockExplainService) History(_ context.Context, _ int) ([]domain.Explanation, error) {
	return m.history, nil
}

func (m *MockExplainService) Get(_ context.Context, _ string) (*domain.Explanation, error) {
	return nil, domain.ErrNotFound
}

func (m *MockExplainService) ClearHistory(_ context.Context) error {
	return nil
}

func (m *MockExplainService) Available() bool {
	return true
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(&Ports{Explain: &MockExplainService{
		history: []domain.Explanation{{
			ID:                "old",
			Language:          domain.LanguageJava,
			Code:              "class Old {}",
			SimpleExplanation: "an old class",
			WhatItDoes:        "nothing",
			RealWorldAnalogy:  "an empty box",
			CreatedAt:         time.Now(),
		}},
	}})
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(&Ports{Explain: &MockExplainService{}})

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewExplain, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingExplainService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t)
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_WithCode(t *testing.T) {
	app := newTestApp(t)

	app.WithCode("def f(): pass", domain.LanguagePython)

	assert.Equal(t, "def f(): pass", app.Explainer().Code())
	assert.Equal(t, domain.LanguagePython, app.Explainer().Language())
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Explain: &MockExplainService{}})
	require.NoError(t, err)

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.True(t, app.Ready())
	assert.True(t, app.Explainer().Ready())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_ExplainFlow(t *testing.T) {
	app := newTestApp(t)
	app.Explainer().SetCode("console.log(1)")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, app.Explainer().Explaining())

	// Deliver the completion the batched command would produce.
	exp, err := app.ports.Explain.Explain(context.Background(), domain.ExplainRequest{
		Code: "console.log(1)", Language: domain.LanguageJavaScript,
	})
	require.NoError(t, err)
	app.Update(messages.ExplainCompleted{Explanation: exp})

	assert.False(t, app.Explainer().Explaining())
	assert.Contains(t, app.View(), "analogy")
}

func TestApp_HistoryFlow(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewHistory})
	assert.Equal(t, messages.ViewHistory, app.CurrentView())
	require.NotNil(t, cmd)

	app.Update(cmd())
	assert.Len(t, app.History().Entries(), 1)
	assert.Contains(t, app.View(), "class Old {}")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewExplain, app.CurrentView())
	assert.Equal(t, "class Old {}", app.Explainer().Code())
	assert.Equal(t, domain.LanguageJava, app.Explainer().Language())
	assert.Contains(t, app.View(), "an empty box")
}

func TestApp_HistoryBack(t *testing.T) {
	app := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewHistory})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewExplain, app.CurrentView())
}
