package mcp

import (
	"context"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

// mockUtilityService is a mock implementation of driving.UtilityService.
type mockUtilityService struct {
	reversed   string
	count      int
	fahrenheit float64
}

func (m *mockUtilityService) Reverse(_ string) string {
	return m.reversed
}

func (m *mockUtilityService) CountWords(_ string) int {
	return m.count
}

func (m *mockUtilityService) CelsiusToFahrenheit(_ float64) float64 {
	return m.fahrenheit
}

// mockExplainService is a mock implementation of driving.ExplainService.
type mockExplainService struct {
	explanation *domain.Explanation
	history     []domain.Explanation
	err         error
	available   bool

	lastRequest domain.ExplainRequest
}

func (m *mockExplainService) Explain(_ context.Context, req domain.ExplainRequest) (*domain.Explanation, error) {
	m.lastRequest = req
	return m.explanation, m.err
}

func (m *mockExplainService) History(_ context.Context, _ int) ([]domain.Explanation, error) {
	return m.history, m.err
}

func (m *mockExplainService) Get(_ context.Context, _ string) (*domain.Explanation, error) {
	return m.explanation, m.err
}

func (m *mockExplainService) ClearHistory(_ context.Context) error {
	return m.err
}

func (m *mockExplainService) Available() bool {
	return m.available
}
