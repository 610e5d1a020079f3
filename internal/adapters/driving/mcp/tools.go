package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

// TextInput is the input schema for the text tools.
type TextInput struct {
	Text string `json:"text" jsonschema:"the text to process"`
}

// ReverseOutput is the output schema for the reverse_string tool.
type ReverseOutput struct {
	Result string `json:"result"`
}

// CountWordsOutput is the output schema for the count_words tool.
type CountWordsOutput struct {
	Count int `json:"count"`
}

// CelsiusInput is the input schema for the celsius_to_fahrenheit tool.
type CelsiusInput struct {
	Celsius float64 `json:"celsius" jsonschema:"temperature in degrees Celsius"`
}

// TemperatureOutput is the output schema for the celsius_to_fahrenheit tool.
type TemperatureOutput struct {
	Celsius    float64 `json:"celsius"`
	Fahrenheit float64 `json:"fahrenheit"`
}

// ExplainInput is the input schema for the explain_code tool.
type ExplainInput struct {
	Code     string `json:"code" jsonschema:"the source code to explain"`
	Language string `json:"language,omitempty" jsonschema:"JavaScript, Python, Java or Other (default JavaScript)"`
}

// ExplainOutput is the output schema for the explain_code tool.
type ExplainOutput struct {
	ID                string `json:"id"`
	Language          string `json:"language"`
	SimpleExplanation string `json:"simpleExplanation"`
	WhatItDoes        string `json:"whatItDoes"`
	RealWorldAnalogy  string `json:"realWorldAnalogy"`
	Model             string `json:"model,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reverse_string",
		Description: "Reverse the order of characters in a string",
	}, s.handleReverse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "count_words",
		Description: "Count whitespace-separated words in a string",
	}, s.handleCountWords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "celsius_to_fahrenheit",
		Description: "Convert a temperature from Celsius to Fahrenheit",
	}, s.handleCelsiusToFahrenheit)

	if s.ports.explainAvailable() {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "explain_code",
			Description: "Explain a piece of code in beginner-friendly terms",
		}, s.handleExplain)
	}
}

// handleReverse handles the reverse_string tool invocation.
func (s *Server) handleReverse(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input TextInput,
) (*mcp.CallToolResult, ReverseOutput, error) {
	return nil, ReverseOutput{Result: s.ports.Utility.Reverse(input.Text)}, nil
}

// handleCountWords handles the count_words tool invocation.
func (s *Server) handleCountWords(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input TextInput,
) (*mcp.CallToolResult, CountWordsOutput, error) {
	return nil, CountWordsOutput{Count: s.ports.Utility.CountWords(input.Text)}, nil
}

// handleCelsiusToFahrenheit handles the celsius_to_fahrenheit tool invocation.
func (s *Server) handleCelsiusToFahrenheit(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CelsiusInput,
) (*mcp.CallToolResult, TemperatureOutput, error) {
	return nil, TemperatureOutput{
		Celsius:    input.Celsius,
		Fahrenheit: s.ports.Utility.CelsiusToFahrenheit(input.Celsius),
	}, nil
}

// handleExplain handles the explain_code tool invocation.
func (s *Server) handleExplain(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExplainInput,
) (*mcp.CallToolResult, ExplainOutput, error) {
	if s.ports.Explain == nil {
		return nil, ExplainOutput{}, domain.ErrLLMUnavailable
	}

	lang, err := domain.ParseLanguage(input.Language)
	if err != nil {
		return nil, ExplainOutput{}, err
	}

	exp, err := s.ports.Explain.Explain(ctx, domain.ExplainRequest{
		Code:     input.Code,
		Language: lang,
	})
	if err != nil {
		return nil, ExplainOutput{}, fmt.Errorf("explaining code: %w", err)
	}

	return nil, toExplainOutput(exp), nil
}

func toExplainOutput(exp *domain.Explanation) ExplainOutput {
	return ExplainOutput{
		ID:                exp.ID,
		Language:          exp.Language.String(),
		SimpleExplanation: exp.SimpleExplanation,
		WhatItDoes:        exp.WhatItDoes,
		RealWorldAnalogy:  exp.RealWorldAnalogy,
		Model:             exp.Model,
	}
}
