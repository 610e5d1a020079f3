package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Code explanation is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrLLMAuth indicates the LLM provider rejected the API key.
	ErrLLMAuth = errors.New("LLM authentication failed")

	// ErrHistoryUnavailable indicates no explanation history store is configured.
	ErrHistoryUnavailable = errors.New("explanation history unavailable")

	// Explanation Errors.

	// ErrCodeRequired indicates an explain request carried no code.
	ErrCodeRequired = errors.New("code is required")

	// ErrEmptyResponse indicates the LLM returned no content.
	ErrEmptyResponse = errors.New("no response from LLM")

	// ErrExplanationParse indicates the LLM response was not valid JSON.
	ErrExplanationParse = errors.New("failed to parse explanation response")

	// ErrInvalidExplanation indicates the LLM response is missing required fields.
	ErrInvalidExplanation = errors.New("invalid explanation format")

	// ErrRateLimited indicates too many explain requests were made.
	ErrRateLimited = errors.New("rate limited")
)
