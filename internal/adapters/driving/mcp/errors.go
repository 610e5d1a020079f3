// Package mcp provides an MCP (Model Context Protocol) server adapter for simpleutils.
// It lets AI assistants call the string and temperature helpers and, when an
// LLM is configured, the code explainer.
package mcp

import "errors"

// ErrMissingUtilityService is returned when the utility service is not provided.
var ErrMissingUtilityService = errors.New("mcp: utility service is required")
