package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

const (
	uriScheme = "simpleutils://"

	// historyLimit caps the history resource listing.
	historyLimit = 50
)

// registerResources registers the explanation history resources.
// Nothing is registered without an ExplainService.
func (s *Server) registerResources() {
	if s.ports.Explain == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "explanations",
		Name:        "explanations",
		Description: "Recent code explanations, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "explanations/{explanationId}",
		Name:        "explanation",
		Description: "A single past code explanation",
		MIMEType:    "application/json",
	}, s.handleExplanationResource)
}

// handleHistoryResource returns a summary of recent explanations.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	history, err := s.ports.Explain.History(ctx, historyLimit)
	if errors.Is(err, domain.ErrHistoryUnavailable) {
		return jsonResource(req.Params.URI, "[]"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing explanations: %w", err)
	}

	type historyEntry struct {
		ID        string `json:"id"`
		Language  string `json:"language"`
		Summary   string `json:"summary"`
		CreatedAt string `json:"createdAt"`
	}

	entries := make([]historyEntry, len(history))
	for i := range history {
		entries[i] = historyEntry{
			ID:        history[i].ID,
			Language:  history[i].Language.String(),
			Summary:   history[i].SimpleExplanation,
			CreatedAt: history[i].CreatedAt.Format(time.RFC3339),
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling explanations: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

// handleExplanationResource returns a single explanation by ID.
func (s *Server) handleExplanationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractExplanationID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	exp, err := s.ports.Explain.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrHistoryUnavailable) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting explanation: %w", err)
	}

	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling explanation: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractExplanationID extracts the ID from a URI like simpleutils://explanations/{explanationId}.
func extractExplanationID(uri string) string {
	const prefix = uriScheme + "explanations/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
