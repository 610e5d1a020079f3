package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingUtilityService)
	})

	t.Run("nil utility service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingUtilityService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Utility: &mockUtilityService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil utility service returns error", func(t *testing.T) {
		ports := &Ports{Explain: &mockExplainService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingUtilityService)
	})

	t.Run("utility only is valid", func(t *testing.T) {
		ports := &Ports{Utility: &mockUtilityService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Utility: &mockUtilityService{},
			Explain: &mockExplainService{available: true},
		}
		assert.NoError(t, ports.Validate())
	})
}

// listToolNames connects an in-memory client to the server and lists its tools.
func listToolNames(t *testing.T, s *Server) []string {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := s.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer clientSession.Close()

	result, err := clientSession.ListTools(ctx, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	return names
}

func TestServer_RegisteredTools(t *testing.T) {
	utilityTools := []string{"reverse_string", "count_words", "celsius_to_fahrenheit"}

	t.Run("without explain service", func(t *testing.T) {
		server, err := NewServer(&Ports{Utility: &mockUtilityService{}})
		require.NoError(t, err)

		names := listToolNames(t, server)
		assert.ElementsMatch(t, utilityTools, names)
	})

	t.Run("explain service without llm", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Utility: &mockUtilityService{},
			Explain: &mockExplainService{available: false},
		})
		require.NoError(t, err)

		names := listToolNames(t, server)
		assert.NotContains(t, names, "explain_code")
	})

	t.Run("explain service with llm", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Utility: &mockUtilityService{},
			Explain: &mockExplainService{available: true},
		})
		require.NoError(t, err)

		names := listToolNames(t, server)
		assert.ElementsMatch(t, append(utilityTools, "explain_code"), names)
	})
}
