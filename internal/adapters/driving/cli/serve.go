package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpapi "github.com/custodia-labs/simple-utils/internal/adapters/driving/http"
	"github.com/custodia-labs/simple-utils/internal/adapters/driving/mcp"
)

var (
	servePort int
	serveMCP  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the JSON HTTP API.

Endpoints:
  POST /api/explain                 {"code": "...", "language": "Python"}
  POST /api/reverse                 {"text": "..."}
  POST /api/count-words             {"text": "..."}
  GET  /api/celsius-to-fahrenheit   ?celsius=100
  GET  /healthz
  GET  /metrics                     Prometheus metrics

With --mcp the MCP server is also served over streamable HTTP at /mcp.
The port defaults to the server.port setting.`,
	Example: `  simpleutils serve
  simpleutils serve --port 9090 --mcp`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (0 = use settings)")
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "also serve MCP at /mcp")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if utilityService == nil {
		return errors.New("utility service not configured")
	}

	cfg := httpapi.Config{}
	port := servePort
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		cfg.ExplainRate = settings.Server.ExplainRate
		cfg.ExplainBurst = settings.Server.ExplainBurst
		if port == 0 {
			port = settings.Server.Port
		}
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}

	if serveMCP {
		mcpServer, err := mcp.NewServer(&mcp.Ports{Utility: utilityService, Explain: explainService})
		if err != nil {
			return fmt.Errorf("failed to create MCP server: %w", err)
		}
		cfg.MCP = mcpServer.Handler()
	}

	server, err := httpapi.NewServer(&httpapi.Ports{Utility: utilityService, Explain: explainService}, cfg)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	watchPrompts(ctx)

	addr := fmt.Sprintf(":%d", port)
	cmd.Printf("API listening on http://localhost%s\n", addr)
	if explainService == nil || !explainService.Available() {
		cmd.Println("Note: no LLM configured, /api/explain will fail. Run 'simpleutils settings llm'.")
	}
	return server.ListenAndServe(ctx, addr)
}
