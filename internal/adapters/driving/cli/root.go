// Package cli provides the simpleutils command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/simple-utils/internal/core/ports/driving"
	"github.com/custodia-labs/simple-utils/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// PromptWatcher reloads prompt templates when they change on disk.
type PromptWatcher interface {
	Watch(ctx context.Context) error
}

// Services holds the driving ports used by the commands.
type Services struct {
	Utility  driving.UtilityService
	Explain  driving.ExplainService
	Settings driving.SettingsService
	Prompts  PromptWatcher

	// Warnings are start-up problems reported in verbose mode.
	Warnings []string
}

var (
	utilityService  driving.UtilityService
	explainService  driving.ExplainService
	settingsService driving.SettingsService
	promptWatcher   PromptWatcher
	startupWarnings []string

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "simpleutils",
	Short: "Small text and temperature utilities with an LLM code explainer",
	Long: `simpleutils reverses strings, counts words and converts Celsius to
Fahrenheit. With an LLM provider configured it also explains code in
beginner-friendly terms, from the command line, an HTTP API, an MCP server
or an interactive terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		for _, w := range startupWarnings {
			logger.Debug("%s", w)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	utilityService = s.Utility
	explainService = s.Explain
	settingsService = s.Settings
	promptWatcher = s.Prompts
	startupWarnings = s.Warnings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command, printing any error to stderr.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// watchPrompts reloads prompts in the background until ctx is done.
func watchPrompts(ctx context.Context) {
	if promptWatcher == nil {
		return
	}
	go func() {
		if err := promptWatcher.Watch(ctx); err != nil {
			logger.Warn("prompt watcher stopped: %v", err)
		}
	}()
}
