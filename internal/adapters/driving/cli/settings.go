package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

var (
	settingsTemperature float64
	settingsCacheSize   int
	settingsHistory     bool
	settingsPort        int
	settingsRate        float64
	settingsBurst       int
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, explainer behaviour and API server.

Settings are stored in ~/.simpleutils/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Interactively choose the LLM provider, model and API key used to explain code.`,
	RunE:  runSettingsLLM,
}

var settingsExplainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Configure the code explainer",
	Example: `  simpleutils settings explain --temperature 0.3
  simpleutils settings explain --cache-size 0 --history=false`,
	RunE: runSettingsExplain,
}

var settingsServerCmd = &cobra.Command{
	Use:     "server",
	Short:   "Configure the HTTP API server",
	Example: `  simpleutils settings server --port 9090 --rate 2 --burst 10`,
	RunE:    runSettingsServer,
}

func init() {
	settingsExplainCmd.Flags().Float64Var(&settingsTemperature, "temperature", 0.7, "LLM sampling temperature (0-2)")
	settingsExplainCmd.Flags().IntVar(&settingsCacheSize, "cache-size", 128, "explanations kept in memory (0 disables)")
	settingsExplainCmd.Flags().BoolVar(&settingsHistory, "history", true, "save explanations to history")

	settingsServerCmd.Flags().IntVarP(&settingsPort, "port", "p", 8080, "port the API listens on")
	settingsServerCmd.Flags().Float64Var(&settingsRate, "rate", 1, "explain requests per second (0 = unlimited)")
	settingsServerCmd.Flags().IntVar(&settingsBurst, "burst", 5, "maximum burst of explain requests")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsExplainCmd)
	settingsCmd.AddCommand(settingsServerCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.Provider.IsLocal() || settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set, or set %s)\n", settings.LLM.Provider.APIKeyEnv())
		}
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Explain]")
	cmd.Printf("  Temperature: %s\n", formatFloat(settings.Explain.Temperature))
	if settings.Explain.CacheSize > 0 {
		cmd.Printf("  Cache size: %d\n", settings.Explain.CacheSize)
	} else {
		cmd.Println("  Cache size: disabled")
	}
	cmd.Printf("  History: %s\n", yesNo(settings.Explain.History))
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Port: %d\n", settings.Server.Port)
	if settings.Server.ExplainRate > 0 {
		cmd.Printf("  Explain rate: %s/s (burst %d)\n",
			formatFloat(settings.Server.ExplainRate), settings.Server.ExplainBurst)
	} else {
		cmd.Println("  Explain rate: unlimited")
	}
	cmd.Println()

	if !settings.LLM.IsConfigured() {
		cmd.Println("Run 'simpleutils settings llm' to enable code explanations.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureLLMProvider(cmd, reader)
}

func runSettingsExplain(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("temperature") && !flags.Changed("cache-size") && !flags.Changed("history") {
		return errors.New("nothing to change: use --temperature, --cache-size or --history")
	}
	if flags.Changed("temperature") {
		if settingsTemperature < 0 || settingsTemperature > 2 {
			return fmt.Errorf("%w: temperature must be between 0 and 2", domain.ErrInvalidInput)
		}
		settings.Explain.Temperature = settingsTemperature
	}
	if flags.Changed("cache-size") {
		if settingsCacheSize < 0 {
			return fmt.Errorf("%w: cache size must not be negative", domain.ErrInvalidInput)
		}
		settings.Explain.CacheSize = settingsCacheSize
	}
	if flags.Changed("history") {
		settings.Explain.History = settingsHistory
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Explain settings saved.")
	return nil
}

func runSettingsServer(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("port") && !flags.Changed("rate") && !flags.Changed("burst") {
		return errors.New("nothing to change: use --port, --rate or --burst")
	}
	if flags.Changed("port") {
		if settingsPort < 1 || settingsPort > 65535 {
			return fmt.Errorf("%w: port must be between 1 and 65535", domain.ErrInvalidInput)
		}
		settings.Server.Port = settingsPort
	}
	if flags.Changed("rate") {
		if settingsRate < 0 {
			return fmt.Errorf("%w: rate must not be negative", domain.ErrInvalidInput)
		}
		settings.Server.ExplainRate = settingsRate
	}
	if flags.Changed("burst") {
		if settingsBurst < 1 {
			return fmt.Errorf("%w: burst must be at least 1", domain.ErrInvalidInput)
		}
		settings.Server.ExplainBurst = settingsBurst
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Server settings saved.")
	return nil
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Printf("Enter API key (blank to use %s): ", selectedProvider.APIKeyEnv())
		apiKey = readPassword(reader)
		cmd.Println()
		if apiKey == "" && os.Getenv(selectedProvider.APIKeyEnv()) == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when stdin is a terminal and falls back
// to a plain line from reader otherwise.
func readPassword(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
