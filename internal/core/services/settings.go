package services

import (
	"fmt"
	"os"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
	"github.com/custodia-labs/simple-utils/internal/core/ports/driven"
	"github.com/custodia-labs/simple-utils/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider        = "llm.provider"
	keyLLMModel           = "llm.model"
	keyLLMBaseURL         = "llm.base_url"
	keyLLMAPIKey          = "llm.api_key"
	keyExplainTemperature = "explain.temperature"
	keyExplainCacheSize   = "explain.cache_size"
	keyExplainHistory     = "explain.history"
	keyServerPort         = "server.port"
	keyServerExplainRate  = "server.explain_rate"
	keyServerExplainBurst = "server.explain_burst"
)

// defaultOllamaBaseURL is used when switching to a local provider without a URL.
const defaultOllamaBaseURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
// When no API key is stored, the provider's conventional environment
// variable (e.g. OPENAI_API_KEY) is used.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(keyLLMProvider, defaults.LLM.Provider)
	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: provider,
			Model:    s.getString(keyLLMModel, domain.DefaultLLMModels()[provider]),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Explain: domain.ExplainSettings{
			Temperature: s.getFloat(keyExplainTemperature, defaults.Explain.Temperature),
			CacheSize:   s.getInt(keyExplainCacheSize, defaults.Explain.CacheSize),
			History:     s.getBool(keyExplainHistory, defaults.Explain.History),
		},
		Server: domain.ServerSettings{
			Port:         s.getInt(keyServerPort, defaults.Server.Port),
			ExplainRate:  s.getFloat(keyServerExplainRate, defaults.Server.ExplainRate),
			ExplainBurst: s.getInt(keyServerExplainBurst, defaults.Server.ExplainBurst),
		},
	}

	if settings.LLM.APIKey == "" {
		if env := provider.APIKeyEnv(); env != "" {
			settings.LLM.APIKey = s.getenv(env)
		}
	}

	return settings, nil
}

// Save persists application settings.
// API keys that came from the environment are not written to disk.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	apiKey := settings.LLM.APIKey
	if s.isEnvAPIKey(settings.LLM) {
		apiKey = ""
	}
	if err := s.configStore.Set(keyLLMAPIKey, apiKey); err != nil {
		return fmt.Errorf("save llm api_key: %w", err)
	}

	// Save explain settings
	if err := s.configStore.Set(keyExplainTemperature, settings.Explain.Temperature); err != nil {
		return fmt.Errorf("save explain temperature: %w", err)
	}
	if err := s.configStore.Set(keyExplainCacheSize, settings.Explain.CacheSize); err != nil {
		return fmt.Errorf("save explain cache_size: %w", err)
	}
	if err := s.configStore.Set(keyExplainHistory, settings.Explain.History); err != nil {
		return fmt.Errorf("save explain history: %w", err)
	}

	// Save server settings
	if err := s.configStore.Set(keyServerPort, settings.Server.Port); err != nil {
		return fmt.Errorf("save server port: %w", err)
	}
	if err := s.configStore.Set(keyServerExplainRate, settings.Server.ExplainRate); err != nil {
		return fmt.Errorf("save server explain_rate: %w", err)
	}
	if err := s.configStore.Set(keyServerExplainBurst, settings.Server.ExplainBurst); err != nil {
		return fmt.Errorf("save server explain_burst: %w", err)
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, provider)
	}

	if apiKey == "" && provider.APIKeyEnv() != "" {
		apiKey = s.getenv(provider.APIKeyEnv())
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaBaseURL
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// isEnvAPIKey reports whether the key is the one supplied by the environment.
func (s *SettingsService) isEnvAPIKey(llm domain.LLMSettings) bool {
	env := llm.Provider.APIKeyEnv()
	if env == "" {
		return false
	}
	return llm.APIKey != "" && s.getenv(env) == llm.APIKey
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
