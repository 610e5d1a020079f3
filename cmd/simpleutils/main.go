// Command simpleutils reverses strings, counts words, converts temperatures
// and explains code with an LLM.
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/simple-utils/internal/adapters/driven/ai"
	"github.com/custodia-labs/simple-utils/internal/adapters/driven/cache/lru"
	"github.com/custodia-labs/simple-utils/internal/adapters/driven/config/file"
	"github.com/custodia-labs/simple-utils/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/simple-utils/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/simple-utils/internal/adapters/driving/cli"
	"github.com/custodia-labs/simple-utils/internal/core/ports/driven"
	"github.com/custodia-labs/simple-utils/internal/core/services"
	"github.com/custodia-labs/simple-utils/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var warnings []string

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		warnings = append(warnings, "loading .env: "+err.Error())
	}

	var configStore driven.ConfigStore
	if fileStore, err := file.NewConfigStore(""); err != nil {
		warnings = append(warnings, "settings will not be saved: "+err.Error())
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		logger.Error("loading settings: %v", err)
		return 1
	}

	llm := ai.Init(&settings.LLM)
	defer llm.Close()
	warnings = append(warnings, llm.Warnings...)

	var store driven.ExplanationStore
	if settings.Explain.History {
		db, err := sqlite.NewStore("")
		if err != nil {
			warnings = append(warnings, "history kept in memory only: "+err.Error())
			store = memory.NewExplanationStore()
		} else {
			defer db.Close()
			store = db.ExplanationStore()
		}
	}

	var cache driven.ExplanationCache
	if c, err := lru.NewExplanationCache(settings.Explain.CacheSize); err != nil {
		warnings = append(warnings, "cache disabled: "+err.Error())
	} else if c != nil {
		cache = c
	}

	explainService := services.NewExplainService(llm.LLMService, store, cache, services.ExplainConfig{
		Temperature: settings.Explain.Temperature,
		History:     settings.Explain.History,
	})

	svcs := cli.Services{
		Utility:  services.NewUtilityService(),
		Explain:  explainService,
		Settings: settingsService,
	}

	if prompts, err := file.NewPromptStore(""); err != nil {
		warnings = append(warnings, "using built-in prompts: "+err.Error())
	} else {
		explainService.SetPromptStore(prompts)
		svcs.Prompts = prompts
	}

	svcs.Warnings = warnings
	cli.SetServices(svcs)
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
