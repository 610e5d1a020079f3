package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
	"github.com/custodia-labs/simple-utils/internal/core/ports/driven"
	"github.com/custodia-labs/simple-utils/internal/core/ports/driving"
	"github.com/custodia-labs/simple-utils/internal/logger"
)

// Ensure ExplainService implements the interface.
var _ driving.ExplainService = (*ExplainService)(nil)

// ExplainConfig configures the explain service.
type ExplainConfig struct {
	// Temperature is passed to the LLM for every explanation.
	Temperature float64

	// History enables saving explanations to the ExplanationStore.
	History bool
}

// ExplainService explains source code using an LLM.
type ExplainService struct {
	llm         driven.LLMService
	store       driven.ExplanationStore
	cache       driven.ExplanationCache
	promptStore driven.PromptStore
	config      ExplainConfig

	// now and newID are replaceable for tests.
	now   func() time.Time
	newID func() string
}

// NewExplainService creates a new explain service.
// llm, store and cache may each be nil.
func NewExplainService(
	llm driven.LLMService,
	store driven.ExplanationStore,
	cache driven.ExplanationCache,
	config ExplainConfig,
) *ExplainService {
	return &ExplainService{
		llm:    llm,
		store:  store,
		cache:  cache,
		config: config,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (s *ExplainService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Available reports whether an LLM is configured.
func (s *ExplainService) Available() bool {
	return s.llm != nil
}

// Explain asks the LLM for a beginner-friendly explanation of the code.
func (s *ExplainService) Explain(ctx context.Context, req domain.ExplainRequest) (*domain.Explanation, error) {
	if req.Language == "" {
		req.Language = domain.DefaultLanguage
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	logger.Section("Explain")
	systemPrompt := s.loadPrompt(driven.PromptExplainSystem, driven.DefaultExplainSystemPrompt)
	template := s.loadCodePrompt()

	key := cacheKey(req, systemPrompt, template)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			logger.Debug("cache hit for %s code (%d bytes)", req.Language, len(req.Code))
			return &cached, nil
		}
	}

	messages := []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: systemPrompt},
		{Role: driven.RoleUser, Content: fmt.Sprintf(template, req.Language, req.Language.FenceTag(), req.Code)},
	}

	logger.Debug("requesting explanation from %s", s.llm.ModelName())
	start := s.now()
	raw, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		Temperature: s.config.Temperature,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}
	logger.Debug("LLM responded in %s", s.now().Sub(start))

	explanation, err := parseExplanation(raw)
	if err != nil {
		logger.Warn("unusable LLM response: %v", err)
		return nil, err
	}

	explanation.ID = s.newID()
	explanation.Language = req.Language
	explanation.Code = req.Code
	explanation.Model = s.llm.ModelName()
	explanation.CreatedAt = s.now().UTC()

	if s.cache != nil {
		s.cache.Add(key, *explanation)
	}
	if s.config.History && s.store != nil {
		if err := s.store.Save(ctx, *explanation); err != nil {
			logger.Warn("failed to save explanation %s: %v", explanation.ID, err)
		}
	}

	return explanation, nil
}

// History returns past explanations, newest first.
func (s *ExplainService) History(ctx context.Context, limit int) ([]domain.Explanation, error) {
	if s.store == nil {
		return nil, domain.ErrHistoryUnavailable
	}
	return s.store.List(ctx, limit)
}

// Get retrieves a past explanation by ID.
func (s *ExplainService) Get(ctx context.Context, id string) (*domain.Explanation, error) {
	if s.store == nil {
		return nil, domain.ErrHistoryUnavailable
	}
	if id == "" {
		return nil, fmt.Errorf("%w: explanation ID is required", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// ClearHistory deletes all past explanations and empties the cache.
func (s *ExplainService) ClearHistory(ctx context.Context) error {
	if s.store == nil {
		return domain.ErrHistoryUnavailable
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	if s.cache != nil {
		s.cache.Purge()
	}
	return nil
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *ExplainService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// loadCodePrompt loads the explain_code template. A template that does not
// hold exactly three %s verbs is replaced by the default.
func (s *ExplainService) loadCodePrompt() string {
	template := s.loadPrompt(driven.PromptExplainCode, driven.DefaultExplainCodePrompt)
	if !hasStringVerbs(template, 3) {
		logger.Warn("prompt %s must contain exactly three %%s placeholders, using the default", driven.PromptExplainCode)
		return driven.DefaultExplainCodePrompt
	}
	return template
}

// hasStringVerbs reports whether template holds exactly n %s verbs and no
// other verbs. %% is a literal percent sign.
func hasStringVerbs(template string, n int) bool {
	count := 0
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		if i+1 == len(template) {
			return false
		}
		i++
		switch template[i] {
		case '%':
		case 's':
			count++
		default:
			return false
		}
	}
	return count == n
}

// cacheKey identifies a request by language, exact code and the prompts it
// would be sent with, so edited prompts do not serve stale answers.
func cacheKey(req domain.ExplainRequest, prompts ...string) string {
	h := sha256.New()
	h.Write([]byte(string(req.Language) + "\x00" + req.Code))
	for _, p := range prompts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// explanationPayload is the JSON object the LLM is asked to return.
type explanationPayload struct {
	SimpleExplanation string `json:"simpleExplanation"`
	WhatItDoes        string `json:"whatItDoes"`
	RealWorldAnalogy  string `json:"realWorldAnalogy"`
}

// parseExplanation decodes and validates an LLM response.
func parseExplanation(raw string) (*domain.Explanation, error) {
	content := stripCodeFence(strings.TrimSpace(raw))
	if content == "" {
		return nil, domain.ErrEmptyResponse
	}

	var payload explanationPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExplanationParse, err)
	}

	explanation := &domain.Explanation{
		SimpleExplanation: strings.TrimSpace(payload.SimpleExplanation),
		WhatItDoes:        strings.TrimSpace(payload.WhatItDoes),
		RealWorldAnalogy:  strings.TrimSpace(payload.RealWorldAnalogy),
	}
	if err := explanation.Validate(); err != nil {
		return nil, err
	}
	return explanation, nil
}

// stripCodeFence removes a surrounding markdown code fence, if any.
// Models without a JSON mode often wrap their answer in ```json ... ```.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
