package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/simple-utils/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/simple-utils/internal/core/domain"
	"github.com/custodia-labs/simple-utils/internal/core/ports/driven"
)

const validExplanationJSON = `{
  "simpleExplanation": "This is a function that adds two numbers.",
  "whatItDoes": "It takes a and b and returns their sum.",
  "realWorldAnalogy": "Like a calculator with one button."
}`

type mockLLMService struct {
	response string
	err      error
	calls    int
	messages []driven.ChatMessage
	opts     driven.ChatOptions
}

func (m *mockLLMService) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.calls++
	m.messages = messages
	m.opts = opts
	return m.response, m.err
}

func (m *mockLLMService) ModelName() string {
	return "mock-model"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLMService) Close() error {
	return nil
}

type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

type mapCache struct {
	items map[string]domain.Explanation
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]domain.Explanation)}
}

func (c *mapCache) Get(key string) (domain.Explanation, bool) {
	e, ok := c.items[key]
	return e, ok
}

func (c *mapCache) Add(key string, e domain.Explanation) { c.items[key] = e }
func (c *mapCache) Len() int                             { return len(c.items) }
func (c *mapCache) Purge()                               { c.items = make(map[string]domain.Explanation) }

type failingExplanationStore struct {
	*memory.ExplanationStore
}

func (f failingExplanationStore) Save(_ context.Context, _ domain.Explanation) error {
	return errors.New("disk full")
}

var fixedTime = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func newTestExplainService(llm driven.LLMService, store driven.ExplanationStore, cache driven.ExplanationCache) *ExplainService {
	svc := NewExplainService(llm, store, cache, ExplainConfig{Temperature: 0.7, History: true})
	svc.now = func() time.Time { return fixedTime }
	ids := 0
	svc.newID = func() string {
		ids++
		return "exp-" + string(rune('0'+ids))
	}
	return svc
}

func TestExplainService_Explain_Success(t *testing.T) {
	llm := &mockLLMService{response: validExplanationJSON}
	store := memory.NewExplanationStore()
	svc := newTestExplainService(llm, store, nil)

	exp, err := svc.Explain(context.Background(), domain.ExplainRequest{
		Code:     "function add(a, b) { return a + b; }",
		Language: domain.LanguageJavaScript,
	})

	require.NoError(t, err)
	assert.Equal(t, "exp-1", exp.ID)
	assert.Equal(t, domain.LanguageJavaScript, exp.Language)
	assert.Equal(t, "This is a function that adds two numbers.", exp.SimpleExplanation)
	assert.Equal(t, "It takes a and b and returns their sum.", exp.WhatItDoes)
	assert.Equal(t, "Like a calculator with one button.", exp.RealWorldAnalogy)
	assert.Equal(t, "mock-model", exp.Model)
	assert.Equal(t, fixedTime, exp.CreatedAt)

	saved, err := store.Get(context.Background(), "exp-1")
	require.NoError(t, err)
	assert.Equal(t, *exp, *saved)
}

func TestExplainService_Explain_PromptAndOptions(t *testing.T) {
	llm := &mockLLMService{response: validExplanationJSON}
	svc := newTestExplainService(llm, nil, nil)

	_, err := svc.Explain(context.Background(), domain.ExplainRequest{
		Code:     "print('hi')",
		Language: domain.LanguagePython,
	})

	require.NoError(t, err)
	require.Len(t, llm.messages, 2)
	assert.Equal(t, driven.RoleSystem, llm.messages[0].Role)
	assert.Equal(t, driven.DefaultExplainSystemPrompt, llm.messages[0].Content)
	assert.Equal(t, driven.RoleUser, llm.messages[1].Role)
	assert.Contains(t, llm.messages[1].Content, "Explain the following Python code")
	assert.Contains(t, llm.messages[1].Content, "```python\nprint('hi')\n```")
	assert.InDelta(t, 0.7, llm.opts.Temperature, 1e-9)
	assert.True(t, llm.opts.JSON)
}

func TestExplainService_Explain_UsesPromptStore(t *testing.T) {
	llm := &mockLLMService{response: validExplanationJSON}
	svc := newTestExplainService(llm, nil, nil)
	svc.SetPromptStore(&mockPromptStore{prompts: map[string]string{
		driven.PromptExplainSystem: "custom system",
		driven.PromptExplainCode:   "lang=%s tag=%s code=%s",
	}})

	_, err := svc.Explain(context.Background(), domain.ExplainRequest{Code: "x", Language: domain.LanguageJava})

	require.NoError(t, err)
	assert.Equal(t, "custom system", llm.messages[0].Content)
	assert.Equal(t, "lang=Java tag=java code=x", llm.messages[1].Content)
}

func TestExplainService_Explain_PromptStoreFallback(t *testing.T) {
	llm := &mockLLMService{response: validExplanationJSON}
	svc := newTestExplainService(llm, nil, nil)
	svc.SetPromptStore(&mockPromptStore{})

	_, err := svc.Explain(context.Background(), domain.ExplainRequest{Code: "x"})

	require.NoError(t, err)
	assert.Equal(t, driven.DefaultExplainSystemPrompt, llm.messages[0].Content)
}

func TestExplainService_Explain_MalformedCodePromptFallsBack(t *testing.T) {
	templates := []string{
		"only %s",
		"%s %s %s and %s",
		"lang=%s count=%d code=%s",
	}
	for _, tmpl := range templates {
		t.Run(tmpl, func(t *testing.T) {
			llm := &mockLLMService{response: validExplanationJSON}
			svc := newTestExplainService(llm, nil, nil)
			svc.SetPromptStore(&mockPromptStore{prompts: map[string]string{
				driven.PromptExplainCode: tmpl,
			}})

			_, err := svc.Explain(context.Background(), domain.ExplainRequest{Code: "x", Language: domain.LanguageJava})

			require.NoError(t, err)
			want := fmt.Sprintf(driven.DefaultExplainCodePrompt, domain.LanguageJava, "java", "x")
			assert.Equal(t, want, llm.messages[1].Content)
			assert.NotContains(t, llm.messages[1].Content, "%!")
		})
	}
}

func TestExplainService_Explain_EditedPromptSkipsCache(t *testing.T) {
	llm := &mockLLMService{response: validExplanationJSON}
	prompts := &mockPromptStore{prompts: map[string]string{
		driven.PromptExplainCode: "v1 %s %s %s",
	}}
	svc := newTestExplainService(llm, nil, newMapCache())
	svc.SetPromptStore(prompts)
	req := domain.ExplainRequest{Code: "x", Language: domain.LanguagePython}

	_, err := svc.Explain(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Explain(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, llm.calls)

	prompts.prompts[driven.PromptExplainCode] = "v2 %s %s %s"

	_, err = svc.Explain(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, llm.calls)
	assert.Equal(t, "v2 Python python x", llm.messages[1].Content)
}

func TestExplainService_Explain_DefaultLanguage(t *testing.T) {
	llm := &mockLLMService{response: validExplanationJSON}
	svc := newTestExplainService(llm, nil, nil)

	exp, err := svc.Explain(context.Background(), domain.ExplainRequest{Code: "let x = 1"})

	require.NoError(t, err)
	assert.Equal(t, domain.LanguageJavaScript, exp.Language)
	assert.Contains(t, llm.messages[1].Content, "```javascript")
}

func TestExplainService_Explain_Errors(t *testing.T) {
	tests := []struct {
		name    string
		llm     *mockLLMService
		req     domain.ExplainRequest
		wantErr error
	}{
		{
			name:    "empty code",
			llm:     &mockLLMService{response: validExplanationJSON},
			req:     domain.ExplainRequest{Code: "   \n\t"},
			wantErr: domain.ErrCodeRequired,
		},
		{
			name:    "invalid language",
			llm:     &mockLLMService{response: validExplanationJSON},
			req:     domain.ExplainRequest{Code: "x", Language: "Cobol"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "empty response",
			llm:     &mockLLMService{response: "  "},
			req:     domain.ExplainRequest{Code: "x"},
			wantErr: domain.ErrEmptyResponse,
		},
		{
			name:    "not json",
			llm:     &mockLLMService{response: "Sure! Here is an explanation."},
			req:     domain.ExplainRequest{Code: "x"},
			wantErr: domain.ErrExplanationParse,
		},
		{
			name:    "missing fields",
			llm:     &mockLLMService{response: `{"simpleExplanation": "only this"}`},
			req:     domain.ExplainRequest{Code: "x"},
			wantErr: domain.ErrInvalidExplanation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestExplainService(tt.llm, nil, nil)

			exp, err := svc.Explain(context.Background(), tt.req)

			assert.Nil(t, exp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExplainService_Explain_LLMError(t *testing.T) {
	llmErr := errors.New("connection refused")
	svc := newTestExplainService(&mockLLMService{err: llmErr}, nil, nil)

	_, err := svc.Explain(context.Background(), domain.ExplainRequest{Code: "x"})

	assert.ErrorIs(t, err, llmErr)
}

func TestExplainService_Explain_NoLLM(t *testing.T) {
	svc := newTestExplainService(nil, nil, nil)

	assert.False(t, svc.Available())
	_, err := svc.Explain(context.Background(), domain.ExplainRequest{Code: "x"})
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestExplainService_Explain_FencedResponse(t *testing.T) {
	llm := &mockLLMService{response: "```json\n" + validExplanationJSON + "\n```"}
	svc := newTestExplainService(llm, nil, nil)

	exp, err := svc.Explain(context.Background(), domain.ExplainRequest{Code: "x"})

	require.NoError(t, err)
	assert.Equal(t, "Like a calculator with one button.", exp.RealWorldAnalogy)
}

func TestExplainService_Explain_CacheHit(t *testing.T) {
	llm := &mockLLMService{response: validExplanationJSON}
	cache := newMapCache()
	svc := newTestExplainService(llm, nil, cache)
	req := domain.ExplainRequest{Code: "x", Language: domain.LanguagePython}

	first, err := svc.Explain(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Explain(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, cache.Len())

	// Same code in another language is a different request.
	_, err = svc.Explain(context.Background(), domain.ExplainRequest{Code: "x", Language: domain.LanguageJava})
	require.NoError(t, err)
	assert.Equal(t, 2, llm.calls)
}

func TestExplainService_Explain_HistoryDisabled(t *testing.T) {
	llm := &mockLLMService{response: validExplanationJSON}
	store := memory.NewExplanationStore()
	svc := NewExplainService(llm, store, nil, ExplainConfig{Temperature: 0.7})

	_, err := svc.Explain(context.Background(), domain.ExplainRequest{Code: "x"})
	require.NoError(t, err)

	history, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestExplainService_Explain_SaveFailureIsNotFatal(t *testing.T) {
	llm := &mockLLMService{response: validExplanationJSON}
	store := failingExplanationStore{memory.NewExplanationStore()}
	svc := newTestExplainService(llm, store, nil)

	exp, err := svc.Explain(context.Background(), domain.ExplainRequest{Code: "x"})

	require.NoError(t, err)
	assert.NotEmpty(t, exp.ID)
}

func TestExplainService_History(t *testing.T) {
	llm := &mockLLMService{response: validExplanationJSON}
	store := memory.NewExplanationStore()
	cache := newMapCache()
	svc := newTestExplainService(llm, store, cache)
	ctx := context.Background()

	_, err := svc.Explain(ctx, domain.ExplainRequest{Code: "a"})
	require.NoError(t, err)
	_, err = svc.Explain(ctx, domain.ExplainRequest{Code: "b"})
	require.NoError(t, err)

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	got, err := svc.Get(ctx, "exp-2")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Code)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, svc.ClearHistory(ctx))
	history, err = svc.History(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Zero(t, cache.Len())
}

func TestExplainService_History_NoStore(t *testing.T) {
	svc := newTestExplainService(&mockLLMService{}, nil, nil)
	ctx := context.Background()

	_, err := svc.History(ctx, 10)
	assert.ErrorIs(t, err, domain.ErrHistoryUnavailable)
	_, err = svc.Get(ctx, "id")
	assert.ErrorIs(t, err, domain.ErrHistoryUnavailable)
	assert.ErrorIs(t, svc.ClearHistory(ctx), domain.ErrHistoryUnavailable)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `{"a":1}`, want: `{"a":1}`},
		{in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "```", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFence(tt.in), strings.ReplaceAll(tt.in, "\n", `\n`))
	}
}

func TestCacheKey(t *testing.T) {
	a := cacheKey(domain.ExplainRequest{Code: "x", Language: domain.LanguagePython}, "sys", "tmpl")
	b := cacheKey(domain.ExplainRequest{Code: "x", Language: domain.LanguagePython}, "sys", "tmpl")
	c := cacheKey(domain.ExplainRequest{Code: "x", Language: domain.LanguageJava}, "sys", "tmpl")
	d := cacheKey(domain.ExplainRequest{Code: "x", Language: domain.LanguagePython}, "sys", "edited")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Len(t, a, 64)
}

func TestHasStringVerbs(t *testing.T) {
	tests := []struct {
		template string
		want     bool
	}{
		{"%s %s %s", true},
		{"100%% sure: %s %s %s", true},
		{driven.DefaultExplainCodePrompt, true},
		{"%s %s", false},
		{"%s %s %s %s", false},
		{"%s %d %s", false},
		{"%s %s %s 50%", false},
		{"no verbs", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, hasStringVerbs(tt.template, 3), tt.template)
	}
}
