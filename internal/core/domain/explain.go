package domain

import (
	"fmt"
	"strings"
	"time"
)

// Language identifies the programming language of submitted code.
type Language string

// Supported languages.
const (
	LanguageJavaScript Language = "JavaScript"
	LanguagePython     Language = "Python"
	LanguageJava       Language = "Java"
	LanguageOther      Language = "Other"
)

// DefaultLanguage is used when no language is given.
const DefaultLanguage = LanguageJavaScript

// AllLanguages returns the supported languages in display order.
func AllLanguages() []Language {
	return []Language{
		LanguageJavaScript,
		LanguagePython,
		LanguageJava,
		LanguageOther,
	}
}

// ParseLanguage converts a case-insensitive name into a Language.
// An empty name yields DefaultLanguage.
func ParseLanguage(name string) (Language, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultLanguage, nil
	}
	for _, l := range AllLanguages() {
		if strings.EqualFold(name, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported language %q", ErrInvalidInput, name)
}

// IsValid returns true if the language is recognised.
func (l Language) IsValid() bool {
	switch l {
	case LanguageJavaScript, LanguagePython, LanguageJava, LanguageOther:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l Language) String() string {
	return string(l)
}

// FenceTag returns the tag used after ``` when quoting code of this language.
func (l Language) FenceTag() string {
	return strings.ToLower(string(l))
}

// ExplainRequest is a piece of code submitted for explanation.
type ExplainRequest struct {
	// Code is the source code to explain.
	Code string

	// Language is the language the code is written in.
	Language Language
}

// Validate checks the request can be sent to the explainer.
func (r ExplainRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return ErrCodeRequired
	}
	if !r.Language.IsValid() {
		return fmt.Errorf("%w: unsupported language %q", ErrInvalidInput, r.Language)
	}
	return nil
}

// Explanation is a beginner-friendly description of a piece of code.
type Explanation struct {
	// ID uniquely identifies the explanation in history.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Language is the language of the explained code.
	Language Language `json:"language,omitempty" yaml:"language,omitempty"`

	// Code is the code that was explained.
	Code string `json:"code,omitempty" yaml:"code,omitempty"`

	// SimpleExplanation says what the code is in two or three sentences.
	SimpleExplanation string `json:"simpleExplanation" yaml:"simple_explanation"`

	// WhatItDoes walks through the behaviour step by step.
	WhatItDoes string `json:"whatItDoes" yaml:"what_it_does"`

	// RealWorldAnalogy relates the code to something familiar.
	RealWorldAnalogy string `json:"realWorldAnalogy" yaml:"real_world_analogy"`

	// Model is the LLM model that produced the explanation.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// CreatedAt is when the explanation was produced.
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

// Validate checks that all explanation sections are present.
func (e Explanation) Validate() error {
	var missing []string
	if strings.TrimSpace(e.SimpleExplanation) == "" {
		missing = append(missing, "simpleExplanation")
	}
	if strings.TrimSpace(e.WhatItDoes) == "" {
		missing = append(missing, "whatItDoes")
	}
	if strings.TrimSpace(e.RealWorldAnalogy) == "" {
		missing = append(missing, "realWorldAnalogy")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidExplanation, strings.Join(missing, ", "))
	}
	return nil
}

// ExplanationSection is one titled part of an explanation.
type ExplanationSection struct {
	Title string
	Body  string
}

// Sections returns the explanation's parts in display order.
func (e Explanation) Sections() []ExplanationSection {
	return []ExplanationSection{
		{Title: "Simple Explanation", Body: e.SimpleExplanation},
		{Title: "What This Code Does", Body: e.WhatItDoes},
		{Title: "Real-World Analogy", Body: e.RealWorldAnalogy},
	}
}
