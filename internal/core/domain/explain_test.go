package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Language
		wantErr  bool
	}{
		{name: "exact", input: "Python", expected: LanguagePython},
		{name: "lower case", input: "javascript", expected: LanguageJavaScript},
		{name: "upper case", input: "JAVA", expected: LanguageJava},
		{name: "other", input: "other", expected: LanguageOther},
		{name: "surrounding space", input: "  python ", expected: LanguagePython},
		{name: "empty defaults", input: "", expected: DefaultLanguage},
		{name: "unknown", input: "cobol", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, err := ParseLanguage(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, lang)
		})
	}
}

func TestLanguage_IsValid(t *testing.T) {
	for _, l := range AllLanguages() {
		assert.True(t, l.IsValid(), "%s should be valid", l)
	}
	assert.False(t, Language("").IsValid())
	assert.False(t, Language("python").IsValid())
}

func TestLanguage_FenceTag(t *testing.T) {
	assert.Equal(t, "javascript", LanguageJavaScript.FenceTag())
	assert.Equal(t, "python", LanguagePython.FenceTag())
	assert.Equal(t, "other", LanguageOther.FenceTag())
}

func TestExplainRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := ExplainRequest{Code: "print('hi')", Language: LanguagePython}
		assert.NoError(t, req.Validate())
	})

	t.Run("empty code", func(t *testing.T) {
		req := ExplainRequest{Code: "", Language: LanguagePython}
		assert.ErrorIs(t, req.Validate(), ErrCodeRequired)
	})

	t.Run("whitespace code", func(t *testing.T) {
		req := ExplainRequest{Code: " \n\t ", Language: LanguagePython}
		assert.ErrorIs(t, req.Validate(), ErrCodeRequired)
	})

	t.Run("invalid language", func(t *testing.T) {
		req := ExplainRequest{Code: "x = 1", Language: "Brainfuck"}
		assert.ErrorIs(t, req.Validate(), ErrInvalidInput)
	})
}

func TestExplanation_Validate(t *testing.T) {
	complete := Explanation{
		SimpleExplanation: "A function.",
		WhatItDoes:        "It returns a value.",
		RealWorldAnalogy:  "Like a vending machine.",
	}

	t.Run("complete explanation", func(t *testing.T) {
		assert.NoError(t, complete.Validate())
	})

	t.Run("missing analogy", func(t *testing.T) {
		e := complete
		e.RealWorldAnalogy = ""
		err := e.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidExplanation)
		assert.Contains(t, err.Error(), "realWorldAnalogy")
	})

	t.Run("all missing", func(t *testing.T) {
		err := Explanation{}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simpleExplanation, whatItDoes, realWorldAnalogy")
	})
}

func TestExplanation_Sections(t *testing.T) {
	exp := Explanation{
		SimpleExplanation: "simple",
		WhatItDoes:        "does",
		RealWorldAnalogy:  "analogy",
	}

	sections := exp.Sections()

	require.Len(t, sections, 3)
	assert.Equal(t, "Simple Explanation", sections[0].Title)
	assert.Equal(t, "simple", sections[0].Body)
	assert.Equal(t, "What This Code Does", sections[1].Title)
	assert.Equal(t, "does", sections[1].Body)
	assert.Equal(t, "Real-World Analogy", sections[2].Title)
	assert.Equal(t, "analogy", sections[2].Body)
}
