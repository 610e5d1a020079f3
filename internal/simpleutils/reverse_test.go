package simpleutils

import (
	"testing"
	"testing/quick"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "single character", input: "a", expected: "a"},
		{name: "ascii", input: "abcd", expected: "dcba"},
		{name: "palindrome", input: "racecar", expected: "racecar"},
		{name: "spaces kept", input: "hello world", expected: "dlrow olleh"},
		{name: "multi-byte", input: "naïve café", expected: "éfac evïan"},
		{name: "cjk", input: "日本語", expected: "語本日"},
		{name: "emoji", input: "go🚀", expected: "🚀og"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Reverse(tt.input))
		})
	}
}

func TestReverse_InvalidUTF8KeptVerbatim(t *testing.T) {
	input := "a\xffb"

	result := Reverse(input)

	assert.Equal(t, "b\xffa", result)
	assert.Equal(t, utf8.RuneCountInString(input), utf8.RuneCountInString(result))
}

func TestReverse_Involution(t *testing.T) {
	property := func(s string) bool {
		return Reverse(Reverse(s)) == s
	}
	require.NoError(t, quick.Check(property, nil))
}

func TestReverse_PreservesLength(t *testing.T) {
	property := func(s string) bool {
		return utf8.RuneCountInString(Reverse(s)) == utf8.RuneCountInString(s)
	}
	require.NoError(t, quick.Check(property, nil))
}

func TestReverse_DoesNotModifyInput(t *testing.T) {
	input := "abcd"
	_ = Reverse(input)
	assert.Equal(t, "abcd", input)
}
