package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseCmd(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{name: "single arg", args: []string{"abcd"}, want: "dcba\n"},
		{name: "args are joined", args: []string{"hello", "world"}, want: "dlrow olleh\n"},
		{name: "unicode", args: []string{"héllo"}, want: "olléh\n"},
		{name: "stdin", input: "stressed\n", want: "desserts\n"},
		{name: "stdin crlf", input: "abc\r\n", want: "cba\n"},
		{name: "empty stdin", input: "", want: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommandWithInput(t, tt.input, append([]string{"reverse"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestReverseCmd_NoService(t *testing.T) {
	SetServices(Services{})

	_, err := executeCommand(t, "reverse", "abc")
	assert.EqualError(t, err, "utility service not configured")
}

func TestCountWordsCmd(t *testing.T) {
	setupTestServices(t)

	t.Run("args", func(t *testing.T) {
		out, err := executeCommand(t, "count-words", "  hello   world  ")
		require.NoError(t, err)
		assert.Equal(t, "2\n", out)
	})

	t.Run("stdin", func(t *testing.T) {
		out, err := executeCommandWithInput(t, "one two\nthree\tfour\n", "count-words")
		require.NoError(t, err)
		assert.Equal(t, "4\n", out)
	})

	t.Run("blank", func(t *testing.T) {
		out, err := executeCommandWithInput(t, "   \n", "count-words")
		require.NoError(t, err)
		assert.Equal(t, "0\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := executeCommand(t, "count-words", "--json", "a b c")
		require.NoError(t, err)

		var got map[string]int
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, 3, got["count"])
	})
}

func TestCelsiusToFahrenheitCmd(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "freezing", args: []string{"celsius-to-fahrenheit", "0"}, want: "0°C = 32°F\n"},
		{name: "boiling via alias", args: []string{"c2f", "100"}, want: "100°C = 212°F\n"},
		{name: "negative after dashes", args: []string{"c2f", "--", "-40"}, want: "-40°C = -40°F\n"},
		{name: "flag", args: []string{"c2f", "--celsius", "-40"}, want: "-40°C = -40°F\n"},
		{name: "short flag zero", args: []string{"c2f", "-c", "0"}, want: "0°C = 32°F\n"},
		{name: "fraction", args: []string{"c2f", "37.5"}, want: "37.5°C = 99.5°F\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("json", func(t *testing.T) {
		out, err := executeCommand(t, "c2f", "--json", "100")
		require.NoError(t, err)

		var got map[string]float64
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.InDelta(t, 100.0, got["celsius"], 1e-9)
		assert.InDelta(t, 212.0, got["fahrenheit"], 1e-9)
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := executeCommand(t, "c2f")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a temperature is required")
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := executeCommand(t, "c2f", "warm")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid temperature "warm"`)
	})
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "32", formatFloat(32))
	assert.Equal(t, "98.6", formatFloat(98.6))
	assert.Equal(t, "-40", formatFloat(-40))
}
