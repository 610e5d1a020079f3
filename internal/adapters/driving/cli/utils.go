package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	countWordsJSON bool
	c2fJSON        bool
	c2fCelsius     float64
)

var reverseCmd = &cobra.Command{
	Use:   "reverse [text...]",
	Short: "Reverse the characters of a string",
	Long: `Prints the text with its characters in reverse order.
Arguments are joined with single spaces; without arguments the text is read
from stdin.`,
	RunE: runReverse,
}

var countWordsCmd = &cobra.Command{
	Use:   "count-words [text...]",
	Short: "Count whitespace-separated words",
	Long: `Counts maximal runs of non-whitespace characters.
Without arguments the text is read from stdin.`,
	RunE: runCountWords,
}

var celsiusCmd = &cobra.Command{
	Use:     "celsius-to-fahrenheit [celsius]",
	Aliases: []string{"c2f"},
	Short:   "Convert Celsius to Fahrenheit",
	Long: `Converts a temperature in degrees Celsius to degrees Fahrenheit.
Negative values must follow "--" or be given with --celsius:

  simpleutils c2f -- -40
  simpleutils c2f --celsius -40`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCelsiusToFahrenheit,
}

func init() {
	countWordsCmd.Flags().BoolVar(&countWordsJSON, "json", false, "output as JSON")
	celsiusCmd.Flags().Float64VarP(&c2fCelsius, "celsius", "c", 0, "temperature in degrees Celsius")
	celsiusCmd.Flags().BoolVar(&c2fJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(reverseCmd)
	rootCmd.AddCommand(countWordsCmd)
	rootCmd.AddCommand(celsiusCmd)
}

func runReverse(cmd *cobra.Command, args []string) error {
	if utilityService == nil {
		return errors.New("utility service not configured")
	}
	text, err := textInput(cmd, args)
	if err != nil {
		return err
	}
	cmd.Println(utilityService.Reverse(text))
	return nil
}

func runCountWords(cmd *cobra.Command, args []string) error {
	if utilityService == nil {
		return errors.New("utility service not configured")
	}
	text, err := textInput(cmd, args)
	if err != nil {
		return err
	}

	count := utilityService.CountWords(text)
	if countWordsJSON {
		return printJSON(cmd, map[string]int{"count": count})
	}
	cmd.Println(count)
	return nil
}

func runCelsiusToFahrenheit(cmd *cobra.Command, args []string) error {
	if utilityService == nil {
		return errors.New("utility service not configured")
	}

	celsius := c2fCelsius
	switch {
	case len(args) == 1:
		v, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
		if err != nil {
			return fmt.Errorf("invalid temperature %q: must be a number", args[0])
		}
		celsius = v
	case !cmd.Flags().Changed("celsius"):
		return errors.New("a temperature is required: pass it as an argument or with --celsius")
	}

	fahrenheit := utilityService.CelsiusToFahrenheit(celsius)
	if c2fJSON {
		return printJSON(cmd, map[string]float64{"celsius": celsius, "fahrenheit": fahrenheit})
	}
	cmd.Printf("%s°C = %s°F\n", formatFloat(celsius), formatFloat(fahrenheit))
	return nil
}

// textInput joins args, or reads stdin when there are none.
// A single trailing newline from stdin is dropped.
func textInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
