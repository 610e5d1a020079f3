package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

var (
	explainLanguage string
	explainOutput   string
	explainTimeout  time.Duration
)

var explainCmd = &cobra.Command{
	Use:   "explain [file]",
	Short: "Explain code in beginner-friendly terms",
	Long: `Sends code to the configured LLM and prints a simple explanation,
a step-by-step description and a real-world analogy.

The code is read from the file argument or from stdin. The language is taken
from --language, then from the file extension, and defaults to JavaScript.

Examples:
  simpleutils explain main.py
  cat Main.java | simpleutils explain -l java -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringVarP(&explainLanguage, "language", "l", "",
		"language of the code (JavaScript, Python, Java, Other)")
	explainCmd.Flags().StringVarP(&explainOutput, "output", "o", formatText,
		"output format (text, markdown, json, yaml)")
	explainCmd.Flags().DurationVar(&explainTimeout, "timeout", 2*time.Minute, "maximum time to wait for the LLM")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	if explainService == nil {
		return errors.New("explain service not configured")
	}
	if err := validateFormat(explainOutput); err != nil {
		return err
	}

	code, path, err := codeInput(cmd, args)
	if err != nil {
		return err
	}

	lang, err := resolveLanguage(explainLanguage, path)
	if err != nil {
		return err
	}

	if !explainService.Available() {
		return fmt.Errorf("%w: run 'simpleutils settings llm' to configure a provider", domain.ErrLLMUnavailable)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), explainTimeout)
	defer cancel()

	exp, err := explainService.Explain(ctx, domain.ExplainRequest{Code: code, Language: lang})
	if err != nil {
		return fmt.Errorf("failed to explain code: %w", err)
	}

	return writeExplanation(cmd.OutOrStdout(), exp, explainOutput)
}

// codeInput reads the file named by args[0], or stdin when there is none.
func codeInput(cmd *cobra.Command, args []string) (code, path string, err error) {
	if len(args) == 0 {
		code, err = textInput(cmd, nil)
		return code, "", err
	}
	path = args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), path, nil
}

// resolveLanguage prefers an explicit name, then the file extension.
func resolveLanguage(name, path string) (domain.Language, error) {
	if strings.TrimSpace(name) != "" || path == "" {
		return domain.ParseLanguage(name)
	}
	return languageFromPath(path), nil
}

func languageFromPath(path string) domain.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return domain.LanguageJavaScript
	case ".py", ".pyw":
		return domain.LanguagePython
	case ".java":
		return domain.LanguageJava
	default:
		return domain.LanguageOther
	}
}
