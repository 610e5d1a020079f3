package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

// Output formats for explanations.
const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatYAML     = "yaml"
)

// isTerminal reports whether w is an interactive terminal. Replaced in tests.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatMarkdown, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q (use text, markdown, json or yaml)",
			domain.ErrInvalidInput, format)
	}
}

// writeExplanation renders exp to w in the given format.
// Text output is styled with glamour when w is a terminal.
func writeExplanation(w io.Writer, exp *domain.Explanation, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(exp)

	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(exp); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()

	case formatMarkdown:
		_, err := io.WriteString(w, explanationMarkdown(exp))
		return err

	default:
		if isTerminal(w) {
			if rendered, err := renderMarkdown(explanationMarkdown(exp)); err == nil {
				_, err = io.WriteString(w, rendered)
				return err
			}
		}
		_, err := io.WriteString(w, explanationText(exp))
		return err
	}
}

func explanationMarkdown(exp *domain.Explanation) string {
	var b strings.Builder
	for i, s := range exp.Sections() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n", s.Title, strings.TrimSpace(s.Body))
	}
	return b.String()
}

func explanationText(exp *domain.Explanation) string {
	var b strings.Builder
	for i, s := range exp.Sections() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n%s\n%s\n", s.Title, strings.Repeat("-", len(s.Title)), strings.TrimSpace(s.Body))
	}
	return b.String()
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
