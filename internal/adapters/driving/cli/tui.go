package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/simple-utils/internal/adapters/driving/tui"
)

var tuiLanguage string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "Launch the interactive code explainer",
	Long: `Launch the interactive terminal code explainer.

Paste code, pick a language and get a simple explanation, a step-by-step
description and a real-world analogy. An optional file pre-fills the editor.

Controls:
  Tab/Shift+Tab - Change language
  Ctrl+S        - Explain
  Ctrl+R        - History
  PgUp/PgDn     - Scroll explanation
  Esc           - Clear / Back
  Ctrl+C        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiLanguage, "language", "l", "",
		"initial language (JavaScript, Python, Java, Other)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if explainService == nil {
		return errors.New("explain service not configured")
	}

	var code, path string
	if len(args) == 1 {
		path = args[0]
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", path, readErr)
		}
		code = string(data)
	}

	lang, err := resolveLanguage(tuiLanguage, path)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(&tui.Ports{Explain: explainService, Utility: utilityService})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx := cmd.Context()
	watchPrompts(ctx)

	app.WithContext(ctx).WithCode(code, lang)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
