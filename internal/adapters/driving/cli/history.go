package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/simple-utils/internal/core/domain"
)

var (
	historyLimit  int
	historyJSON   bool
	historyOutput string
	historyYes    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past code explanations",
	Long:  `List, show and clear explanations saved by the explain command, API and TUI.`,
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past explanations, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a past explanation",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all past explanations",
	RunE:  runHistoryClear,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries (0 = all)")
	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyShowCmd.Flags().StringVarP(&historyOutput, "output", "o", formatText,
		"output format (text, markdown, json, yaml)")
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "do not ask for confirmation")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if explainService == nil {
		return errors.New("explain service not configured")
	}

	entries, err := explainService.History(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if historyJSON {
		return printJSON(cmd, entries)
	}

	if len(entries) == 0 {
		cmd.Println("No explanations yet.")
		return nil
	}

	for i := range entries {
		e := &entries[i]
		cmd.Printf("%s  %s  %-10s  %s\n",
			e.ID,
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Language,
			summarise(e.Code, 50),
		)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if explainService == nil {
		return errors.New("explain service not configured")
	}
	if err := validateFormat(historyOutput); err != nil {
		return err
	}

	exp, err := explainService.Get(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("explanation %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get explanation: %w", err)
	}

	return writeExplanation(cmd.OutOrStdout(), exp, historyOutput)
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if explainService == nil {
		return errors.New("explain service not configured")
	}

	if !historyYes {
		cmd.Print("Delete all saved explanations? [y/N]: ")
		answer := strings.ToLower(readLine(bufio.NewReader(cmd.InOrStdin())))
		if answer != "y" && answer != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := explainService.ClearHistory(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	cmd.Println("History cleared.")
	return nil
}

// summarise returns the first line of s, cut to n runes.
func summarise(s string, n int) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " ..."
	}
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}
