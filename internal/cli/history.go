package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/billmal071/finna/internal/config"
	"github.com/billmal071/finna/internal/db"
	"github.com/billmal071/finna/internal/render"
	"github.com/billmal071/finna/internal/tui"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View and manage search history",
	Long: `View and manage your search history.

Examples:
  finna history                     List recent searches
  finna history list --all          List every search, repeats included
  finna history pick                Pick a search and run it again
  finna history clear               Clear all search history
  finna history clear --older 720h  Remove searches older than 30 days
  finna history lines               Show lines typed at the prompt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showSearchHistory(config.Get().History.Limit, false)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")
		return showSearchHistory(limit, all)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear search and prompt history",
	RunE: func(cmd *cobra.Command, args []string) error {
		older, _ := cmd.Flags().GetDuration("older")
		if older > 0 {
			if err := db.DeleteSearchHistoryOlderThan(older); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			Successf("Removed searches older than %s.", older)
			return nil
		}

		if err := db.ClearSearchHistory(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		if err := db.ClearHistory(); err != nil {
			return fmt.Errorf("failed to clear prompt history: %w", err)
		}
		Successf("Search history cleared.")
		return nil
	},
}

var historyPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a previous search and start the prompt with it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = cfg.History.Limit
		}

		history, err := db.GetUniqueSearchHistory(limit)
		if err != nil {
			return fmt.Errorf("failed to get search history: %w", err)
		}

		selected, err := tui.RunHistorySelector(history)
		if err != nil {
			return err
		}
		if selected == nil {
			return nil // User cancelled
		}

		return startSession(cmd, historyParameters(cfg, selected))
	},
}

var historyLinesCmd = &cobra.Command{
	Use:   "lines",
	Short: "Show lines typed at the prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		lines, err := db.GetHistory(limit)
		if err != nil {
			return fmt.Errorf("failed to get prompt history: %w", err)
		}
		for _, l := range lines {
			fmt.Printf("%s  %s\n", l.CreatedAt.Local().Format("2006-01-02 15:04"), l.Line)
		}
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "number of entries to show")
	historyListCmd.Flags().BoolP("all", "a", false, "include repeated searches")
	historyPickCmd.Flags().IntP("limit", "n", 0, "number of entries to offer (default history.limit)")
	historyLinesCmd.Flags().IntP("limit", "n", 50, "number of lines to show")
	historyClearCmd.Flags().Duration("older", 0, "only remove searches older than this (e.g. 720h)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyPickCmd)
	historyCmd.AddCommand(historyLinesCmd)
}

func showSearchHistory(limit int, all bool) error {
	return writeSearchHistory(os.Stdout, limit, all)
}

// writeSearchHistory lists recent searches, one entry per query unless all
// is set
func writeSearchHistory(w io.Writer, limit int, all bool) error {
	load := db.GetUniqueSearchHistory
	if all {
		load = db.GetSearchHistory
	}
	history, err := load(limit)
	if err != nil {
		return fmt.Errorf("failed to get search history: %w", err)
	}

	if len(history) == 0 {
		fmt.Fprintln(w, "No search history.")
		render.Info(w, "Searches are saved automatically when history.enabled is true.")
		return nil
	}

	fmt.Fprintf(w, "Recent Searches (%d):\n\n", len(history))

	for i, h := range history {
		fmt.Fprintf(w, "  %d. %q (%d results)\n", i+1, h.Query, h.ResultCount)
		if filters := h.Filters.String(); filters != "" {
			fmt.Fprintf(w, "     Parameters: %s\n", filters)
		}
		fmt.Fprintf(w, "     %s (%s ago)\n\n", h.CreatedAt.Local().Format("2006-01-02 15:04"), since(h.CreatedAt))
	}

	return nil
}

func since(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
