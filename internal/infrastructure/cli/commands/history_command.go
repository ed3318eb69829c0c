package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/dbpilot-go/internal/app"
	"github.com/doeshing/dbpilot-go/internal/domain"
)

const msgNoHistoryRecorded = "No queries recorded yet."

// NewHistoryCommand creates the history command with all subcommands.
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past queries",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent queries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = container.Config.Preferences.HistoryLimit
			}
			return printEntries(cmd.OutOrStdout(), container.History.List(), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max entries to show (default from config)")
	return cmd
}

func newHistorySearchCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search questions and generated SQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printEntries(cmd.OutOrStdout(), container.History.Search(args[0]), 0)
		},
	}
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.History.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

func printEntries(out io.Writer, entries []domain.HistoryEntry, limit int) error {
	if len(entries) == 0 {
		fmt.Fprintln(out, msgNoHistoryRecorded)
		return nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s | %s | %s | %d row(s)\n",
			e.Timestamp.Local().Format(TimestampFormat),
			e.Question,
			e.SQL,
			e.ResultsCount)
	}
	return nil
}
