package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/dbpilot-go/internal/app"
)

// NewStatsCommand fetches database statistics from the backend.
func NewStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, ok := container.Pipeline.Stats(cmd.Context())
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Statistics unavailable.")
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tables:  %d\n", stats.Tables)
			fmt.Fprintf(out, "Records: %s\n", humanize.Comma(stats.TotalRecords))
			fmt.Fprintf(out, "Size:    %s\n", humanize.Bytes(uint64(stats.SizeMB*1024*1024)))
			return nil
		},
	}
}
