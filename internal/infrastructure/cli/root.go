package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/dbpilot-go/internal/app"
	"github.com/doeshing/dbpilot-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	queryCmd := commands.NewQueryCommand(container)

	root := &cobra.Command{
		Use:   "dbpilot [question]",
		Short: "dbpilot - ask your database questions in plain language",
		Long:  "dbpilot registers database connection profiles and turns natural-language questions into SQL via a backend service.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			queryCmd.SetArgs(args)
			return queryCmd.ExecuteContext(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(queryCmd)
	root.AddCommand(commands.NewProfileCommand(container))
	root.AddCommand(commands.NewConnectCommand(container))
	root.AddCommand(commands.NewDisconnectCommand(container))
	root.AddCommand(commands.NewStatusCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewStatsCommand(container))
	return root, nil
}
