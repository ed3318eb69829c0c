package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/dbpilot-go/internal/app"
	"github.com/doeshing/dbpilot-go/internal/domain"
)

// NewConnectCommand activates a session on a saved profile.
func NewConnectCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "connect <id>",
		Short: "Connect to a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := container.Session.Activate(cmd.Context(), args[0]); err != nil {
				return err
			}
			snap := container.Session.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s\n", snap.Profile.Name)
			return nil
		},
	}
}

// NewDisconnectCommand tears the active session down.
func NewDisconnectCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			container.Session.Deactivate()
			fmt.Fprintln(cmd.OutOrStdout(), "Disconnected.")
			return nil
		},
	}
}

// NewStatusCommand prints the session state.
func NewStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session status",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := container.Session.Snapshot()
			out := cmd.OutOrStdout()
			switch snap.Status {
			case domain.StatusConnected:
				fmt.Fprintf(out, "%s | %s | %s@%s:%d/%s\n",
					snap.Status, snap.Profile.Name, snap.Profile.User,
					snap.Profile.Host, snap.Profile.Port, snap.Profile.Database)
			default:
				if snap.LastError != "" {
					fmt.Fprintf(out, "%s | last error: %s\n", snap.Status, snap.LastError)
					return nil
				}
				fmt.Fprintln(out, snap.Status)
			}
			return nil
		},
	}
}
