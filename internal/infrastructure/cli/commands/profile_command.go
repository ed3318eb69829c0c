package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/dbpilot-go/internal/app"
	"github.com/doeshing/dbpilot-go/internal/domain"
)

// NewProfileCommand creates the profile command with all subcommands.
func NewProfileCommand(container *app.Container) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved connection profiles",
	}

	profileCmd.AddCommand(
		newProfileAddCommand(container),
		newProfileListCommand(container),
		newProfileRemoveCommand(container),
		newProfileTestCommand(container),
	)

	return profileCmd
}

func newProfileAddCommand(container *app.Container) *cobra.Command {
	var fields domain.ProfileFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new connection profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := container.Profiles.Add(fields)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %s (%s)\n", fields.Name, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&fields.Name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&fields.Host, "host", "", "Database host (required)")
	cmd.Flags().IntVar(&fields.Port, "port", 3306, "Database port")
	cmd.Flags().StringVar(&fields.User, "user", "", "Username (required)")
	cmd.Flags().StringVar(&fields.Password, "password", "", "Password")
	cmd.Flags().StringVar(&fields.Database, "database", "", "Database name (required)")
	return cmd
}

func newProfileListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProfiles(cmd.OutOrStdout(), container)
		},
	}
}

func newProfileRemoveCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Profiles.Remove(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newProfileTestCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "test <id>",
		Short: "Test a profile against the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, ok := container.Profiles.Get(args[0])
			if !ok {
				return fmt.Errorf("%s: %w", args[0], domain.ErrProfileNotFound)
			}
			message, err := container.Gateway.TestConnection(cmd.Context(), profile)
			if err != nil {
				return err
			}
			if message == "" {
				message = "Connection successful"
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
}

func listProfiles(out io.Writer, container *app.Container) error {
	profiles := container.Profiles.List()
	if len(profiles) == 0 {
		fmt.Fprintln(out, "No profiles saved yet.")
		return nil
	}

	activeID := container.Session.CurrentProfileID()
	for _, p := range profiles {
		marker := " "
		if p.ID == activeID {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s | %s | %s@%s:%d/%s\n",
			marker, p.ID, p.Name, p.User, p.Host, p.Port, p.Database)
	}
	return nil
}
