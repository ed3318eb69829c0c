package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/dbpilot-go/internal/app"
	"github.com/doeshing/dbpilot-go/internal/domain"
)

// NewQueryCommand submits a natural-language question to the backend.
func NewQueryCommand(container *app.Container) *cobra.Command {
	var showSQL bool

	cmd := &cobra.Command{
		Use:   "query [question]",
		Short: "Ask the database a question in plain language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return fmt.Errorf("question must not be empty")
			}
			result := container.Pipeline.Execute(cmd.Context(), question)
			renderResult(cmd.OutOrStdout(), result, showSQL)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSQL, "sql", true, "Show the generated SQL")
	return cmd
}

func renderResult(out io.Writer, result domain.QueryResult, showSQL bool) {
	if !result.Success {
		fmt.Fprintf(out, "Query failed: %s\n", result.Error)
		return
	}

	if showSQL && result.SQL != "" {
		fmt.Fprintf(out, "SQL: %s\n", result.SQL)
	}
	if result.Response != "" {
		fmt.Fprintln(out, result.Response)
	}
	for _, row := range result.Rows {
		parts := make([]string, 0, len(row))
		for _, field := range row {
			parts = append(parts, fmt.Sprintf("%s=%v", field.Column, field.Value))
		}
		fmt.Fprintln(out, strings.Join(parts, " | "))
	}
	fmt.Fprintf(out, "(%d result(s))\n", result.Count)
}
