package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/govault/internal/logic"
)

// NewListCommand creates a new cobra command for the list subcommand.
func NewListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list [flags]",
		Aliases: []string{"ls"},
		Short:   "Show the folder tree of the vault",
		Args:    cobra.NoArgs,
		PreRunE: app.preRun,
		RunE: app.run(func(cmd *cobra.Command) error {
			return logic.RunList(cmd.Context(), app.Session)
		}),
	}
}

// NewReportCommand creates a new cobra command for the report subcommand.
func NewReportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "report [flags]",
		Short:   "Print a table of encrypted and original file names",
		Args:    cobra.NoArgs,
		PreRunE: app.preRun,
		RunE: app.run(func(cmd *cobra.Command) error {
			return logic.RunReport(cmd.Context(), app.Session)
		}),
	}
}

// NewFindCommand creates a new cobra command for the find subcommand.
func NewFindCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "find [flags] paths...",
		Short:   "Print the encrypted file of original paths",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: app.preRun,
		RunE: app.run(func(_ *cobra.Command) error {
			return logic.RunFind(app.Session)
		}),
	}
}
