package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/govault/internal/logic"
)

// NewCheckCommand creates a new cobra command for the check subcommand.
func NewCheckCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check [flags] [paths/patterns...]",
		Short:   "Validate that encrypt and exclude patterns match files",
		Args:    cobra.ArbitraryArgs,
		PreRunE: app.preRun,
		RunE: app.run(func(_ *cobra.Command) error {
			return logic.RunCheck(app.Session)
		}),
	}

	cmd.Flags().String("from", "", "JSONC file with a list of paths/patterns to check")
	cmd.Flags().StringSliceP("exclude", "e", nil, "Patterns of files to leave out")

	return cmd
}
