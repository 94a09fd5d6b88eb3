package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/govault/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] [paths/patterns...]",
		Aliases: []string{"enc"},
		Short:   "Encrypt files into the vault",
		Long: `Encrypt files into the vault. A folder is encrypted recursively, a file as is,
and any other argument is a glob whose last element is matched against file names
below its folder, recursively.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: app.preRun,
		RunE: app.run(func(cmd *cobra.Command) error {
			return logic.RunEncrypt(cmd.Context(), app.Session)
		}),
	}

	cmd.Flags().String("from", "", "JSONC file with a list of paths/patterns to encrypt")
	cmd.Flags().StringSliceP("exclude", "e", nil, "Patterns of files to leave out")
	cmd.Flags().BoolP("delete", "d", false, "Delete the original files after successful encryption")

	return cmd
}
