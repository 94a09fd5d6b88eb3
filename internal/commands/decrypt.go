package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/govault/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] [patterns...]",
		Aliases: []string{"dec"},
		Short:   "Decrypt files from the vault",
		Long: `Decrypt files from the vault into its decrypted folder, keeping their original
folder structure. Patterns match encrypted file names; all files are decrypted by default.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: app.preRun,
		RunE: app.run(func(cmd *cobra.Command) error {
			return logic.RunDecrypt(cmd.Context(), app.Session)
		}),
	}
}

// NewFindAndDecryptCommand creates a new cobra command for the fd subcommand.
func NewFindAndDecryptCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "fd [flags] paths...",
		Aliases: []string{"find-and-decrypt"},
		Short:   "Find files by their original path and decrypt them",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: app.preRun,
		RunE: app.run(func(cmd *cobra.Command) error {
			return logic.RunFindAndDecrypt(cmd.Context(), app.Session)
		}),
	}
}
