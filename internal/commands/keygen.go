package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/govault/internal/logic"
)

// NewKeygenCommand creates a new cobra command for the keygen subcommand.
func NewKeygenCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keygen [flags]",
		Aliases: []string{"gen"},
		Short:   "Generate a random encryption key",
		Long: `Generate a random encryption key. It is printed Base64 encoded, for use with --key,
or written as raw bytes to --out, for use with --key-file.`,
		Args:    cobra.NoArgs,
		PreRunE: app.preRun,
		RunE: app.run(func(_ *cobra.Command) error {
			return logic.RunKeygen(app.Session)
		}),
	}

	cmd.Flags().StringP("out", "o", "", "Write the raw key to this file")
	cmd.Flags().Int("size", logic.DefaultKeySize, "Key size in bytes")

	return cmd
}
