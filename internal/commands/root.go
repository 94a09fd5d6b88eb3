package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/govault/internal/encryption"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(app *App, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "govault [flags] command [flags]"
	root.Short = "Personal file vault"
	root.Long = `A personal file vault. Files are encrypted into a flat folder under names derived
from their original path, which is stored inside each encrypted file.
Provides commands for encryption, decryption, listing and key generation.`

	root.SetOut(app.Session.Out)
	root.SetErr(app.Session.Err)

	flags := root.PersistentFlags()

	flags.StringP("config", "c", "", "Path to the vault configuration file")
	flags.StringP("vault", "v", "", "Name of the vault to use, optional with a single vault")
	flags.BoolP("show", "s", false, "Show the configuration and exit")

	flags.StringP("key", "k", "", "Encryption key, Base64 encoded")
	flags.StringP("key-file", "f", "", "Path to a file with the raw encryption key")
	flags.StringP("key-input", "i", "", "Key input string, hashed into the encryption key")
	flags.BoolP("machine", "m", false, "Use an identity bound to this machine as key input")
	flags.StringP("algorithm", "a", string(encryption.AES), "Block cipher: aes, des, 3des or blowfish")

	flags.IntP("parallel", "j", 0, "Number of parallel workers, 0 for one per file")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.BoolP("progress", "p", false, "Show a progress bar instead of progress lines")
	flags.Bool("stats", false, "Print statistics after the run")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn or error")
	flags.String("log-file", "", "Write JSON logs to this file instead of stderr")

	root.AddCommand(
		NewEncryptCommand(app),
		NewDecryptCommand(app),
		NewListCommand(app),
		NewReportCommand(app),
		NewFindCommand(app),
		NewFindAndDecryptCommand(app),
		NewKeygenCommand(app),
		NewCheckCommand(app),
	)

	return root
}
