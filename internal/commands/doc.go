// Package commands provides the command-line interface for the govault tool.
//
// It implements commands for:
//   - encryption and decryption of vault files
//   - listing and reporting the vault contents
//   - finding, and find-and-decrypting, single files
//   - key generation
//   - checking patterns
//
// The package handles command-line parsing, configuration loading and validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/govault/internal/config"
	"github.com/idelchi/govault/internal/key"
	"github.com/idelchi/govault/internal/logging"
	"github.com/idelchi/govault/internal/logic"
)

// App holds the state shared by the commands of one invocation.
type App struct {
	Config  *config.Config
	Session *logic.Session

	closeLog func() error
}

// NewApp returns an App writing regular output to stdout and diagnostics to stderr.
func NewApp(stdout, stderr io.Writer) *App {
	cfg := &config.Config{}

	return &App{
		Config: cfg,
		Session: &logic.Session{
			Config:   cfg,
			Logger:   logging.Discard(),
			Out:      stdout,
			Err:      stderr,
			Prompter: key.NewTerminalPrompter(),
		},
		closeLog: func() error { return nil },
	}
}

// Close releases the log file, if one was opened.
func (a *App) Close() error {
	return a.closeLog()
}

// preRun loads the vault configuration file, validates the configuration and sets up logging.
// Flags and environment variables are bound by the root command beforehand.
// With --show the configuration is printed and cobraext.ErrExitGracefully returned.
func (a *App) preRun(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")

	if err := config.Load(viper.GetViper(), configFile, a.Config); err != nil {
		return err
	}

	a.Config.Patterns = args

	if err := cobraext.Validate(a.Config, a.Config); err != nil {
		return err //nolint:wrapcheck // already wrapped by cobraext
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level: a.Config.LogLevel,
		File:  a.Config.LogFile,
		Out:   a.Session.Err,
	})
	if err != nil {
		return err
	}

	a.Session.Logger = logger
	a.closeLog = closeLog

	return nil
}

// run adapts a command body to cobra's RunE signature.
func (a *App) run(fn func(cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return fn(cmd)
	}
}
