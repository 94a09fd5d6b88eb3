// Command govault encrypts files into a personal vault and restores them.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/govault/internal/commands"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := commands.NewApp(os.Stdout, os.Stderr)
	defer app.Close() //nolint:errcheck // best-effort close of the log file

	switch err := commands.NewRootCommand(app, version).ExecuteContext(ctx); {
	case errors.Is(err, cobraext.ErrExitGracefully):
		return 0
	case err != nil:
		fmt.Fprintln(os.Stderr, err.Error())

		return 1
	default:
		return 0
	}
}
